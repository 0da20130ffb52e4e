// Package gemini implements ecolocator.ExternalResolver on top of the
// Google Gemini API with Google Search grounding.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/ecolocator"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when Params.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single GenerateContent call.
const DefaultTimeout = 15 * time.Second

// DefaultMaxOutputTokens caps the length of an answer.
const DefaultMaxOutputTokens = 1024

// Fallback names the strategy used when the grounded call fails.
type Fallback string

// Fallback strategies.
const (
	// FallbackNone gives up after the grounded call fails.
	FallbackNone Fallback = "none"

	// FallbackUngrounded makes one more call without search grounding
	// after a network failure. Answers from that call are not tied to live
	// sources, so this is opt-in.
	FallbackUngrounded Fallback = "ungrounded"
)

// Params holds the decoding and instruction parameters for a lookup.
type Params struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration

	// Sentinel is the token the model must answer with when it cannot
	// confirm any drop-off point.
	Sentinel string

	// Grounding requests the Google Search tool.
	Grounding bool

	// RetryDelays lists the waits before each retry of a transient
	// network failure. Timeouts are never retried.
	RetryDelays []time.Duration

	Fallback Fallback
}

// DefaultParams returns zero-temperature, grounded parameters with no retries.
func DefaultParams() Params {
	return Params{
		Model:           DefaultModel,
		Temperature:     0,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Timeout:         DefaultTimeout,
		Sentinel:        ecolocator.DefaultSentinel,
		Grounding:       true,
		Fallback:        FallbackNone,
	}
}

// Generator is the subset of *genai.Models used by Resolver.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure *genai.Models satisfies Generator at compile time.
var _ Generator = (*genai.Models)(nil)

// Ensure Resolver implements ecolocator.ExternalResolver at compile time.
var _ ecolocator.ExternalResolver = (*Resolver)(nil)

// Resolver implements ecolocator.ExternalResolver using Google Gemini.
type Resolver struct {
	gen    Generator
	params Params
}

// NewResolver creates a new Resolver. Zero-valued fields of params fall
// back to the defaults.
func NewResolver(gen Generator, params Params) *Resolver {
	def := DefaultParams()
	if params.Model == "" {
		params.Model = def.Model
	}
	if params.MaxOutputTokens <= 0 {
		params.MaxOutputTokens = def.MaxOutputTokens
	}
	if params.Timeout <= 0 {
		params.Timeout = def.Timeout
	}
	if params.Sentinel == "" {
		params.Sentinel = def.Sentinel
	}
	if params.Fallback == "" {
		params.Fallback = def.Fallback
	}
	return &Resolver{gen: gen, params: params}
}

// Params returns the effective parameters.
func (r *Resolver) Params() Params {
	return r.params
}

// Resolve implements ecolocator.ExternalResolver.
func (r *Resolver) Resolve(ctx context.Context, query string) (*ecolocator.ExternalQueryResult, error) {
	if query == "" {
		return nil, ecolocator.Errorf(ecolocator.EINVALID, "query required")
	}

	result, err := withRetry(ctx, r.params.RetryDelays, func(ctx context.Context) (*ecolocator.ExternalQueryResult, error) {
		return r.attempt(ctx, query, r.params.Grounding)
	})
	if err != nil && r.params.Grounding && r.params.Fallback == FallbackUngrounded &&
		ecolocator.ErrorCode(err) == ecolocator.EUNAVAILABLE {
		return r.attempt(ctx, query, false)
	}
	return result, err
}

// attempt performs one GenerateContent call bounded by the configured timeout.
func (r *Resolver) attempt(ctx context.Context, query string, grounded bool) (*ecolocator.ExternalQueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.params.Timeout)
	defer cancel()

	resp, err := r.gen.GenerateContent(ctx, r.params.Model,
		[]*genai.Content{genai.NewContentFromText(BuildUserPrompt(query), genai.RoleUser)},
		BuildConfig(r.params, grounded),
	)
	if err != nil {
		return nil, translateError(ctx, err)
	}
	if resp == nil {
		return nil, ecolocator.Errorf(ecolocator.EINTERNAL, "gemini returned nil result")
	}
	result := ConvertResponse(resp)
	result.Ungrounded = !grounded
	return result, nil
}

// BuildConfig returns the GenerateContentConfig for a lookup.
func BuildConfig(params Params, grounded bool) *genai.GenerateContentConfig {
	temp := params.Temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildSystemInstruction(params.Sentinel)}},
		},
		Temperature:     &temp,
		MaxOutputTokens: params.MaxOutputTokens,
	}
	if grounded {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}

// BuildSystemInstruction returns the anti-fabrication instruction. The
// model is told to answer with the bare sentinel when nothing is confirmed.
func BuildSystemInstruction(sentinel string) string {
	var sb strings.Builder
	sb.WriteString("Eres el EcoLocalizador, un agente que localiza puntos de acopio de \"Botellas de Amor\" y \"Ecoladrillos\". ")
	sb.WriteString("Consideras equivalentes los términos Botellas de Amor, Ecoladrillos, Re-botellas y Madera Plástica.\n\n")
	sb.WriteString("Reglas de veracidad:\n")
	sb.WriteString("- No inventes direcciones, fundaciones ni puntos de acopio.\n")
	sb.WriteString("- Usa solo puntos confirmados por fuentes oficiales encontradas en la búsqueda.\n")
	sb.WriteString("- No des respuestas genéricas ni aproximadas si no tienes la dirección exacta.\n")
	fmt.Fprintf(&sb, "- Si no hay ningún punto confirmado, responde únicamente %s, sin ningún otro texto.\n\n", sentinel)
	sb.WriteString("Formato cuando hay datos confirmados:\n")
	sb.WriteString("Puntos de entrega en [Ciudad, País]\n")
	sb.WriteString("* [Nombre del lugar]: [Dirección exacta verificada]\n")
	sb.WriteString("* [Enlace o contacto si existe]\n")
	return sb.String()
}

// BuildUserPrompt builds the user prompt for a normalized query.
func BuildUserPrompt(query string) string {
	return fmt.Sprintf("Busca puntos de entrega de Botellas de Amor y Ecoladrillos en: %s", query)
}

// ConvertResponse maps a Gemini response onto an ExternalQueryResult.
func ConvertResponse(resp *genai.GenerateContentResponse) *ecolocator.ExternalQueryResult {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return &ecolocator.ExternalQueryResult{Finish: ecolocator.FinishSafetyBlocked}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return &ecolocator.ExternalQueryResult{Finish: ecolocator.FinishCompleted}
	}

	cand := resp.Candidates[0]
	text := resp.Text()
	return &ecolocator.ExternalQueryResult{
		Text:    text,
		Present: text != "",
		Finish:  finishSignal(cand.FinishReason),
		Sources: groundingSources(cand.GroundingMetadata),
	}
}

func finishSignal(reason genai.FinishReason) ecolocator.FinishSignal {
	switch reason {
	case genai.FinishReasonMaxTokens:
		return ecolocator.FinishLengthTruncated
	case genai.FinishReasonSafety,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonBlocklist,
		genai.FinishReasonSPII,
		genai.FinishReasonRecitation:
		return ecolocator.FinishSafetyBlocked
	default:
		return ecolocator.FinishCompleted
	}
}

// groundingSources returns the distinct web URIs cited by the answer.
func groundingSources(md *genai.GroundingMetadata) []string {
	if md == nil {
		return nil
	}
	var sources []string
	seen := make(map[string]bool)
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, chunk.Web.URI)
	}
	return sources
}

// translateError maps a GenerateContent failure onto ETIMEOUT, EUNAVAILABLE
// or, for rejected requests, EINTERNAL.
func translateError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ecolocator.Errorf(ecolocator.ETIMEOUT, "gemini request timed out")
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		// 4xx other than 429: bad request or credential.
		if apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
			return ecolocator.Errorf(ecolocator.EINTERNAL, "gemini rejected the request: HTTP %d: %s", apiErr.Code, apiErr.Message)
		}
		return ecolocator.Errorf(ecolocator.EUNAVAILABLE, "gemini returned HTTP %d: %s", apiErr.Code, apiErr.Message)
	}
	return ecolocator.Errorf(ecolocator.EUNAVAILABLE, "gemini request failed: %v", err)
}
