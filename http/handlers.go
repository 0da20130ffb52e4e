package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ecolocator"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// formField is the search form input name.
const formField = "ciudad"

// resultPage is the data rendered by the result template.
type resultPage struct {
	City      string
	Body      string
	Source    ecolocator.Source
	Truncated bool
	Sources   []string

	// Reminder is set when Body does not already end with it.
	Reminder string
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string `json:"status"`
	ecolocator.Health
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", nil)
}

func (s *Server) handleSearch(c *gin.Context) {
	raw := c.PostForm(formField)

	result, err := s.resolver.Resolve(c.Request.Context(), raw)
	if ecolocator.IsMissingQuery(err) {
		c.HTML(http.StatusOK, "index", nil)
		return
	} else if err != nil {
		s.logger.Error("search failed", "query", raw, "error", err)
		c.String(statusFor(err), ecolocator.ErrorMessage(err))
		return
	}

	page := resultPage{
		City:      result.Query,
		Body:      result.Body,
		Source:    result.Source,
		Truncated: result.Truncated,
		Sources:   result.Sources,
	}
	if !strings.HasSuffix(result.Body, ecolocator.Reminder) {
		page.Reminder = ecolocator.Reminder
	}
	c.HTML(http.StatusOK, "result", page)
}

func (s *Server) handleResolve(c *gin.Context) {
	result, err := s.resolver.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		if !ecolocator.IsMissingQuery(err) {
			s.logger.Error("resolve failed", "query", c.Query("q"), "error", err)
		}
		c.JSON(statusFor(err), gin.H{"error": ecolocator.ErrorMessage(err)})
		return
	}

	etag := resultETag(result)
	c.Header("ETag", etag)
	if matchesETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status: "OK",
		Health: s.resolver.Health(),
	})
}

func (s *Server) handleMetrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

// statusFor maps an application error code to an HTTP status.
func statusFor(err error) int {
	switch ecolocator.ErrorCode(err) {
	case ecolocator.EINVALID:
		return http.StatusBadRequest
	case ecolocator.ENOTFOUND:
		return http.StatusNotFound
	case ecolocator.ETIMEOUT:
		return http.StatusGatewayTimeout
	case ecolocator.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// resultETag returns a strong validator covering every serialized field of
// result except its ID, which is fresh on each call.
func resultETag(result *ecolocator.ResolutionResult) string {
	d := xxhash.New()
	fmt.Fprintf(d, "%s\x00%s\x00%s\x00%s\x00%s\x00%t\x00%t\x00%d",
		result.Source, result.Query, result.Normalized, result.Zone, result.Body,
		result.Truncated, result.Ungrounded, len(result.Sources))
	for _, src := range result.Sources {
		fmt.Fprintf(d, "\x00%s", src)
	}
	return fmt.Sprintf(`"%016x"`, d.Sum64())
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
