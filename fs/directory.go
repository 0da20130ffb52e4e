// Package fs provides file-based directory sources.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/ecolocator"
	"gopkg.in/yaml.v3"
)

// LoadDirectory reads directory entries from a YAML file. Entries keep the
// order they are declared in, which is the order matching walks them.
func LoadDirectory(path string) ([]ecolocator.DirectoryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()

	return DecodeDirectory(f)
}

// DecodeDirectory decodes a YAML list of directory entries and validates
// each of them.
func DecodeDirectory(r io.Reader) ([]ecolocator.DirectoryEntry, error) {
	var entries []ecolocator.DirectoryEntry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, ecolocator.Errorf(ecolocator.EINVALID, "directory file is empty")
		}
		return nil, ecolocator.Errorf(ecolocator.EINVALID, "failed to parse directory file: %v", err)
	}

	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return entries, nil
}

// EncodeDirectory writes entries as YAML in the format DecodeDirectory reads.
func EncodeDirectory(w io.Writer, entries []ecolocator.DirectoryEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}
