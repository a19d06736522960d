package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"gooze.dev/pkg/mutconf/internal/adapter"
	m "gooze.dev/pkg/mutconf/internal/model"
)

const diffContextLines = 3

// Serializer renders descriptors back into the file format.
type Serializer interface {
	// Serialize writes the canonical document of d. Loading the result
	// yields a descriptor equal to d.
	Serialize(d m.Descriptor, format m.Format) ([]byte, error)
	// Diff returns a unified diff of the canonical YAML renditions of a and b,
	// or an empty string when they are equal.
	Diff(a, b m.Descriptor, labelA, labelB string) (string, error)
}

type serializer struct {
	adapter.DocumentCodec
}

// NewSerializer creates a Serializer using codec for encoding.
func NewSerializer(codec adapter.DocumentCodec) Serializer {
	return &serializer{DocumentCodec: codec}
}

// Serialize implements Serializer.
func (s *serializer) Serialize(d m.Descriptor, format m.Format) ([]byte, error) {
	data, err := s.Encode(format, d.Document())
	if err != nil {
		return nil, fmt.Errorf("serialize descriptor: %w", err)
	}

	return data, nil
}

// Diff implements Serializer.
func (s *serializer) Diff(a, b m.Descriptor, labelA, labelB string) (string, error) {
	if a.Equal(b) {
		return "", nil
	}

	left, err := s.Serialize(a, m.FormatYAML)
	if err != nil {
		return "", err
	}

	right, err := s.Serialize(b, m.FormatYAML)
	if err != nil {
		return "", err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(left)),
		B:        difflib.SplitLines(string(right)),
		FromFile: labelA,
		ToFile:   labelB,
		Context:  diffContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff descriptors: %w", err)
	}

	return diff, nil
}
