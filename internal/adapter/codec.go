package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/mutconf/internal/model"
)

// DocumentCodec turns descriptor files into generic documents and back.
type DocumentCodec interface {
	// Decode parses data into a document. An empty input yields an empty document.
	Decode(format m.Format, data []byte) (map[string]any, error)
	// Encode renders doc with stable key order.
	Encode(format m.Format, doc map[string]any) ([]byte, error)
}

// LocalDocumentCodec implements DocumentCodec for YAML, JSON and TOML.
type LocalDocumentCodec struct{}

// NewLocalDocumentCodec constructs a LocalDocumentCodec.
func NewLocalDocumentCodec() *LocalDocumentCodec {
	return &LocalDocumentCodec{}
}

// Decode implements DocumentCodec.
func (c *LocalDocumentCodec) Decode(format m.Format, data []byte) (map[string]any, error) {
	doc := map[string]any{}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	var err error

	switch format {
	case m.FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case m.FormatJSON:
		err = json.Unmarshal(data, &doc)
	case m.FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("decode: %w: %q", m.ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	// A document holding only "~" or "null" decodes to a nil map.
	if doc == nil {
		doc = map[string]any{}
	}

	return doc, nil
}

// Encode implements DocumentCodec.
func (c *LocalDocumentCodec) Encode(format m.Format, doc map[string]any) ([]byte, error) {
	switch format {
	case m.FormatYAML:
		var buf bytes.Buffer

		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)

		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		return buf.Bytes(), nil
	case m.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

		return append(data, '\n'), nil
	case m.FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}

		return data, nil
	}

	return nil, fmt.Errorf("encode: %w: %q", m.ErrUnsupportedFormat, format)
}
