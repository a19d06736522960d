package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Dir returns the directory that contains the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Format is the serialization format of a descriptor document.
type Format string

const (
	// FormatYAML is the default format, used for .yaml and .yml files.
	FormatYAML Format = "yaml"
	// FormatJSON is used for .json files.
	FormatJSON Format = "json"
	// FormatTOML is used for .toml files.
	FormatTOML Format = "toml"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML}

// ParseFormat resolves a format name such as "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}

	return "", &ConfigurationError{
		Reason: ErrUnsupportedFormat,
		Err:    fmt.Errorf("format %q (expected one of %v)", name, Formats),
	}
}

// FormatFromPath detects the format from the file extension of path.
func FormatFromPath(path Path) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(string(path)), ".")
	if ext == "" {
		return "", &ConfigurationError{
			Path:   path,
			Reason: ErrUnsupportedFormat,
			Err:    errors.New("file has no extension"),
		}
	}

	format, err := ParseFormat(ext)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}

		return "", err
	}

	return format, nil
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}
