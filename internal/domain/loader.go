// Package domain implements loading, validation and re-emission of
// configuration descriptors.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"gooze.dev/pkg/mutconf/internal/adapter"
	m "gooze.dev/pkg/mutconf/internal/model"
)

// Strictness decides what happens to problems the host tool could still
// resolve on its own: referenced files that do not exist and unknown keys.
type Strictness int

const (
	// Strict fails the load with a ConfigurationError.
	Strict Strictness = iota
	// Lenient logs a warning and leaves the problem to the host tool.
	Lenient
)

func (s Strictness) String() string {
	if s == Lenient {
		return "lenient"
	}

	return "strict"
}

// PathOptionKeys are tool option keys whose value names a file relative to
// the descriptor, e.g. babel.optionsFile.
var PathOptionKeys = []string{"optionsFile", "configFile", "tsconfigFile"}

// LoadOption customizes a single load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	strictness Strictness
}

// WithStrictness selects how missing referenced files and unknown keys are handled.
func WithStrictness(s Strictness) LoadOption {
	return func(c *loadConfig) {
		c.strictness = s
	}
}

// Loader turns descriptor files into immutable descriptors.
type Loader interface {
	// Load reads and validates a single descriptor file.
	Load(ctx context.Context, path m.Path, opts ...LoadOption) (m.Descriptor, error)
	// LoadLayered deep-merges the files in order, later files winning, and
	// validates the merged document. Mappings merge key by key; sequences
	// are replaced as a whole.
	LoadLayered(ctx context.Context, paths []m.Path, opts ...LoadOption) (m.Descriptor, error)
	// Parse validates an in-memory document. Relative option paths resolve
	// against baseDir.
	Parse(ctx context.Context, format m.Format, data []byte, baseDir m.Path, opts ...LoadOption) (m.Descriptor, error)
}

type loader struct {
	adapter.DocumentFS
	adapter.DocumentCodec
}

// NewLoader creates a Loader backed by the given filesystem and codec.
func NewLoader(fs adapter.DocumentFS, codec adapter.DocumentCodec) Loader {
	return &loader{
		DocumentFS:    fs,
		DocumentCodec: codec,
	}
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{strictness: Strict}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Load implements Loader.
func (l *loader) Load(ctx context.Context, path m.Path, opts ...LoadOption) (m.Descriptor, error) {
	return l.LoadLayered(ctx, []m.Path{path}, opts...)
}

// LoadLayered implements Loader.
func (l *loader) LoadLayered(ctx context.Context, paths []m.Path, opts ...LoadOption) (m.Descriptor, error) {
	if len(paths) == 0 {
		return m.Descriptor{}, m.NewConfigurationError("", m.ErrMissingField, errors.New("no descriptor file given"))
	}

	merged := map[string]any{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return m.Descriptor{}, err
		}

		doc, err := l.readDocument(path)
		if err != nil {
			return m.Descriptor{}, err
		}

		if err := mergo.Merge(&merged, doc, mergo.WithOverride); err != nil {
			return m.Descriptor{}, &m.ConfigurationError{Path: path, Reason: m.ErrMalformedValue, Err: fmt.Errorf("merge: %w", err)}
		}
	}

	// Errors are attributed to the last layer, which has the final word on every key.
	last := paths[len(paths)-1]

	descriptor, err := l.build(ctx, merged, last.Dir(), newLoadConfig(opts))
	if err != nil {
		return m.Descriptor{}, withPath(err, last)
	}

	slog.Debug("loaded descriptor", "paths", paths, "mutator", descriptor.Mutator(), "testRunner", descriptor.TestRunner())

	return descriptor, nil
}

// Parse implements Loader.
func (l *loader) Parse(ctx context.Context, format m.Format, data []byte, baseDir m.Path, opts ...LoadOption) (m.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return m.Descriptor{}, err
	}

	doc, err := l.Decode(format, data)
	if err != nil {
		return m.Descriptor{}, m.NewConfigurationError("", m.ErrMalformedValue, err)
	}

	return l.build(ctx, doc, baseDir, newLoadConfig(opts))
}

func (l *loader) readDocument(path m.Path) (map[string]any, error) {
	format, err := m.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := l.ReadFile(path)
	if err != nil {
		return nil, &m.ConfigurationError{Path: path, Reason: m.ErrUnreadableFile, Err: err}
	}

	doc, err := l.Decode(format, data)
	if err != nil {
		return nil, &m.ConfigurationError{Path: path, Reason: m.ErrMalformedValue, Err: err}
	}

	slog.Debug("read descriptor document", "path", path, "format", format, "keys", len(doc))

	return doc, nil
}

// document holds the recognized keys after schema validation.
type document struct {
	Mutator          string   `mapstructure:"mutator"`
	PackageManager   string   `mapstructure:"packageManager"`
	Reporters        []string `mapstructure:"reporters"`
	TestRunner       string   `mapstructure:"testRunner"`
	Transpilers      []string `mapstructure:"transpilers"`
	TestFramework    string   `mapstructure:"testFramework"`
	CoverageAnalysis string   `mapstructure:"coverageAnalysis"`
}

func (l *loader) build(ctx context.Context, raw map[string]any, baseDir m.Path, cfg loadConfig) (m.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return m.Descriptor{}, err
	}

	recognized, tools, unknown := classifyKeys(raw)

	// Tool blocks are passed through, so only recognized keys meet the schema.
	errs := []error{}
	if err := validateSchema(recognized); err != nil {
		errs = append(errs, err)
	}

	for _, key := range unknown {
		err := m.NewConfigurationError(key, m.ErrUnknownKey, nil)
		if cfg.strictness == Strict {
			errs = append(errs, err)
			continue
		}

		slog.Warn("ignoring unknown descriptor key", "key", key)
	}

	if err := l.checkPathOptions(tools, baseDir, cfg.strictness); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return m.Descriptor{}, errors.Join(errs...)
	}

	var doc document
	if err := mapstructure.Decode(recognized, &doc); err != nil {
		return m.Descriptor{}, m.NewConfigurationError("", m.ErrMalformedValue, err)
	}

	opts := make([]m.Option, 0, len(recognized)+len(tools))

	if _, ok := recognized[m.KeyPackageManager]; ok {
		opts = append(opts, m.WithPackageManager(doc.PackageManager))
	}

	if _, ok := recognized[m.KeyReporters]; ok {
		opts = append(opts, m.WithReporters(doc.Reporters...))
	}

	if _, ok := recognized[m.KeyTranspilers]; ok {
		opts = append(opts, m.WithTranspilers(doc.Transpilers...))
	}

	if _, ok := recognized[m.KeyTestFramework]; ok {
		opts = append(opts, m.WithTestFramework(doc.TestFramework))
	}

	if _, ok := recognized[m.KeyCoverageAnalysis]; ok {
		mode, err := m.ParseCoverageMode(doc.CoverageAnalysis)
		if err != nil {
			return m.Descriptor{}, err
		}

		opts = append(opts, m.WithCoverageAnalysis(mode))
	}

	for _, tool := range sortedKeys(tools) {
		opts = append(opts, m.WithToolOptions(tool, m.ToolOptions(tools[tool])))
	}

	return m.NewDescriptor(doc.Mutator, doc.TestRunner, opts...)
}

// classifyKeys splits a raw document into recognized keys, tool option
// blocks (any other key holding a mapping) and unknown keys.
func classifyKeys(raw map[string]any) (map[string]any, map[string]map[string]any, []string) {
	recognized := map[string]any{}
	tools := map[string]map[string]any{}

	var unknown []string

	for key, value := range raw {
		if m.IsRecognizedKey(key) {
			recognized[key] = value
			continue
		}

		if block, ok := value.(map[string]any); ok {
			tools[key] = block
			continue
		}

		unknown = append(unknown, key)
	}

	sort.Strings(unknown)

	return recognized, tools, unknown
}

// checkPathOptions verifies that file-valued tool options point at existing
// regular files.
func (l *loader) checkPathOptions(tools map[string]map[string]any, baseDir m.Path, strictness Strictness) error {
	var errs []error

	for _, tool := range sortedKeys(tools) {
		block := tools[tool]

		for _, option := range sortedKeys(block) {
			if !slices.Contains(PathOptionKeys, option) {
				continue
			}

			key := tool + "." + option

			value, ok := block[option].(string)
			if !ok || value == "" {
				errs = append(errs, m.NewConfigurationError(key, m.ErrMalformedValue, fmt.Errorf("expected a file path, got %v", block[option])))
				continue
			}

			err := l.checkReferencedFile(l.resolve(baseDir, value))
			if err == nil {
				continue
			}

			if strictness == Strict {
				errs = append(errs, m.NewConfigurationError(key, m.ErrUnreadableFile, err))
				continue
			}

			slog.Warn("deferring referenced file check to host tool", "key", key, "path", value, "error", err)
		}
	}

	return errors.Join(errs...)
}

func (l *loader) resolve(baseDir m.Path, value string) m.Path {
	if filepath.IsAbs(value) || baseDir == "" {
		return m.Path(value)
	}

	return l.JoinPath(string(baseDir), value)
}

func (l *loader) checkReferencedFile(path m.Path) error {
	info, err := l.FileInfo(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return nil
}

// withPath stamps path on every ConfigurationError in err that has none.
func withPath(err error, path m.Path) error {
	for _, cfgErr := range m.ConfigurationErrors(err) {
		if cfgErr.Path == "" {
			cfgErr.Path = path
		}
	}

	return err
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
