// Package model defines the configuration descriptor handed to a mutation-testing host.
package model

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"sort"
)

// Recognized top-level keys of a descriptor document.
const (
	KeyMutator          = "mutator"
	KeyPackageManager   = "packageManager"
	KeyReporters        = "reporters"
	KeyTestRunner       = "testRunner"
	KeyTranspilers      = "transpilers"
	KeyTestFramework    = "testFramework"
	KeyCoverageAnalysis = "coverageAnalysis"
)

// RecognizedKeys lists the top-level keys in canonical order.
var RecognizedKeys = []string{
	KeyMutator,
	KeyPackageManager,
	KeyReporters,
	KeyTestRunner,
	KeyTranspilers,
	KeyTestFramework,
	KeyCoverageAnalysis,
}

// Defaults applied to every field a document leaves out.
const (
	DefaultPackageManager   = "npm"
	DefaultTestFramework    = ""
	DefaultCoverageAnalysis = CoverageOff
)

// DefaultReporters returns the reporters used when none are configured.
func DefaultReporters() []string {
	return []string{"clear-text", "progress"}
}

// IsRecognizedKey reports whether key is one of RecognizedKeys.
func IsRecognizedKey(key string) bool {
	return slices.Contains(RecognizedKeys, key)
}

// ToolOptions is the nested option block of a single tool, e.g. babel's
// {optionsFile: .babelrc}. Values are passed to the host untouched.
type ToolOptions map[string]any

// Descriptor is the immutable settings value read by the host once per run.
// The zero value is not valid; build one with NewDescriptor.
type Descriptor struct {
	mutator          string
	packageManager   string
	reporters        []string
	testRunner       string
	transpilers      []string
	testFramework    string
	coverageAnalysis CoverageMode
	toolOptions      map[string]ToolOptions
}

// Option customizes a Descriptor under construction.
type Option func(*Descriptor)

// WithPackageManager sets the dependency tool.
func WithPackageManager(name string) Option {
	return func(d *Descriptor) {
		d.packageManager = name
	}
}

// WithReporters sets the reporters in emission order.
func WithReporters(names ...string) Option {
	return func(d *Descriptor) {
		d.reporters = slices.Clone(names)
	}
}

// WithTranspilers sets the transpilers in application order.
func WithTranspilers(names ...string) Option {
	return func(d *Descriptor) {
		d.transpilers = slices.Clone(names)
	}
}

// WithTestFramework sets the assertion library.
func WithTestFramework(name string) Option {
	return func(d *Descriptor) {
		d.testFramework = name
	}
}

// WithCoverageAnalysis sets the coverage mode.
func WithCoverageAnalysis(mode CoverageMode) Option {
	return func(d *Descriptor) {
		d.coverageAnalysis = mode
	}
}

// WithToolOptions sets the option block for one tool. Repeating it for the
// same tool replaces the earlier block. Numbers are stored as int64 when they
// are whole and as float64 otherwise, whatever the source format decoded them to.
func WithToolOptions(tool string, options ToolOptions) Option {
	return func(d *Descriptor) {
		normalized := make(ToolOptions, len(options))
		for k, v := range options {
			normalized[k] = NormalizeValue(v)
		}

		d.toolOptions[tool] = normalized
	}
}

// NewDescriptor builds a descriptor from the two required fields plus options.
// Every other field starts at its documented default.
func NewDescriptor(mutator, testRunner string, opts ...Option) (Descriptor, error) {
	d := Descriptor{
		mutator:          mutator,
		packageManager:   DefaultPackageManager,
		reporters:        DefaultReporters(),
		testRunner:       testRunner,
		transpilers:      []string{},
		testFramework:    DefaultTestFramework,
		coverageAnalysis: DefaultCoverageAnalysis,
		toolOptions:      map[string]ToolOptions{},
	}

	for _, opt := range opts {
		opt(&d)
	}

	if d.reporters == nil {
		d.reporters = []string{}
	}

	if d.transpilers == nil {
		d.transpilers = []string{}
	}

	if err := d.validate(); err != nil {
		return Descriptor{}, err
	}

	return d, nil
}

func (d Descriptor) validate() error {
	var errs []error

	if d.mutator == "" {
		errs = append(errs, NewConfigurationError(KeyMutator, ErrMissingField, nil))
	}

	if d.testRunner == "" {
		errs = append(errs, NewConfigurationError(KeyTestRunner, ErrMissingField, nil))
	}

	if d.packageManager == "" {
		errs = append(errs, NewConfigurationError(KeyPackageManager, ErrMalformedValue, errors.New("must not be empty")))
	}

	if !d.coverageAnalysis.Valid() {
		_, err := ParseCoverageMode(string(d.coverageAnalysis))
		errs = append(errs, err)
	}

	errs = append(errs, checkNames(KeyReporters, d.reporters)...)
	errs = append(errs, checkNames(KeyTranspilers, d.transpilers)...)

	for tool := range d.toolOptions {
		if tool == "" || IsRecognizedKey(tool) {
			errs = append(errs, NewConfigurationError(tool, ErrMalformedValue, errors.New("invalid tool name")))
		}
	}

	return errors.Join(errs...)
}

func checkNames(key string, names []string) []error {
	var errs []error

	for i, name := range names {
		if name == "" {
			errs = append(errs, NewConfigurationError(
				fmt.Sprintf("%s.%d", key, i),
				ErrMalformedValue,
				errors.New("must not be empty"),
			))
		}
	}

	return errs
}

// Mutator names the source-mutation strategy.
func (d Descriptor) Mutator() string { return d.mutator }

// PackageManager names the dependency-resolution tool.
func (d Descriptor) PackageManager() string { return d.packageManager }

// Reporters returns a copy of the reporter names in emission order.
func (d Descriptor) Reporters() []string { return slices.Clone(d.reporters) }

// TestRunner names the test-execution tool.
func (d Descriptor) TestRunner() string { return d.testRunner }

// Transpilers returns a copy of the transpiler names in application order.
func (d Descriptor) Transpilers() []string { return slices.Clone(d.transpilers) }

// TestFramework names the assertion library, empty when none is declared.
func (d Descriptor) TestFramework() string { return d.testFramework }

// CoverageAnalysis returns the coverage mode.
func (d Descriptor) CoverageAnalysis() CoverageMode { return d.coverageAnalysis }

// Tools returns the names of tools that carry options, sorted.
func (d Descriptor) Tools() []string {
	tools := slices.Collect(maps.Keys(d.toolOptions))
	sort.Strings(tools)

	return tools
}

// ToolOptions returns a deep copy of the options of tool.
func (d Descriptor) ToolOptions(tool string) (ToolOptions, bool) {
	options, ok := d.toolOptions[tool]
	if !ok {
		return nil, false
	}

	return copyToolOptions(options), true
}

// Equal reports whether both descriptors carry the same settings.
func (d Descriptor) Equal(other Descriptor) bool {
	return reflect.DeepEqual(d, other)
}

// Document renders the descriptor as a key/value document using the file
// format keys. Every recognized key is present, so reloading the document
// reproduces the descriptor exactly.
func (d Descriptor) Document() map[string]any {
	doc := map[string]any{
		KeyMutator:          d.mutator,
		KeyPackageManager:   d.packageManager,
		KeyReporters:        slices.Clone(d.reporters),
		KeyTestRunner:       d.testRunner,
		KeyTranspilers:      slices.Clone(d.transpilers),
		KeyTestFramework:    d.testFramework,
		KeyCoverageAnalysis: string(d.coverageAnalysis),
	}

	for tool, options := range d.toolOptions {
		doc[tool] = map[string]any(copyToolOptions(options))
	}

	return doc
}

func copyToolOptions(options ToolOptions) ToolOptions {
	out := make(ToolOptions, len(options))
	for k, v := range options {
		out[k] = CopyValue(v)
	}

	return out
}

// NormalizeValue deep-copies value and rewrites every number to its canonical
// type: int64 for whole numbers that fit, float64 for the rest.
func NormalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = NormalizeValue(inner)
		}

		return out
	case ToolOptions:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = NormalizeValue(inner)
		}

		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, inner := range v {
			out[k] = NormalizeValue(inner)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = NormalizeValue(inner)
		}

		return out
	case []string:
		return slices.Clone(v)
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return normalizeUint(uint64(v))
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return normalizeUint(v)
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	default:
		return v
	}
}

func normalizeUint(v uint64) any {
	if v > math.MaxInt64 {
		return float64(v)
	}

	return int64(v)
}

// normalizeFloat keeps NaN, infinities, fractions and values beyond int64 as float64.
func normalizeFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return v
	}

	if v < math.MinInt64 || v >= math.MaxInt64 {
		return v
	}

	return int64(v)
}

// CopyValue deep-copies the maps and slices a decoded document can contain.
func CopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = CopyValue(inner)
		}

		return out
	case ToolOptions:
		return copyToolOptions(v)
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, inner := range v {
			out[k] = CopyValue(inner)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = CopyValue(inner)
		}

		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}
