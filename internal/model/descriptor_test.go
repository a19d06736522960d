package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor_Defaults(t *testing.T) {
	d, err := NewDescriptor("javascript", "jest")
	require.NoError(t, err)

	assert.Equal(t, "javascript", d.Mutator())
	assert.Equal(t, "jest", d.TestRunner())
	assert.Equal(t, DefaultPackageManager, d.PackageManager())
	assert.Equal(t, []string{"clear-text", "progress"}, d.Reporters())
	assert.Equal(t, []string{}, d.Transpilers())
	assert.Equal(t, "", d.TestFramework())
	assert.Equal(t, CoverageOff, d.CoverageAnalysis())
	assert.Empty(t, d.Tools())
}

func TestNewDescriptor_Options(t *testing.T) {
	d, err := NewDescriptor("javascript", "jest",
		WithPackageManager("yarn"),
		WithReporters("html", "clear-text"),
		WithTranspilers("babel", "typescript"),
		WithTestFramework("jasmine"),
		WithCoverageAnalysis(CoveragePerTest),
		WithToolOptions("babel", ToolOptions{"optionsFile": ".babelrc"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "yarn", d.PackageManager())
	assert.Equal(t, []string{"html", "clear-text"}, d.Reporters())
	assert.Equal(t, []string{"babel", "typescript"}, d.Transpilers())
	assert.Equal(t, "jasmine", d.TestFramework())
	assert.Equal(t, CoveragePerTest, d.CoverageAnalysis())
	assert.Equal(t, []string{"babel"}, d.Tools())

	babel, ok := d.ToolOptions("babel")
	require.True(t, ok)
	assert.Equal(t, ToolOptions{"optionsFile": ".babelrc"}, babel)

	_, ok = d.ToolOptions("typescript")
	assert.False(t, ok)
}

func TestNewDescriptor_RequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		mutator    string
		testRunner string
		wantKeys   []string
	}{
		{"missing mutator", "", "jest", []string{KeyMutator}},
		{"missing test runner", "javascript", "", []string{KeyTestRunner}},
		{"missing both", "", "", []string{KeyMutator, KeyTestRunner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor(tt.mutator, tt.testRunner)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMissingField)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)

			keys := []string{}
			for _, e := range ConfigurationErrors(err) {
				keys = append(keys, e.Key)
			}

			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestNewDescriptor_MalformedValues(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantKey string
	}{
		{"empty package manager", WithPackageManager(""), KeyPackageManager},
		{"unknown coverage mode", WithCoverageAnalysis("sometimes"), KeyCoverageAnalysis},
		{"empty reporter", WithReporters("progress", ""), "reporters.1"},
		{"empty transpiler", WithTranspilers(""), "transpilers.0"},
		{"tool named like a recognized key", WithToolOptions(KeyMutator, ToolOptions{}), KeyMutator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor("javascript", "jest", tt.opt)
			require.ErrorIs(t, err, ErrMalformedValue)

			errs := ConfigurationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantKey, errs[0].Key)
		})
	}
}

func TestDescriptor_Immutable(t *testing.T) {
	reporters := []string{"progress"}
	options := ToolOptions{"optionsFile": ".babelrc", "plugins": []any{"a"}}

	d, err := NewDescriptor("javascript", "jest",
		WithReporters(reporters...),
		WithToolOptions("babel", options),
	)
	require.NoError(t, err)

	reporters[0] = "html"
	options["optionsFile"] = "changed"
	options["plugins"].([]any)[0] = "b"

	got := d.Reporters()
	got[0] = "dots"

	babel, _ := d.ToolOptions("babel")
	babel["optionsFile"] = "mutated"

	assert.Equal(t, []string{"progress"}, d.Reporters())

	fresh, _ := d.ToolOptions("babel")
	assert.Equal(t, ".babelrc", fresh["optionsFile"])
	assert.Equal(t, []any{"a"}, fresh["plugins"])
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"yaml int", 3, int64(3)},
		{"toml int64", int64(3), int64(3)},
		{"json whole float", 3.0, int64(3)},
		{"fraction", 0.5, 0.5},
		{"float32 whole", float32(2), int64(2)},
		{"uint8", uint8(7), int64(7)},
		{"huge uint", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"beyond int64", 1e19, 1e19},
		{"infinity", math.Inf(1), math.Inf(1)},
		{"string", "1.0", "1.0"},
		{"nested list", []any{1, 2.0, 2.5, "x"}, []any{int64(1), int64(2), 2.5, "x"}},
		{"nested map", map[string]any{"high": 80.0, "low": 60}, map[string]any{"high": int64(80), "low": int64(60)}},
		{"non-string keys", map[any]any{1: 2.0}, map[any]any{1: int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.value))
		})
	}
}

func TestWithToolOptions_EqualAcrossNumberTypes(t *testing.T) {
	fromYAML, err := NewDescriptor("javascript", "jest",
		WithToolOptions("jest", ToolOptions{"ratio": 1.0, "retries": 3, "thresholds": map[string]any{"high": 80}}),
	)
	require.NoError(t, err)

	fromTOML, err := NewDescriptor("javascript", "jest",
		WithToolOptions("jest", ToolOptions{"ratio": int64(1), "retries": int64(3), "thresholds": map[string]any{"high": int64(80)}}),
	)
	require.NoError(t, err)

	fromJSON, err := NewDescriptor("javascript", "jest",
		WithToolOptions("jest", ToolOptions{"ratio": 1.0, "retries": 3.0, "thresholds": map[string]any{"high": 80.0}}),
	)
	require.NoError(t, err)

	assert.True(t, fromYAML.Equal(fromTOML))
	assert.True(t, fromYAML.Equal(fromJSON))
}

func TestDescriptor_Equal(t *testing.T) {
	jest, err := NewDescriptor("javascript", "jest")
	require.NoError(t, err)

	jestAgain, err := NewDescriptor("javascript", "jest")
	require.NoError(t, err)

	mocha, err := NewDescriptor("javascript", "mocha")
	require.NoError(t, err)

	assert.True(t, jest.Equal(jestAgain))
	assert.Equal(t, jest, jestAgain)
	assert.False(t, jest.Equal(mocha))
}

func TestDescriptor_Document(t *testing.T) {
	d, err := NewDescriptor("javascript", "jest",
		WithTranspilers("babel"),
		WithToolOptions("babel", ToolOptions{"optionsFile": ".babelrc"}),
	)
	require.NoError(t, err)

	doc := d.Document()

	assert.Equal(t, map[string]any{
		KeyMutator:          "javascript",
		KeyPackageManager:   "npm",
		KeyReporters:        []string{"clear-text", "progress"},
		KeyTestRunner:       "jest",
		KeyTranspilers:      []string{"babel"},
		KeyTestFramework:    "",
		KeyCoverageAnalysis: "off",
		"babel":             map[string]any{"optionsFile": ".babelrc"},
	}, doc)
}

func TestParseCoverageMode(t *testing.T) {
	for _, mode := range CoverageModes {
		got, err := ParseCoverageMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := ParseCoverageMode("pertest")
	require.ErrorIs(t, err, ErrMalformedValue)
}

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{
		Path:   "mutation.conf.yaml",
		Key:    "babel.optionsFile",
		Reason: ErrUnreadableFile,
		Err:    errors.New("no such file"),
	}

	assert.Equal(t, `configuration error in mutation.conf.yaml at "babel.optionsFile": unreadable file: no such file`, err.Error())
	assert.ErrorIs(t, err, ErrUnreadableFile)
	assert.Equal(t, "configuration error: missing required field", (&ConfigurationError{Reason: ErrMissingField}).Error())
}

func TestConfigurationErrors_Flatten(t *testing.T) {
	first := NewConfigurationError(KeyMutator, ErrMissingField, nil)
	second := NewConfigurationError(KeyTestRunner, ErrMissingField, nil)

	joined := errors.Join(first, errors.Join(second))
	wrapped := errors.Join(errors.New("unrelated"), joined)

	assert.Equal(t, []*ConfigurationError{first, second}, ConfigurationErrors(wrapped))
	assert.Nil(t, ConfigurationErrors(nil))
	assert.Empty(t, ConfigurationErrors(errors.New("plain")))
}
