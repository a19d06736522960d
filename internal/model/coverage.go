package model

import "fmt"

// CoverageMode controls whether and how the host collects coverage.
type CoverageMode string

const (
	// CoverageOff disables coverage analysis.
	CoverageOff CoverageMode = "off"
	// CoverageAll collects coverage for the whole test suite at once.
	CoverageAll CoverageMode = "all"
	// CoveragePerTest collects coverage per individual test.
	CoveragePerTest CoverageMode = "perTest"
)

// CoverageModes lists every accepted mode.
var CoverageModes = []CoverageMode{CoverageOff, CoverageAll, CoveragePerTest}

// ParseCoverageMode accepts exactly the spellings the host understands.
func ParseCoverageMode(value string) (CoverageMode, error) {
	mode := CoverageMode(value)
	if !mode.Valid() {
		return "", NewConfigurationError(
			KeyCoverageAnalysis,
			ErrMalformedValue,
			fmt.Errorf("%q is not one of %v", value, CoverageModes),
		)
	}

	return mode, nil
}

// Valid reports whether c is a known mode.
func (c CoverageMode) Valid() bool {
	switch c {
	case CoverageOff, CoverageAll, CoveragePerTest:
		return true
	}

	return false
}

func (c CoverageMode) String() string {
	return string(c)
}
