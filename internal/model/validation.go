package model

// ValidationResult is the outcome of loading one descriptor file.
type ValidationResult struct {
	Path       Path
	Descriptor Descriptor // zero when Err is set
	Err        error
}

// OK reports whether the file loaded cleanly.
func (r ValidationResult) OK() bool {
	return r.Err == nil
}
