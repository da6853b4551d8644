package batch

import "fmt"

// CardinalityError reports mismatched counts between the repeatable
// argument lists. It is raised before any file is touched.
type CardinalityError struct {
	Option string // the offending option ("output" or "preset")
	Inputs int
	Got    int
}

func (e *CardinalityError) Error() string {
	if e.Option == "preset" {
		return fmt.Sprintf(
			"the amount of input values (%d) does not equal the amount of preset values (%d); give one preset or one per input",
			e.Inputs, e.Got)
	}
	return fmt.Sprintf(
		"the amount of input values (%d) does not equal the amount of %s values (%d)",
		e.Inputs, e.Option, e.Got)
}

// PathError reports an unusable argument path: missing, empty directory,
// output parent that does not exist, or a preset that is not a file.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return e.Err }
