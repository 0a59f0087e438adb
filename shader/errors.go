package shader

import "fmt"

// CompilationError reports a stage that failed to compile or translate.
type CompilationError struct {
	Stage Stage
	Log   string
	Err   error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}
