package shader

import (
	"errors"
	"fmt"
)

var ErrInactiveBinding = errors.New("shader: uniform set on a binding that is no longer active")

// FileError reports a shader source that could not be read.
type FileError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("shader: read %s source %q: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// CompileError carries the compiler diagnostic of a failed stage. Log is
// bounded to InfoLogLimit bytes.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("shader: compile %s stage: %s", e.Stage, e.Log)
	}
	return fmt.Sprintf("shader: compile %s stage %q: %s", e.Stage, e.Path, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: link program: %s", e.Log)
}
