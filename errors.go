package threadcad

import (
	"fmt"
	"runtime"
)

// ErrMsg returns an error with a message, function name and line number.
func ErrMsg(msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s", msg)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s", fn.Name(), line, msg)
}

// StepError is a failure of one named step of a modeling sequence.
// The whole enclosing transaction is aborted when one is returned.
type StepError struct {
	// Step is the name of the pipeline step that failed.
	Step string
	// Dims carries the dimensions relevant to the failure, already
	// formatted, e.g. "radius=4mm pitch=1.25mm".
	Dims string
	// Code is the kernel's low-level error code, if any.
	Code string
	// Err is the underlying error.
	Err error
}

func (e *StepError) Error() string {
	s := "step " + e.Step + ": " + e.Err.Error()
	if e.Dims != "" {
		s += " (" + e.Dims + ")"
	}
	if e.Code != "" {
		s += " [kernel " + e.Code + "]"
	}
	return s
}

func (e *StepError) Unwrap() error { return e.Err }

// KernelError is a failure reported by the underlying kernel together
// with its low-level error code. Kernels return it so step diagnostics
// can surface the code.
type KernelError struct {
	// Op is the kernel operation that failed.
	Op string
	// Code is the kernel's error code.
	Code string
	// Err is the underlying error, if any.
	Err error
}

func (e *KernelError) Error() string {
	s := e.Op + " failed"
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if e.Code != "" {
		s += " [" + e.Code + "]"
	}
	return s
}

func (e *KernelError) Unwrap() error { return e.Err }
