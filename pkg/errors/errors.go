// Package errors provides structured error handling for cellui.
//
// Host-side failures (terminal setup, config files, the debug server) are
// returned as ordinary errors wrapped in [CellError]. Misuse of the widget
// protocol inside a frame is not recoverable: it is reported as a
// [ProtocolError] and then raised as a panic carrying that value.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProtocol indicates a broken begin/end call discipline or an engine
	// invariant that no longer holds.
	KindProtocol
	// KindLayout indicates a layout pass problem.
	KindLayout
	// KindInput indicates an input decoding or dispatch problem.
	KindInput
	// KindTerminal indicates a terminal host failure.
	KindTerminal
	// KindConfig indicates a configuration loading failure.
	KindConfig
	// KindDebug indicates a debug tooling failure.
	KindDebug
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindLayout:
		return "layout"
	case KindInput:
		return "input"
	case KindTerminal:
		return "terminal"
	case KindConfig:
		return "config"
	case KindDebug:
		return "debug"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// CellError represents a structured error.
type CellError struct {
	// Op is the operation that failed (e.g., "terminal.Init").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget is the widget handle involved, if any.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CellError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// Wrap returns err wrapped in a CellError, or nil when err is nil.
func Wrap(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &CellError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "terminal.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ProtocolError describes a violated engine invariant.
type ProtocolError struct {
	// Op is the engine entry point that detected the violation (e.g., "core.End").
	Op string
	// Widget is the handle being addressed.
	Widget string
	// Detail explains what was expected.
	Detail string
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
	// Timestamp is when the violation was detected.
	Timestamp time.Time
}

func (e *ProtocolError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("protocol violation in %s (widget %s): %s", e.Op, e.Widget, e.Detail)
	}
	return fmt.Sprintf("protocol violation in %s: %s", e.Op, e.Detail)
}

// ConfigError represents a failure to load a configuration file.
type ConfigError struct {
	// Path is the file being loaded.
	Path string
	// Format is the decoder used ("yaml" or "toml").
	Format string
	// Err is the decoder error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to parse %s config %s: %v", e.Format, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by cellui.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CellError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleProtocolError is called right before a protocol violation panics.
	HandleProtocolError(err *ProtocolError)
}
