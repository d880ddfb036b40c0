package errors

import (
	"log/slog"

	"github.com/go-drift/cellui/internal/logger"
)

// LogHandler is an ErrorHandler that writes to the structured log.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool
	// Logger overrides the destination. Nil uses the process logger.
	Logger *slog.Logger
}

func (h *LogHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logger.WithComponent("errors")
}

// HandleError logs a CellError.
func (h *LogHandler) HandleError(err *CellError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Widget != "" {
		attrs = append(attrs, "widget", err.Widget)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.log().Error("cellui error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.log().Error("cellui panic", attrs...)
}

// HandleProtocolError logs a ProtocolError. The stack is always included
// because the violation aborts the program.
func (h *LogHandler) HandleProtocolError(err *ProtocolError) {
	if err == nil {
		return
	}
	h.log().Error("cellui protocol violation",
		"op", err.Op,
		"widget", err.Widget,
		"detail", err.Detail,
		"stack", err.StackTrace,
	)
}
