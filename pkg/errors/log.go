package errors

import "log/slog"

// LogHandler is an ErrorHandler that writes reports to Logger().
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a MotionError at error level.
func (h *LogHandler) HandleError(err *MotionError) {
	if err == nil {
		return
	}
	Logger().Error("motion error",
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("err", err.Err),
	)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	Logger().Error("motion panic", attrs...)
}
