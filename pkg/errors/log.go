package errors

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool

	logger zerolog.Logger
}

// NewLogHandler returns a LogHandler writing human-readable events to stderr.
func NewLogHandler(verbose bool) *LogHandler {
	return NewLogHandlerTo(os.Stderr, verbose)
}

// NewLogHandlerTo returns a LogHandler writing human-readable events to w.
func NewLogHandlerTo(w io.Writer, verbose bool) *LogHandler {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return &LogHandler{
		Verbose: verbose,
		logger:  zerolog.New(output).With().Timestamp().Str("component", "overlay").Logger(),
	}
}

// WithLogger returns a LogHandler that writes through an existing logger.
func WithLogger(logger zerolog.Logger, verbose bool) *LogHandler {
	return &LogHandler{Verbose: verbose, logger: logger}
}

// HandleError logs an OverlayError.
func (h *LogHandler) HandleError(err *OverlayError) {
	if err == nil {
		return
	}
	ev := h.logger.Error().Str("op", err.Op).Str("kind", err.Kind.String())
	if err.WidgetID != "" {
		ev = ev.Str("widget", err.WidgetID)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Err(err.Err).Msg("overlay error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("overlay panic")
}

// HandleIssues logs one summary event followed by one event per issue.
func (h *LogHandler) HandleIssues(report *IssueReport) {
	if report == nil || len(report.Issues) == 0 {
		return
	}
	h.logger.Warn().
		Str("config", report.ConfigID).
		Str("source", report.Source).
		Int("errors", report.Count("error")).
		Int("warnings", report.Count("warning")).
		Int("info", report.Count("info")).
		Msg("configuration issues")
	for _, issue := range report.Issues {
		var ev *zerolog.Event
		switch issue.Severity {
		case "error":
			ev = h.logger.Error()
		case "warning":
			ev = h.logger.Warn()
		default:
			if !h.Verbose {
				continue
			}
			ev = h.logger.Info()
		}
		if issue.WidgetID != "" {
			ev = ev.Str("widget", issue.WidgetID)
		}
		ev.Str("code", issue.Code).Msg(issue.Message)
	}
}
