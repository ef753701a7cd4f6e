package overlay

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
)

// Severity grades a validation finding. Only SeverityError makes a
// configuration invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Validation and lint codes.
const (
	CodeMissingID         = "MISSING_ID"
	CodeMissingName       = "MISSING_NAME"
	CodeMissingWidgets    = "MISSING_WIDGETS"
	CodeNoWidgets         = "NO_WIDGETS"
	CodeMissingWidgetID   = "MISSING_WIDGET_ID"
	CodeMissingWidgetType = "MISSING_WIDGET_TYPE"
	CodeInvalidPosition   = "INVALID_POSITION"
	CodeInvalidAnchor     = "INVALID_ANCHOR"
	CodeInvalidTrigger    = "INVALID_TRIGGER"
	CodeMissingCondition  = "MISSING_CONDITION"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidDuration   = "INVALID_DURATION"
	CodeMissingAriaLabel  = "MISSING_ARIA_LABEL"
	CodeDuplicateID       = "DUPLICATE_ID"
	CodeDuplicateTabIndex = "DUPLICATE_TAB_INDEX"
	CodeInvalidTabIndex   = "INVALID_TAB_INDEX"
	CodeNegativePriority  = "NEGATIVE_PRIORITY"
	CodeInvalidOpacity    = "INVALID_OPACITY"
	CodeZIndexOutOfRange  = "ZINDEX_OUT_OF_RANGE"
	CodeInvalidSize       = "INVALID_SIZE"
	CodeInvalidPadding    = "INVALID_PADDING"
	CodeInvalidBinding    = "INVALID_BINDING"
	CodeInvalidSpacing    = "INVALID_SPACING"

	CodeTooManyWidgets     = "TOO_MANY_WIDGETS"
	CodeOverlappingWidgets = "OVERLAPPING_WIDGETS"
	CodeMissingTrigger     = "MISSING_TRIGGER"
	CodeNoClickHandler     = "NO_CLICK_HANDLER"
)

// ValidationError is one validation or lint finding. WidgetID is empty for
// configuration-level findings.
type ValidationError struct {
	WidgetID string   `json:"widgetId,omitempty"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (e ValidationError) Error() string {
	if e.WidgetID != "" {
		return fmt.Sprintf("%s %s (widget %s): %s", e.Severity, e.Code, e.WidgetID, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Severity, e.Code, e.Message)
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Count returns the number of findings with the given severity.
func (r ValidationResult) Count(sev Severity) int {
	n := 0
	for _, e := range r.Errors {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

type issues []ValidationError

func (is *issues) add(widgetID, code string, sev Severity, format string, args ...any) {
	*is = append(*is, ValidationError{
		WidgetID: widgetID,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// Validate checks cfg for structural problems. Findings are returned as
// data; Valid is false only when at least one has error severity. A
// configuration that fails validation is still renderable.
func Validate(cfg Configuration) ValidationResult {
	var out issues
	if cfg.ID == "" {
		out.add("", CodeMissingID, SeverityError, "configuration id is required")
	}
	if cfg.Name == "" {
		out.add("", CodeMissingName, SeverityError, "configuration name is required")
	}
	if !cfg.Spacing.Valid() {
		out.add("", CodeInvalidSpacing, SeverityWarning, "unknown spacing %q, using normal", cfg.Spacing)
	}
	if cfg.DefaultStyle != nil {
		validateStyle(&out, "", cfg.DefaultStyle)
	}
	switch {
	case cfg.Widgets == nil:
		out.add("", CodeMissingWidgets, SeverityError, "widgets must be a list")
	case len(cfg.Widgets) == 0:
		out.add("", CodeNoWidgets, SeverityWarning, "configuration has no widgets")
	}

	seenID := make(map[string]bool)
	seenTab := make(map[int]string)
	for i, w := range cfg.Widgets {
		ref := w.ID
		if w.ID == "" {
			ref = "#" + strconv.Itoa(i)
			out.add(ref, CodeMissingWidgetID, SeverityError, "widget at index %d has no id", i)
		} else if seenID[w.ID] {
			out.add(w.ID, CodeDuplicateID, SeverityError, "duplicate widget id %q", w.ID)
		}
		seenID[w.ID] = true

		if w.Type == "" {
			out.add(ref, CodeMissingWidgetType, SeverityError, "widget type is required")
		}
		if err := w.Position.Validate(); err != nil {
			code := CodeInvalidPosition
			if errors.Is(err, ErrInvalidAnchor) {
				code = CodeInvalidAnchor
			}
			out.add(ref, code, SeverityError, "%v", err)
		}
		validateVisibility(&out, ref, w.Visibility)

		if w.Interactive && w.AriaLabel == "" && !w.HandlesInteraction {
			out.add(ref, CodeMissingAriaLabel, SeverityError, "interactive widget needs an aria label")
		}
		if w.TabIndex != nil {
			t := *w.TabIndex
			switch {
			case t < -1:
				out.add(ref, CodeInvalidTabIndex, SeverityError, "tab index %d is below -1", t)
			case t > 0:
				if other, ok := seenTab[t]; ok {
					out.add(ref, CodeDuplicateTabIndex, SeverityWarning, "tab index %d is also used by %s", t, other)
				} else {
					seenTab[t] = ref
				}
			}
		}
		if p := w.PriorityValue(); p < 0 {
			out.add(ref, CodeNegativePriority, SeverityWarning, "priority %d is negative", p)
		}
		if w.Style != nil {
			validateStyle(&out, ref, w.Style)
		}
		for _, name := range slices.Sorted(maps.Keys(w.Bindings)) {
			if err := w.Bindings[name].Validate(); err != nil {
				out.add(ref, CodeInvalidBinding, SeverityError, "binding %q: %v", name, err)
			}
		}
	}

	res := ValidationResult{Valid: true, Errors: []ValidationError(out)}
	if res.Errors == nil {
		res.Errors = []ValidationError{}
	}
	for _, e := range res.Errors {
		if e.Severity == SeverityError {
			res.Valid = false
			break
		}
	}
	return res
}

func validateVisibility(out *issues, ref string, v VisibilityConfig) {
	if !v.Trigger.Valid() {
		out.add(ref, CodeInvalidTrigger, SeverityError, "unknown trigger %q", v.Trigger)
	}
	if v.Trigger == TriggerCustom && v.Condition == "" {
		out.add(ref, CodeMissingCondition, SeverityError, "custom trigger needs a condition")
	}
	if v.Transition != "" && !v.Transition.Valid() {
		out.add(ref, CodeInvalidTransition, SeverityWarning, "unknown transition %q, using fade", v.Transition)
	}
	if v.Duration != "" && !v.Duration.Valid() {
		out.add(ref, CodeInvalidDuration, SeverityWarning, "unknown duration %q, using normal", v.Duration)
	}
}

func validateStyle(out *issues, ref string, s *Style) {
	if s.Opacity != nil && (*s.Opacity < 0 || *s.Opacity > 1) {
		out.add(ref, CodeInvalidOpacity, SeverityError, "opacity %g is outside [0, 1]", *s.Opacity)
	}
	if s.ZIndex != nil && (*s.ZIndex < WidgetZIndexMin || *s.ZIndex > WidgetZIndexMax) {
		out.add(ref, CodeZIndexOutOfRange, SeverityWarning, "z-index %d is outside the widget band [%d, %d]",
			*s.ZIndex, WidgetZIndexMin, WidgetZIndexMax)
	}
	if s.Size != nil && *s.Size < 0 {
		out.add(ref, CodeInvalidSize, SeverityError, "size %g is negative", *s.Size)
	}
	if s.Padding != nil && *s.Padding < 0 {
		out.add(ref, CodeInvalidPadding, SeverityError, "padding %g is negative", *s.Padding)
	}
}

// ReportIssues sends findings for the configuration to the global error
// handler as one grouped report. Nothing is sent when there are none.
func ReportIssues(cfgID, source string, findings []ValidationError) {
	if len(findings) == 0 {
		return
	}
	report := &overlayerrors.IssueReport{ConfigID: cfgID, Source: source}
	for _, f := range findings {
		report.Issues = append(report.Issues, overlayerrors.Issue{
			WidgetID: f.WidgetID,
			Code:     f.Code,
			Message:  f.Message,
			Severity: string(f.Severity),
		})
	}
	overlayerrors.ReportIssues(report)
}
