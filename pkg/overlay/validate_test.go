package overlay

import (
	"testing"

	"github.com/go-drift/studio/pkg/binding"
)

func codes(errs []ValidationError) map[string]Severity {
	out := make(map[string]Severity)
	for _, e := range errs {
		out[e.Code] = e.Severity
	}
	return out
}

func countCode(errs []ValidationError, code string) int {
	n := 0
	for _, e := range errs {
		if e.Code == code {
			n++
		}
	}
	return n
}

func TestValidateValidConfig(t *testing.T) {
	res := Validate(sampleConfig())
	if !res.Valid {
		t.Fatalf("sample config invalid: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected findings: %v", res.Errors)
	}
}

func TestValidateDuplicateID(t *testing.T) {
	cfg := sampleConfig()
	cfg.Widgets = append(cfg.Widgets, widget("status", AtAnchor(AnchorTopLeft)))
	res := Validate(cfg)
	if res.Valid {
		t.Error("duplicate ids should make the config invalid")
	}
	if n := countCode(res.Errors, CodeDuplicateID); n != 1 {
		t.Errorf("DUPLICATE_ID reported %d times, want 1", n)
	}

	cfg.Widgets = append(cfg.Widgets, widget("status", AtAnchor(AnchorCenter)))
	if n := countCode(Validate(cfg).Errors, CodeDuplicateID); n != 2 {
		t.Errorf("three copies: DUPLICATE_ID reported %d times, want 2", n)
	}
}

func TestValidateWidgetsList(t *testing.T) {
	cfg := Configuration{ID: "c", Name: "C"}
	res := Validate(cfg)
	if res.Valid || codes(res.Errors)[CodeMissingWidgets] != SeverityError {
		t.Errorf("nil widgets: %+v", res)
	}

	cfg.Widgets = []Widget{}
	res = Validate(cfg)
	if !res.Valid {
		t.Errorf("empty widgets should stay valid: %v", res.Errors)
	}
	if codes(res.Errors)[CodeNoWidgets] != SeverityWarning {
		t.Errorf("empty widgets should warn: %v", res.Errors)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
		code   string
		sev    Severity
	}{
		{"missing id", func(c *Configuration) { c.ID = "" }, CodeMissingID, SeverityError},
		{"missing name", func(c *Configuration) { c.Name = "" }, CodeMissingName, SeverityError},
		{"unknown spacing", func(c *Configuration) { c.Spacing = "roomy" }, CodeInvalidSpacing, SeverityWarning},
		{"missing widget id", func(c *Configuration) { c.Widgets[0].ID = "" }, CodeMissingWidgetID, SeverityError},
		{"missing widget type", func(c *Configuration) { c.Widgets[0].Type = "" }, CodeMissingWidgetType, SeverityError},
		{"bad anchor", func(c *Configuration) { c.Widgets[0].Position.Anchor = "middle" }, CodeInvalidAnchor, SeverityError},
		{"bad mode", func(c *Configuration) { c.Widgets[0].Position.Mode = "fixed" }, CodeInvalidPosition, SeverityError},
		{"bad trigger", func(c *Configuration) { c.Widgets[0].Visibility.Trigger = "press" }, CodeInvalidTrigger, SeverityError},
		{"custom without condition", func(c *Configuration) { c.Widgets[0].Visibility.Trigger = TriggerCustom }, CodeMissingCondition, SeverityError},
		{"bad transition", func(c *Configuration) { c.Widgets[0].Visibility.Transition = "spin" }, CodeInvalidTransition, SeverityWarning},
		{"bad duration", func(c *Configuration) { c.Widgets[0].Visibility.Duration = "glacial" }, CodeInvalidDuration, SeverityWarning},
		{"missing aria label", func(c *Configuration) { c.Widgets[1].AriaLabel = "" }, CodeMissingAriaLabel, SeverityError},
		{"tab index below -1", func(c *Configuration) { c.Widgets[0].TabIndex = Int(-2) }, CodeInvalidTabIndex, SeverityError},
		{"duplicate tab index", func(c *Configuration) {
			c.Widgets[0].TabIndex = Int(1)
			c.Widgets[1].TabIndex = Int(1)
		}, CodeDuplicateTabIndex, SeverityWarning},
		{"negative priority", func(c *Configuration) { c.Widgets[0].Priority = Int(-1) }, CodeNegativePriority, SeverityWarning},
		{"opacity", func(c *Configuration) { c.Widgets[0].Style = &Style{Opacity: Float(1.5)} }, CodeInvalidOpacity, SeverityError},
		{"z-index", func(c *Configuration) { c.Widgets[0].Style = &Style{ZIndex: Int(999)} }, CodeZIndexOutOfRange, SeverityWarning},
		{"size", func(c *Configuration) { c.Widgets[0].Style = &Style{Size: Float(-1)} }, CodeInvalidSize, SeverityError},
		{"padding", func(c *Configuration) { c.DefaultStyle = &Style{Padding: Float(-4)} }, CodeInvalidPadding, SeverityError},
		{"binding", func(c *Configuration) {
			c.Widgets[0].Bindings = map[string]binding.Spec{"label": {Kind: binding.KindPath}}
		}, CodeInvalidBinding, SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(&cfg)
			res := Validate(cfg)
			got, ok := codes(res.Errors)[tt.code]
			if !ok {
				t.Fatalf("%s not reported; got %v", tt.code, res.Errors)
			}
			if got != tt.sev {
				t.Errorf("%s severity = %s, want %s", tt.code, got, tt.sev)
			}
			if res.Valid != (res.Count(SeverityError) == 0) {
				t.Errorf("Valid = %v with %d errors", res.Valid, res.Count(SeverityError))
			}
		})
	}
}

func TestValidateSelfHandlingWidget(t *testing.T) {
	cfg := sampleConfig()
	cfg.Widgets[1].AriaLabel = ""
	cfg.Widgets[1].HandlesInteraction = true
	if res := Validate(cfg); !res.Valid {
		t.Errorf("self-handling widget should not need a label: %v", res.Errors)
	}
}

func TestValidateZeroAndNegativeOneTabIndex(t *testing.T) {
	cfg := sampleConfig()
	cfg.Widgets[0].TabIndex = Int(0)
	cfg.Widgets[1].TabIndex = Int(0)
	if n := countCode(Validate(cfg).Errors, CodeDuplicateTabIndex); n != 0 {
		t.Errorf("tab index 0 shared by document order should not warn, got %d", n)
	}
	cfg.Widgets[0].TabIndex = Int(-1)
	cfg.Widgets[1].TabIndex = Int(-1)
	if res := Validate(cfg); len(res.Errors) != 0 {
		t.Errorf("tab index -1 should be accepted: %v", res.Errors)
	}
}

func TestReportIssues(t *testing.T) {
	h := captureReports(t)
	ReportIssues("card", "validate", nil)
	if len(h.reports) != 0 {
		t.Fatal("empty findings should not be reported")
	}
	ReportIssues("card", "lint", []ValidationError{
		{WidgetID: "a", Code: CodeMissingTrigger, Message: "m", Severity: SeverityWarning},
	})
	if len(h.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(h.reports))
	}
	r := h.reports[0]
	if r.ConfigID != "card" || r.Source != "lint" || len(r.Issues) != 1 || r.Issues[0].Severity != "warning" {
		t.Errorf("report = %+v", r)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{WidgetID: "a", Code: CodeDuplicateID, Message: "dup", Severity: SeverityError}
	if got, want := e.Error(), "error DUPLICATE_ID (widget a): dup"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
