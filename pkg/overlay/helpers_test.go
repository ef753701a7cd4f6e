package overlay

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
)

// recordingHandler collects everything sent to the global error handler.
type recordingHandler struct {
	mu      sync.Mutex
	errs    []*overlayerrors.OverlayError
	panics  []*overlayerrors.PanicError
	reports []*overlayerrors.IssueReport
}

func (h *recordingHandler) HandleError(err *overlayerrors.OverlayError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *overlayerrors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func (h *recordingHandler) HandleIssues(report *overlayerrors.IssueReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reports = append(h.reports, report)
}

func captureReports(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	overlayerrors.SetHandler(h)
	t.Cleanup(func() { overlayerrors.SetHandler(nil) })
	return h
}

// cmpOpts compares configurations, which carry unexported Length fields.
var cmpOpts = []cmp.Option{cmp.AllowUnexported(Length{})}

func widget(id string, pos WidgetPosition) Widget {
	return Widget{
		ID:         id,
		Type:       "badge",
		Position:   pos,
		Visibility: VisibilityConfig{Trigger: TriggerAlways},
	}
}

func sampleConfig() Configuration {
	return Configuration{
		ID:   "card",
		Name: "Card",
		Widgets: []Widget{
			widget("status", At(AnchorTopRight, -8, 8)),
			{
				ID:          "favorite",
				Type:        "button",
				Position:    At(AnchorBottomRight, -8, -8),
				Visibility:  VisibilityConfig{Trigger: TriggerHoverContainer, Transition: "fade"},
				Priority:    Int(2),
				Interactive: true,
				AriaLabel:   "Add to favorites",
				Style:       &Style{ClassName: "pill"},
			},
		},
	}
}

func ids(widgets []Widget) []string {
	out := make([]string, len(widgets))
	for i, w := range widgets {
		out[i] = w.ID
	}
	return out
}
