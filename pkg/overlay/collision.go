package overlay

import (
	"github.com/go-drift/studio/pkg/geometry"
)

// MaxResolveAttempts bounds the relocation passes of DetectCollisions.
const MaxResolveAttempts = 3

// CollisionInfo describes one overlapping pair. First precedes Second in the
// configuration's widget order.
type CollisionInfo struct {
	First   string        `json:"first"`
	Second  string        `json:"second"`
	Overlap geometry.Rect `json:"overlap"`
}

// CollisionResult is the outcome of a collision check.
type CollisionResult struct {
	// Collisions lists the pairs that overlapped as measured.
	Collisions []CollisionInfo `json:"collisions"`
	// Adjusted maps widget ids to replacement positions the host should
	// apply on its next render. Widgets that keep their position are absent.
	Adjusted map[string]WidgetPosition `json:"adjusted,omitempty"`
	// Unresolved lists widgets still overlapping after resolution, in
	// configuration order. It is empty when resolution is disabled.
	Unresolved []string `json:"unresolved,omitempty"`
}

// HasCollisions reports whether any pair overlapped.
func (r CollisionResult) HasCollisions() bool {
	return len(r.Collisions) > 0
}

// BoundsOverlap reports whether two rectangles share a region of positive
// area. Touching edges do not overlap.
func BoundsOverlap(a, b geometry.Rect) bool {
	return a.Overlaps(b)
}

type measuredWidget struct {
	widget Widget
	rect   geometry.Rect
}

// DetectCollisions tests every pair of measured widgets for overlap. Bounds
// in measured are in the same coordinate space as container; widgets without
// measured bounds are ignored.
//
// When the configuration enables collision detection, the lower-priority
// widget of each overlapping pair is moved to the first adjacent anchor whose
// box, grown by half the spacing gap, overlaps nothing else and stays inside
// the container (unless overflow is allowed). A candidate that clears its
// neighbours by less than half the gap is skipped even though it does not
// overlap them. Equal priorities move the
// widget whose id sorts later. Custom-positioned widgets are never moved.
// Widgets that cannot be placed keep their position. The configuration is
// not modified.
func DetectCollisions(cfg Configuration, container geometry.Rect, measured map[string]geometry.Rect) CollisionResult {
	var items []measuredWidget
	seen := make(map[string]bool)
	for _, w := range cfg.Widgets {
		r, ok := measured[w.ID]
		if !ok || seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		items = append(items, measuredWidget{
			widget: w,
			rect:   r.Translate(-container.Left, -container.Top),
		})
	}

	var res CollisionResult
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if BoundsOverlap(items[i].rect, items[j].rect) {
				res.Collisions = append(res.Collisions, CollisionInfo{
					First:   items[i].widget.ID,
					Second:  items[j].widget.ID,
					Overlap: items[i].rect.Intersect(items[j].rect),
				})
			}
		}
	}
	if len(res.Collisions) == 0 || !cfg.CollisionEnabled() {
		return res
	}

	r := resolver{
		items:    items,
		bounds:   geometry.RectFromLTWH(0, 0, container.Width(), container.Height()),
		overflow: cfg.OverflowAllowed(),
		gap:      cfg.Spacing.Gap() / 2,
		adjusted: make(map[string]WidgetPosition),
	}
	r.run()
	if len(r.adjusted) > 0 {
		res.Adjusted = r.adjusted
	}
	res.Unresolved = r.unresolved()
	return res
}

type resolver struct {
	items    []measuredWidget
	bounds   geometry.Rect
	overflow bool
	gap      float64
	adjusted map[string]WidgetPosition
}

func (r *resolver) run() {
	stuck := make(map[int]bool)
	for attempt := 0; attempt < MaxResolveAttempts; attempt++ {
		moved := false
		for i := range r.items {
			for j := i + 1; j < len(r.items); j++ {
				if !BoundsOverlap(r.items[i].rect, r.items[j].rect) {
					continue
				}
				loser := r.loser(i, j)
				if stuck[loser] {
					continue
				}
				if r.relocate(loser) {
					moved = true
				} else {
					stuck[loser] = true
				}
			}
		}
		if !moved {
			return
		}
	}
}

// loser returns the index of the widget that yields.
func (r *resolver) loser(i, j int) int {
	a, b := r.items[i].widget, r.items[j].widget
	pa, pb := a.PriorityValue(), b.PriorityValue()
	switch {
	case pa < pb:
		return i
	case pb < pa:
		return j
	case a.ID > b.ID:
		return i
	default:
		return j
	}
}

func (r *resolver) relocate(idx int) bool {
	item := &r.items[idx]
	pos := item.widget.Position
	if pos.Mode != ModeAnchor {
		return false
	}
	size := item.rect.Size()
	for _, cand := range AdjacentAnchors(pos.Anchor) {
		next := pos.WithAnchor(cand)
		rect, ok := AnchorRect(next, size, r.bounds.Size())
		if !ok {
			continue
		}
		if !r.overflow && !r.bounds.Contains(rect) {
			continue
		}
		if r.blocked(idx, rect.Inflate(r.gap)) {
			continue
		}
		item.rect = rect
		item.widget.Position = next
		r.adjusted[item.widget.ID] = next
		return true
	}
	return false
}

func (r *resolver) blocked(idx int, rect geometry.Rect) bool {
	for k := range r.items {
		if k != idx && BoundsOverlap(rect, r.items[k].rect) {
			return true
		}
	}
	return false
}

func (r *resolver) unresolved() []string {
	overlapping := make([]bool, len(r.items))
	for i := range r.items {
		for j := i + 1; j < len(r.items); j++ {
			if BoundsOverlap(r.items[i].rect, r.items[j].rect) {
				overlapping[i], overlapping[j] = true, true
			}
		}
	}
	var out []string
	for i, ok := range overlapping {
		if ok {
			out = append(out, r.items[i].widget.ID)
		}
	}
	return out
}
