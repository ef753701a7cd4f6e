package widgets_test

import (
	"fmt"

	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/widgets"
)

func ExampleCountBadgeOf() {
	badge := widgets.CountBadgeOf("inbox.unread", 99)
	data := map[string]any{"inbox": map[string]any{"unread": 120}}
	fmt.Println(badge.Resolve(data).Label)
	// Output: 99+
}

func ExampleNewRegistry() {
	registry := widgets.NewRegistry()
	w, err := registry.Instantiate(widgets.TypeProgress, overlay.Widget{
		ID:       "upload",
		Bindings: map[string]binding.Spec{"value": binding.PathSpec("upload.done")},
		Props:    map[string]any{"max": 40},
	}, overlay.RuntimeOptions{})
	if err != nil {
		fmt.Println(err)
		return
	}
	c := w.Resolve(map[string]any{"upload": map[string]any{"done": 10}})
	fmt.Println(c.Label)
	// Output: 25%
}
