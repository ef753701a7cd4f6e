// Package testing provides test helpers for overlay hosts and engine code.
//
// # Deterministic Collision Passes
//
// A FakeScheduler stands in for time.AfterFunc so deferred collision passes
// fire exactly when a test advances the clock:
//
//	sched := overlaytest.NewFakeScheduler()
//	pass := &overlay.CollisionPass{Scheduler: sched, Measure: measure, Apply: apply}
//	pass.Schedule(cfg)
//	sched.Advance(overlay.DefaultCollisionDelay)
//
// # Snapshot Testing
//
// Capture and compare evaluated placements:
//
//	placements := engine.Evaluate(cfg, state, data)
//	overlaytest.Capture(placements).MatchesFile(t, "testdata/card.snapshot.json")
//
// Update snapshots with:
//
//	OVERLAY_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import overlaytest "github.com/go-drift/studio/pkg/testing"
package testing
