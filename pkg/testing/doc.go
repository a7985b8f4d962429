// Package testing provides deterministic test doubles for motion.
//
// # Controlling Time
//
// Inject a FakeClock into a scheduler and step it by hand:
//
//	clk := motiontest.NewFakeClock()
//	host := motiontest.NewRecordingHost()
//	s := animation.NewScheduler(host, animation.Config{Clock: clk})
//
//	box.Attach(host)
//	animation.New(box, time.Second).FillTo(graphics.ColorBlue).PlayOn(s)
//	clk.Advance(500 * time.Millisecond)
//
// # Observing the Host
//
// RecordingHost counts repaints, records removals and holds posted listener
// callbacks until Drain runs them, standing in for a UI event loop:
//
//	host.Drain()
//	if host.Repaints() == 0 {
//	    t.Error("expected a repaint")
//	}
//
// # Golden Snapshots
//
// CaptureSnapshot serializes shape state to JSON and MatchesFile compares
// it with a file under testdata. Run the tests with
// MOTION_UPDATE_SNAPSHOTS=1 to rewrite the files:
//
//	motiontest.CaptureSnapshot(surf.Shapes(), built.Name).
//	    MatchesFile(t, "testdata/scene.snapshot.json")
package testing
