// Package desktop is the compositor. It owns the frame loop and paints
// applets in three bands around the window manager's windows, with the
// pointer cursor always last.
//
// Frames are requested from a FrameScheduler rather than a timer of the
// desktop's own, so the same code runs against the event loop in
// production and a manual clock in tests. A frame is rendered only once a
// full frame period has elapsed; the remainder carries into the next
// period.
//
// A panic while producing a frame drops that frame and nothing else; the
// next one is still scheduled. A FrameGuard can hold frames back after
// repeated faults.
//
// Cursor, StatusBar and MessageBox are the stock applets.
package desktop
