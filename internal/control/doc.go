// Package control maps pointer input onto the sandbox.
//
// The [Controller] is a small modal state machine. In Create mode a press
// spawns a star or a planet; in Grab mode a press selects the first body
// under the pointer, drags it while the pointer moves and lets go on release.
// On-screen buttons are resolved through the [Buttons] predicate, which is
// supplied by whoever lays the buttons out.
//
// The controller never owns bodies. It keeps [physics.BodyID] handles for the
// body being dragged and for the last released one, and forgets them when the
// world reports their removal via [Controller.Forget].
package control
