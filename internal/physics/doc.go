// Package physics implements the gravity sandbox core: bodies, the ordered
// world that owns them, and the fixed-step simulation tick.
//
//   - [Body]: a point mass drawn as a circle, positioned by its top-left corner
//   - [World]: ordered body collection addressed by stable [BodyID] handles
//   - [World.Step]: pairwise attraction, integration, culling and removal
//
// # Ordering
//
// World order matters. A body never attracts itself (self-exclusion is by
// index), stars are kept in front of planets, and with the default pairwise
// integration a body moves after every single contribution, so the order of
// the other bodies shapes its trajectory.
//
// # Removal
//
// Bodies that die during a tick, by culling or by explicit deletion, keep
// acting as gravity sources until the tick ends. They are then compacted out
// in one pass and their IDs are reported in [StepResult] so holders of
// handles can drop them.
//
// # Thread Safety
//
// A World is NOT thread-safe. It is mutated by exactly one logical thread:
// event handling, then one Step, then rendering.
package physics
