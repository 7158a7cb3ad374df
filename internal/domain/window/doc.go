// Package window implements the floating window registry.
//
// The registry is the single source of truth for which windows are open on a
// desktop, their geometry, their minimized state, and their paint order.
//
// Stacking:
//   - Every open or focus takes the next value of a monotonic counter
//   - Values are never reused, so no two windows ever tie for frontmost
//   - Unrelated operations never disturb existing z-indices
//
// Contract:
//   - Every mutator is total; an unknown window ID is a no-op
//   - Opening an ID that is already open refocuses it instead of duplicating
//   - Geometry is stored as given, without clamping or minimum sizes
//
// A Registry is not safe for concurrent use. Callers serialize access;
// see the desktop package.
package window
