// Package modal is the dispatch core for squadtui's overlay surfaces.
//
// Allowed here:
// - the closed variant identifier set and its registry
// - payload contract derivation and request validation
// - the deferred, memoizing renderer loader
//
// Not allowed here:
// - concrete renderer implementations (internal/modals)
// - open/close lifecycle and overlay compositing (internal/tui owns those)
package modal
