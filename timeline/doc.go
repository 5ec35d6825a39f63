// Package timeline implements the trim timeline engine: the geometry, range
// bookkeeping and input arbitration behind a two-handle video trimmer laid
// over a horizontally scrollable strip of thumbnails.
//
// The engine never renders, decodes or plays anything. Hosts feed it gesture,
// scroll and playback-time events and act on the []Event values it returns.
// All methods must be called from a single goroutine.
package timeline
