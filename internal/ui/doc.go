// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for triaging videos:
//  1. [ListView] : Browse the inbox (or saved/discarded) and build a selection
//  2. [ConfirmView] : Confirm a bulk save or discard
//  3. [ProgressView] : Monitor real-time progress updates
//  4. [ResultView] : Display the aggregate outcome and any per-chunk errors
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the TriageEngine, providing non-blocking status reporting during bulk operations.
//
// Selection supports both keyboard (space to toggle, v to range-toggle from the anchor, a for all)
// and mouse drag: press starts a preview range, motion extends it, release commits it as the
// selection. Dragging into the top or bottom rows of the viewport auto-scrolls until the pointer
// leaves the edge zone.
package ui
