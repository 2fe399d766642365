// Package selection implements multi-select state for an ordered video list.
//
// The package is UI-agnostic: callers supply the current rendered order of
// item ids on every call, and the types here own only selection state. Three
// pieces compose:
//
//   - [RangeBetween] : pure index-range computation between two ids
//   - [Model] : the committed selected-id set plus the range anchor
//   - [DragController] : a press/move/release state machine that builds a
//     preview range during a pointer drag and commits it on release, driving
//     a [Scroller] while the pointer sits near a viewport edge
//
// Hit-testing and scroll scheduling are injected ([HitTester], [ScheduleFunc])
// so the state machine is testable without a terminal.
package selection
