package selection

// HitTester resolves the item id under a screen coordinate. Implementations
// report ok=false for coordinates over empty space, headers, or padding.
type HitTester interface {
	ResolveIDAt(x, y int) (id string, ok bool)
}

// DragState is the observable state of an in-flight drag gesture. Preview is
// the tentative range highlighted while dragging; it becomes the committed
// selection only on release.
type DragState struct {
	Dragging bool
	StartID  string
	EndID    string
	Preview  map[string]struct{}
}

// InPreview reports whether id falls inside the current preview range.
func (d DragState) InPreview(id string) bool {
	_, ok := d.Preview[id]
	return ok
}

// DragController turns pointer press/move/release events into a live preview
// range and, on release, a committed selection.
//
// The controller has two states, idle and dragging, and always returns to
// idle after a gesture. Gestures with zero or multiple simultaneous contacts
// never start or alter a drag; a second finger landing mid-gesture must not
// be mistaken for a new one.
type DragController struct {
	hits     HitTester
	scroller *Scroller
	state    DragState
}

// NewDragController creates a controller over the given hit-tester and
// scroller.
func NewDragController(hits HitTester, scroller *Scroller) *DragController {
	return &DragController{hits: hits, scroller: scroller}
}

// State returns the current drag state. The Preview map must be treated as
// read-only by callers.
func (c *DragController) State() DragState {
	return c.state
}

// Dragging reports whether a gesture is in flight.
func (c *DragController) Dragging() bool {
	return c.state.Dragging
}

// TouchStart begins a drag when a single contact lands on a resolvable item.
// It returns true when a drag started, which callers use to suppress the
// platform's default press behavior (cursor moves, native scrolling).
func (c *DragController) TouchStart(contacts, x, y int) bool {
	if c.state.Dragging || contacts != 1 {
		return false
	}

	id, ok := c.hits.ResolveIDAt(x, y)
	if !ok {
		return false
	}

	c.state = DragState{
		Dragging: true,
		StartID:  id,
		EndID:    id,
		Preview:  map[string]struct{}{id: {}},
	}
	c.scroller.Start(y)
	return true
}

// TouchMove extends the preview range to the item under the pointer, given
// the current rendered order seq. Moves with multiple contacts are ignored,
// and a pointer over empty space leaves the preview where it was.
func (c *DragController) TouchMove(seq []string, contacts, x, y int) {
	if !c.state.Dragging || contacts != 1 {
		return
	}

	c.scroller.Update(y)

	id, ok := c.hits.ResolveIDAt(x, y)
	if !ok || id == c.state.EndID {
		return
	}

	c.state.EndID = id
	c.state.Preview = RangeBetween(seq, c.state.StartID, id)
}

// TouchEnd finishes the gesture: the scroller is cancelled, the preview
// range replaces m's selection with the anchor at the drag's end id, and the
// controller returns to idle.
//
// Replacing (rather than unioning, as an extend-toggle does) keeps the
// committed selection equal to exactly what the user saw highlighted.
func (c *DragController) TouchEnd(m *Model) {
	if !c.state.Dragging {
		return
	}

	c.scroller.Cancel()
	m.Replace(c.state.Preview, c.state.EndID)
	c.state = DragState{}
}

// Close cancels any pending auto-scroll task unconditionally. Call on
// teardown of the owning view.
func (c *DragController) Close() {
	c.scroller.Cancel()
	c.state = DragState{}
}
