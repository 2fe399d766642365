package selection

// Default scroll tuning, overridable through [ScrollerOpts].
const (
	DefaultZoneSize   = 50 // Edge zone height triggering auto-scroll
	DefaultScrollStep = 10 // Distance scrolled per tick
)

// Direction indicates which way the viewport is being auto-scrolled.
type Direction int

const (
	ScrollNone Direction = iota
	ScrollUp
	ScrollDown
)

// TaskHandle cancels a scheduled callback. Cancel must be safe to call after
// the callback has already fired.
type TaskHandle interface {
	Cancel()
}

// ScheduleFunc schedules fn to run once after one animation tick and returns
// a handle to cancel it. The scroller reschedules itself from inside the
// callback while the pointer remains in a scroll zone.
type ScheduleFunc func(fn func()) TaskHandle

// ScrollFunc moves the viewport by delta units; negative is upward.
type ScrollFunc func(delta int)

// ScrollerOpts configures a [Scroller].
type ScrollerOpts struct {
	ZoneSize int // Defaults to DefaultZoneSize
	Step     int // Defaults to DefaultScrollStep
}

// Scroller scrolls the viewport while an active drag's pointer sits inside
// one of the two edge zones. It is a self-rescheduling task, not a
// fixed-duration timer: each tick scrolls once and schedules the next tick
// only while still inside a zone.
type Scroller struct {
	zoneSize int
	step     int

	scroll   ScrollFunc
	schedule ScheduleFunc
	height   func() int

	pointerY int
	active   bool
	task     TaskHandle
}

// NewScroller creates a Scroller over the given viewport callbacks. height
// reports the current viewport height so zones track terminal resizes.
func NewScroller(scroll ScrollFunc, schedule ScheduleFunc, height func() int, opts ScrollerOpts) *Scroller {
	if opts.ZoneSize <= 0 {
		opts.ZoneSize = DefaultZoneSize
	}
	if opts.Step <= 0 {
		opts.Step = DefaultScrollStep
	}
	return &Scroller{
		zoneSize: opts.ZoneSize,
		step:     opts.Step,
		scroll:   scroll,
		schedule: schedule,
		height:   height,
	}
}

// Start activates the scroller for a new drag at the given pointer height.
func (s *Scroller) Start(pointerY int) {
	s.active = true
	s.Update(pointerY)
}

// Update records the pointer's current height and kicks off the scroll task
// when the pointer has entered a zone. Outside the zones the running task
// winds down on its own at the next tick.
func (s *Scroller) Update(pointerY int) {
	if !s.active {
		return
	}
	s.pointerY = pointerY
	if s.Direction() == ScrollNone {
		return
	}
	if s.task == nil {
		s.task = s.schedule(s.tick)
	}
}

// Cancel stops any pending scroll task and deactivates the scroller. It is
// idempotent and must be called on drag end and on teardown; a task left
// running would reschedule itself indefinitely.
func (s *Scroller) Cancel() {
	s.active = false
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
}

// Active reports whether a drag is feeding the scroller.
func (s *Scroller) Active() bool {
	return s.active
}

// Direction returns the zone the pointer currently sits in.
func (s *Scroller) Direction() Direction {
	if !s.active {
		return ScrollNone
	}
	if s.pointerY < s.zoneSize {
		return ScrollUp
	}
	if h := s.height(); s.pointerY >= h-s.zoneSize {
		return ScrollDown
	}
	return ScrollNone
}

func (s *Scroller) tick() {
	if !s.active {
		return
	}
	switch s.Direction() {
	case ScrollUp:
		s.scroll(-s.step)
	case ScrollDown:
		s.scroll(s.step)
	default:
		s.task = nil
		return
	}
	s.task = s.schedule(s.tick)
}
