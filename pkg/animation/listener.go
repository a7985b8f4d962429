package animation

// Listener receives lifecycle notifications for an [Animation]. Every call
// runs on the host's event context, never on the scheduler goroutine.
type Listener interface {
	// OnStart is called once when the start delay has elapsed.
	OnStart(a *Animation)
	// OnRepeat is called when a repeating animation wraps around, or when an
	// oscillating animation changes direction.
	OnRepeat(a *Animation, dir Direction)
	// OnEnd is called once when the animation completes naturally. It is
	// never called for a stopped or superseded animation.
	OnEnd(a *Animation)
}

// ListenerFuncs adapts plain functions to [Listener]. Nil fields are skipped.
type ListenerFuncs struct {
	Start  func(a *Animation)
	Repeat func(a *Animation, dir Direction)
	End    func(a *Animation)
}

// OnStart calls Start if set.
func (f ListenerFuncs) OnStart(a *Animation) {
	if f.Start != nil {
		f.Start(a)
	}
}

// OnRepeat calls Repeat if set.
func (f ListenerFuncs) OnRepeat(a *Animation, dir Direction) {
	if f.Repeat != nil {
		f.Repeat(a, dir)
	}
}

// OnEnd calls End if set.
func (f ListenerFuncs) OnEnd(a *Animation) {
	if f.End != nil {
		f.End(a)
	}
}

// Listeners fans every notification out to ls in order. Nil entries are
// skipped.
func Listeners(ls ...Listener) Listener {
	return multiListener(ls)
}

type multiListener []Listener

func (m multiListener) OnStart(a *Animation) {
	for _, l := range m {
		if l != nil {
			l.OnStart(a)
		}
	}
}

func (m multiListener) OnRepeat(a *Animation, dir Direction) {
	for _, l := range m {
		if l != nil {
			l.OnRepeat(a, dir)
		}
	}
}

func (m multiListener) OnEnd(a *Animation) {
	for _, l := range m {
		if l != nil {
			l.OnEnd(a)
		}
	}
}
