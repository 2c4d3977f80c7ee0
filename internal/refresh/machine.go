package refresh

// State is the phase of one pull-to-refresh cycle.
type State int

const (
	Waiting State = iota
	Primed
	Loading
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Primed:
		return "primed"
	case Loading:
		return "loading"
	default:
		return "unknown"
	}
}

// Effect is the side effect a transition asks the controller to perform.
type Effect int

const (
	EffectNone Effect = iota
	EffectPrimed
	EffectStartRefresh
	EffectFinished
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectPrimed:
		return "primed"
	case EffectStartRefresh:
		return "start-refresh"
	case EffectFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Machine holds the refresh state and decides transitions. It performs no
// side effects itself; callers act on the returned Effect.
//
// A pull primes once the offset passes above the threshold and fires on the
// release, when the offset falls back below it. While loading, offsets are
// ignored and only Complete leaves the state.
type Machine struct {
	state State
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Transition feeds a new offset.
func (m *Machine) Transition(offset, threshold float64) Effect {
	switch m.state {
	case Waiting:
		if offset > threshold {
			m.state = Primed
			return EffectPrimed
		}
	case Primed:
		if offset < threshold {
			return m.release()
		}
	case Loading:
	}
	return EffectNone
}

// Trigger starts a refresh without a gesture. It walks through Primed so the
// cycle order is the same as for a pull, and does nothing unless Waiting.
func (m *Machine) Trigger() Effect {
	if m.state != Waiting {
		return EffectNone
	}
	m.state = Primed
	return m.release()
}

// Complete ends a loading cycle.
func (m *Machine) Complete() Effect {
	if m.state != Loading {
		return EffectNone
	}
	m.state = Waiting
	return EffectFinished
}

func (m *Machine) release() Effect {
	m.state = Loading
	return EffectStartRefresh
}
