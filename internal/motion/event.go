package motion

import "strconv"

// Event is the optional takeoff frame of a scan. The zero value is unset,
// which is distinct from an event at frame 0.
type Event struct {
	frame int
	set   bool
}

func EventAt(frameIndex int) Event {
	return Event{frame: frameIndex, set: true}
}

func (e Event) Frame() (int, bool) {
	return e.frame, e.set
}

func (e Event) Detected() bool {
	return e.set
}

func (e Event) String() string {
	if !e.set {
		return "none"
	}
	return strconv.Itoa(e.frame)
}
