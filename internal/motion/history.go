package motion

const DefaultHistorySize = 5

// History is a fixed-capacity FIFO of the most recent motion magnitudes.
type History struct {
	values []float64
	start  int
	length int
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{values: make([]float64, size)}
}

// Push appends a magnitude, evicting the oldest one when full.
func (h *History) Push(magnitude float64) {
	if h.length < len(h.values) {
		h.values[(h.start+h.length)%len(h.values)] = magnitude
		h.length++
		return
	}
	h.values[h.start] = magnitude
	h.start = (h.start + 1) % len(h.values)
}

func (h *History) Len() int {
	return h.length
}

func (h *History) Cap() int {
	return len(h.values)
}

// Mean averages the held values only, so it is taken over fewer samples
// during warm-up.
func (h *History) Mean() float64 {
	if h.length == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < h.length; i++ {
		sum += h.values[(h.start+i)%len(h.values)]
	}
	return sum / float64(h.length)
}

// Values returns the held magnitudes, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.length)
	for i := range out {
		out[i] = h.values[(h.start+i)%len(h.values)]
	}
	return out
}
