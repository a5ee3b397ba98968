package agent

import "tianji/game"

// observation is one recorded (action, outcome signal) pair.
type observation struct {
	Type   game.ActionType `json:"type"`
	Signal float64         `json:"signal"`
}

// memory is the policy's bounded move memory: a FIFO window of the last
// capacity observations. Older entries are evicted first, so the footprint
// never grows past capacity.
type memory struct {
	entries  []observation
	capacity int
}

func newMemory(capacity int) *memory {
	return &memory{capacity: capacity}
}

func (m *memory) push(o observation) {
	if m.capacity == 0 {
		return
	}
	if len(m.entries) == m.capacity {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, o)
}

func (m *memory) len() int {
	return len(m.entries)
}

// average returns the mean signal recorded for one action type in the
// window, and whether any entry matched.
func (m *memory) average(t game.ActionType) (float64, bool) {
	sum, n := 0.0, 0
	for _, e := range m.entries {
		if e.Type == t {
			sum += e.Signal
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (m *memory) snapshot() []observation {
	out := make([]observation, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *memory) restore(entries []observation) {
	if len(entries) > m.capacity {
		entries = entries[len(entries)-m.capacity:]
	}
	m.entries = append(m.entries[:0], entries...)
}
