package rush

// editKind discriminates queued buffer edits.
type editKind uint8

const (
	editAppend editKind = iota
	editDelete
)

type edit struct {
	kind editKind
	ch   rune
}

// InputState collects buffer edits between frames. Window callbacks
// append to it during event polling; Apply drains it into the grid at
// the start of the input phase, preserving arrival order so interleaved
// typing and backspacing replay exactly as entered.
//
// This is typically populated by the windowing adapter (see
// backend/opengl). Not safe for concurrent use; the single-threaded
// loop polls, applies, then renders.
type InputState struct {
	edits []edit
}

// NewInputState creates an empty input queue.
func NewInputState() *InputState {
	return &InputState{
		edits: make([]edit, 0, 16),
	}
}

// AddChar queues one typed character for appending to the buffer.
func (s *InputState) AddChar(ch rune) {
	s.edits = append(s.edits, edit{kind: editAppend, ch: ch})
}

// AddBackspace queues one tail deletion.
func (s *InputState) AddBackspace() {
	s.edits = append(s.edits, edit{kind: editDelete})
}

// Pending reports how many edits are queued.
func (s *InputState) Pending() int {
	return len(s.edits)
}

// Apply drains every queued edit into the grid in arrival order and
// clears the queue. Call once per frame, after event polling and before
// rendering.
func (s *InputState) Apply(g *Grid) {
	for _, e := range s.edits {
		switch e.kind {
		case editAppend:
			g.Append(e.ch)
		case editDelete:
			g.DeleteLast()
		}
	}
	s.edits = s.edits[:0]
}

// Reset discards any queued edits without applying them.
func (s *InputState) Reset() {
	s.edits = s.edits[:0]
}
