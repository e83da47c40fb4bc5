package debugger

// Watchpoint names one memory cell: a segment identifier and a word
// offset within it. Array-Amend is the machine's only write opcode, so
// that is the only instruction a watchpoint can ever fire on —
// including writes to segment 0, which a running program may mutate.
type Watchpoint struct {
	Segment uint32
	Offset  uint32
}

// Watchpoints tracks a set of watched cells and how many times each
// has been written since it was armed.
type Watchpoints struct {
	points map[Watchpoint]int
}

// NewWatchpoints returns an empty watchpoint set.
func NewWatchpoints() *Watchpoints {
	return &Watchpoints{points: make(map[Watchpoint]int)}
}

// Set arms a watchpoint on (segment, offset).
func (w *Watchpoints) Set(segment, offset uint32) {
	wp := Watchpoint{Segment: segment, Offset: offset}
	if _, ok := w.points[wp]; !ok {
		w.points[wp] = 0
	}
}

// Clear disarms the watchpoint on (segment, offset), if any.
func (w *Watchpoints) Clear(segment, offset uint32) {
	delete(w.points, Watchpoint{Segment: segment, Offset: offset})
}

// Match reports whether write hits an armed watchpoint, recording the
// hit if so.
func (w *Watchpoints) Match(segment, offset uint32) bool {
	wp := Watchpoint{Segment: segment, Offset: offset}
	if _, ok := w.points[wp]; !ok {
		return false
	}
	w.points[wp]++
	return true
}

// List returns every armed watchpoint with its current hit count.
func (w *Watchpoints) List() map[Watchpoint]int {
	out := make(map[Watchpoint]int, len(w.points))
	for wp, count := range w.points {
		out[wp] = count
	}
	return out
}
