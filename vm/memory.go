package vm

import "fmt"

// segmentZero is the identifier permanently reserved for the active
// program segment.
const segmentZero uint32 = 0

// Store is the segmented memory store. It owns every live segment,
// maps identifiers to segments, and recycles abandoned identifiers
// through a LIFO free list so long-running programs don't grow the
// identifier space without bound.
//
// Store is not safe for concurrent use — the machine is strictly
// single-threaded and Store is owned exclusively by one Engine.
type Store struct {
	segments [][]uint32 // segments[id] == nil means id is not live
	freeList []uint32   // abandoned identifiers available for reuse, LIFO
}

// NewStore returns an empty store with no program segment installed.
// InstallProgram must be called before any other operation.
func NewStore() *Store {
	return &Store{segments: make([][]uint32, 1)}
}

// InstallProgram installs words as segment 0, taking ownership of the
// slice. Any previous segment 0 is discarded.
func (s *Store) InstallProgram(words []uint32) {
	s.segments[segmentZero] = words
}

// Allocate creates a new segment of size words, every word zero, and
// returns a fresh identifier distinct from 0 and from every currently
// live identifier. Abandoned identifiers are reused before new ones are
// minted.
func (s *Store) Allocate(size uint32) uint32 {
	words := make([]uint32, size)

	if n := len(s.freeList); n > 0 {
		id := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.segments[id] = words
		return id
	}

	id := uint32(len(s.segments))
	s.segments = append(s.segments, words)
	return id
}

// Abandon frees the segment named by id. Fault if id is 0 or not live.
func (s *Store) Abandon(ip, id uint32) *Fault {
	if id == segmentZero {
		return newFault(FaultAbandonSegmentZero, ip, "cannot abandon segment 0")
	}
	if !s.live(id) {
		return newFault(FaultInvalidSegment, ip, segmentMessage(id))
	}
	s.segments[id] = nil
	s.freeList = append(s.freeList, id)
	return nil
}

// Load returns the word at offset in segment id.
func (s *Store) Load(ip, id, offset uint32) (uint32, *Fault) {
	seg, fault := s.segment(ip, id)
	if fault != nil {
		return 0, fault
	}
	if offset >= uint32(len(seg)) {
		return 0, newFault(FaultSegmentOffsetOutOfBounds, ip, offsetMessage(id, offset, len(seg)))
	}
	return seg[offset], nil
}

// StoreWord writes word to offset in segment id.
func (s *Store) StoreWord(ip, id, offset, word uint32) *Fault {
	seg, fault := s.segment(ip, id)
	if fault != nil {
		return fault
	}
	if offset >= uint32(len(seg)) {
		return newFault(FaultSegmentOffsetOutOfBounds, ip, offsetMessage(id, offset, len(seg)))
	}
	seg[offset] = word
	return nil
}

// Duplicate returns an owned copy of segment id's words, used by
// Load-Program to build a new segment 0 without aliasing the source.
func (s *Store) Duplicate(ip, id uint32) ([]uint32, *Fault) {
	seg, fault := s.segment(ip, id)
	if fault != nil {
		return nil, fault
	}
	words := make([]uint32, len(seg))
	copy(words, seg)
	return words, nil
}

// Length returns the length of segment id, in words.
func (s *Store) Length(ip, id uint32) (uint32, *Fault) {
	seg, fault := s.segment(ip, id)
	if fault != nil {
		return 0, fault
	}
	return uint32(len(seg)), nil
}

// ProgramLength returns the length of segment 0, which is always live.
func (s *Store) ProgramLength() uint32 {
	return uint32(len(s.segments[segmentZero]))
}

// ProgramWord returns the word at offset in segment 0 without the
// identifier-liveness check Load performs, since segment 0 is always
// present by invariant.
func (s *Store) ProgramWord(offset uint32) uint32 {
	return s.segments[segmentZero][offset]
}

func (s *Store) live(id uint32) bool {
	return id < uint32(len(s.segments)) && s.segments[id] != nil
}

func (s *Store) segment(ip, id uint32) ([]uint32, *Fault) {
	if !s.live(id) {
		return nil, newFault(FaultInvalidSegment, ip, segmentMessage(id))
	}
	return s.segments[id], nil
}

func segmentMessage(id uint32) string {
	return fmt.Sprintf("segment %d is not live", id)
}

func offsetMessage(id, offset uint32, length int) string {
	return fmt.Sprintf("offset %d out of bounds for segment %d (length %d)", offset, id, length)
}
