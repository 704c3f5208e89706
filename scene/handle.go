package scene

import "fmt"

// Handle is a generation-checked reference to an entity slot
// The zero Handle never refers to a live entity; slot generations start at 1
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports the nil handle
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.Index, h.Generation)
}

// slot is one arena cell; generation is bumped every time the slot is freed
type slot struct {
	entity     Entity
	generation uint32
}

// arena allocates slots with generational indices and a LIFO free list
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc(e Entity) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{generation: 1})
	}
	a.slots[idx].entity = e
	a.live++
	return Handle{Index: idx, Generation: a.slots[idx].generation}
}

// get returns the entity only when h matches the slot's current generation
func (a *arena) get(h Handle) Entity {
	if h.IsZero() || int(h.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Index]
	if s.generation != h.Generation {
		return nil
	}
	return s.entity
}

// release frees the slot and invalidates every outstanding handle to it
func (a *arena) release(h Handle) {
	if a.get(h) == nil {
		return
	}
	s := &a.slots[h.Index]
	s.entity = nil
	s.generation++
	if s.generation == 0 {
		// Wrapped; skip the reserved nil generation
		s.generation = 1
	}
	a.free = append(a.free, h.Index)
	a.live--
}
