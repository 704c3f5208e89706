package scene

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/gravity2d/physics"
	"github.com/lixenwraith/gravity2d/render"
)

// Scene owns a set of entities and drives their update and render dispatch
// Removal is deferred: entities are flagged inactive and dropped after the update pass
// Not safe for concurrent use; owned by the loop goroutine
type Scene struct {
	id     uuid.UUID
	name   string
	logger *zap.Logger

	entities arena
	order    []Handle
	ctx      Context

	collisions bool
	zOrder     bool
	orderDirty bool
	updating   bool

	// Contacts resolved in the last update pass
	contacts int
	shapes   []physics.Shape
	owners   []Entity
}

// Option configures a Scene
type Option func(*Scene)

// WithCollisions enables the pairwise contact pass after entity dispatch
func WithCollisions() Option {
	return func(s *Scene) { s.collisions = true }
}

// WithZOrder keeps dispatch and draw order sorted by node z-index, insertion order on ties
func WithZOrder() Option {
	return func(s *Scene) { s.zOrder = true }
}

// WithLogger sets the scene logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithName sets a display name used in logs
func WithName(name string) Option {
	return func(s *Scene) { s.name = name }
}

// New creates an empty scene
func New(opts ...Option) *Scene {
	s := &Scene{
		id:     uuid.New(),
		name:   "scene",
		logger: zap.NewNop(),
		order:  make([]Handle, 0, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("scene", s.name), zap.Stringer("scene_id", s.id))
	return s
}

// ID returns the run-unique scene identity
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// Name returns the display name
func (s *Scene) Name() string {
	return s.name
}

// Bind attaches the frame context; called by the loop driver before the first frame
func (s *Scene) Bind(ctx Context) {
	s.ctx = ctx
}

// Context returns the bound frame context, nil when running detached
func (s *Scene) Context() Context {
	return s.ctx
}

// Add transfers e into the scene, activates it and returns its handle
// Entities added during Update are first dispatched on the next pass
// Returns the zero handle for nil or for an entity owned by another scene
func (s *Scene) Add(e Entity) Handle {
	if e == nil {
		return Handle{}
	}
	n := e.Base()
	if n.scene != nil {
		if n.scene == s && s.entities.get(n.handle) != nil {
			n.active = true
			return n.handle
		}
		s.logger.Warn("entity already owned by another scene", zap.String("entity", n.Name))
		return Handle{}
	}

	h := s.entities.alloc(e)
	n.scene, n.handle, n.active = s, h, true
	s.order = append(s.order, h)
	if s.zOrder {
		s.orderDirty = true
	}

	if st, ok := e.(Starter); ok {
		st.Start()
	}
	return h
}

// Remove flags the entity for removal; a no-op for stale or zero handles
func (s *Scene) Remove(h Handle) {
	if e := s.entities.get(h); e != nil {
		e.Base().active = false
	}
}

// Get resolves a handle to a live entity
// Returns false once the entity is flagged for removal or its slot was reused
func (s *Scene) Get(h Handle) (Entity, bool) {
	e := s.entities.get(h)
	if e == nil || !e.Base().active {
		return nil, false
	}
	return e, true
}

// Alive reports whether h refers to a live entity
func (s *Scene) Alive(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

// Len returns the number of stored entities, including ones pending removal
func (s *Scene) Len() int {
	return len(s.order)
}

// Contacts returns the number of contacts resolved by the last update pass
func (s *Scene) Contacts() int {
	return s.contacts
}

// Each calls fn for every active entity in dispatch order until fn returns false
func (s *Scene) Each(fn func(h Handle, e Entity) bool) {
	for _, h := range s.order {
		e := s.entities.get(h)
		if e == nil || !e.Base().active {
			continue
		}
		if !fn(h, e) {
			return
		}
	}
}

// Clear flags every entity for removal; storage is released immediately outside an update pass
func (s *Scene) Clear() {
	for _, h := range s.order {
		if e := s.entities.get(h); e != nil {
			e.Base().active = false
		}
	}
	if !s.updating {
		s.compact()
	}
}

// Update dispatches one simulation pass
// Order: entity Update in sequence order, optional contact pass, then compaction of removed entities
func (s *Scene) Update(dt float64) {
	s.sortIfDirty()

	s.updating = true
	// Bound fixed up front: entities appended during dispatch wait for the next pass
	n := len(s.order)
	for i := 0; i < n; i++ {
		e := s.entities.get(s.order[i])
		if e == nil || !e.Base().active {
			continue
		}
		e.Update(dt)
	}

	s.contacts = 0
	if s.collisions {
		s.contacts = s.resolveContacts()
	}
	s.updating = false

	s.compact()
}

// Render dispatches Render to active entities in sequence order, later entries draw on top
func (s *Scene) Render(r render.Renderer) {
	s.sortIfDirty()
	for _, h := range s.order {
		e := s.entities.get(h)
		if e == nil || !e.Base().active {
			continue
		}
		e.Render(r)
	}
}

// resolveContacts runs the pairwise pass over active bodies and notifies colliders
func (s *Scene) resolveContacts() int {
	s.shapes = s.shapes[:0]
	s.owners = s.owners[:0]
	for _, h := range s.order {
		e := s.entities.get(h)
		if e == nil {
			continue
		}
		n := e.Base()
		if !n.active || n.Body == nil {
			continue
		}
		s.shapes = append(s.shapes, physics.Shape{Body: n.Body, HalfExtents: n.HalfExtents})
		s.owners = append(s.owners, e)
	}

	return physics.ResolvePairs(s.shapes, func(i, j int, c physics.Contact) {
		a, b := s.owners[i], s.owners[j]
		if col, ok := a.(Collider); ok {
			col.OnCollide(b, c)
		}
		if col, ok := b.(Collider); ok {
			flipped := c
			flipped.Normal = c.Normal.Scale(-1)
			col.OnCollide(a, flipped)
		}
	})
}

// compact drops inactive entities and frees their slots in one pass
func (s *Scene) compact() {
	kept := s.order[:0]
	removed := 0
	for _, h := range s.order {
		e := s.entities.get(h)
		if e == nil {
			continue
		}
		n := e.Base()
		if n.active {
			kept = append(kept, h)
			continue
		}
		n.scene = nil
		n.handle = Handle{}
		s.entities.release(h)
		removed++
	}
	clear(s.order[len(kept):])
	s.order = kept

	if removed > 0 {
		s.logger.Debug("entities removed", zap.Int("count", removed), zap.Int("remaining", len(s.order)))
	}
}

// sortIfDirty restores z-order; never called mid-dispatch
func (s *Scene) sortIfDirty() {
	if !s.zOrder || !s.orderDirty || s.updating {
		return
	}
	slices.SortStableFunc(s.order, func(a, b Handle) int {
		return cmp.Compare(s.zOf(a), s.zOf(b))
	})
	s.orderDirty = false
}

func (s *Scene) zOf(h Handle) int {
	if e := s.entities.get(h); e != nil {
		return e.Base().z
	}
	return 0
}
