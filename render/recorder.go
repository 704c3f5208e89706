package render

// OpKind identifies a recorded draw call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpRect
	OpTexture
	OpPresent
)

// Op is one recorded draw call
type Op struct {
	Kind    OpKind
	Color   Color
	Rect    Rect
	Filled  bool
	Texture Texture
	Src     *Rect
}

// Recorder is a headless Renderer that keeps the draw calls of the current frame
// Used for tests and for running the engine without a display
type Recorder struct {
	ops    []Op
	last   []Op
	frames int
}

var _ Renderer = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{ops: make([]Op, 0, 64)}
}

func (r *Recorder) Clear(c Color) {
	r.ops = r.ops[:0]
	r.ops = append(r.ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) DrawRect(rect Rect, c Color, filled bool) {
	r.ops = append(r.ops, Op{Kind: OpRect, Rect: rect, Color: c, Filled: filled})
}

func (r *Recorder) DrawTexture(tex Texture, dst Rect, src *Rect) {
	if tex == nil {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpTexture, Texture: tex, Rect: dst, Src: src})
}

// Present freezes the current op list as the last completed frame
func (r *Recorder) Present() {
	r.ops = append(r.ops, Op{Kind: OpPresent})
	r.last = append(r.last[:0], r.ops...)
	r.ops = r.ops[:0]
	r.frames++
}

// Pending returns draw calls issued since the last Present
func (r *Recorder) Pending() []Op {
	return r.ops
}

// LastFrame returns the draw calls of the last presented frame
func (r *Recorder) LastFrame() []Op {
	return r.last
}

// Frames returns the number of presented frames
func (r *Recorder) Frames() int {
	return r.frames
}

// Count returns the number of ops of kind in the last presented frame
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.last {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
