package bytesource

// View is a cursor over a disjoint byte range of a shared Backing. The
// supervisor splits a Backing into N sibling views and hands one to each
// task; NewView gives a single view with no fence at all.
type View struct {
	backing *Backing
	len     int64 // absolute length of the whole backing store
	pos     int64
	chunkLen int64 // soft fence: last byte this view owns. -1 = unbounded.

	overrun          int64 // 0 = clean, OverrunEOF, or absolute offset
	firstValidOffset int64
	sawFirstValid    bool
}

// NewView returns a single unbounded view over the whole backing store.
func NewView(b *Backing) *View {
	return &View{backing: b, len: b.Len(), chunkLen: -1}
}

// Len returns the absolute length of the backing store this view reads
// from (not the size of this view's chunk).
func (v *View) Len() int64 { return v.len }

// GetPos returns the current absolute read cursor.
func (v *View) GetPos() int64 { return v.pos }

// SetPos seeks to an absolute position. p must be < Len().
func (v *View) SetPos(p int64) error {
	if p < 0 || p >= v.len {
		return ErrEOF
	}
	v.pos = p
	return nil
}

// Overrun reports whether and where this view's chunk fence was crossed.
// 0 means clean, OverrunEOF means the file ended mid-record, anything else
// is the absolute end offset (cursor position after the read) of the first
// read that went past the fence.
func (v *View) Overrun() int64 { return v.overrun }

// FirstValidOffset returns the absolute offset at which this view's first
// successfully parsed record started, or 0 if none has been recorded yet.
func (v *View) FirstValidOffset() int64 { return v.firstValidOffset }

// Read returns a slice view of the next n bytes and advances the cursor.
// The returned slice aliases the backing store; callers must not retain it
// past the backing store's lifetime and must not mutate it.
func (v *View) Read(n int64) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	end := v.pos + n
	if end > v.len {
		v.overrun = OverrunEOF
		return nil, &TruncatedError{Pos: v.pos, Want: n, Len: v.len}
	}
	if v.overrun == 0 && v.chunkLen >= 0 && end-1 > v.chunkLen {
		v.overrun = end
	}
	out := v.backing.data[v.pos:end]
	v.pos = end
	return out, nil
}

// NotifySuccess records the offset at which a successfully parsed record
// began, the first time it's called, and fails with ErrEOF once the cursor
// has reached the end of the backing store.
func (v *View) NotifySuccess(offset int64) error {
	if !v.sawFirstValid {
		v.firstValidOffset = offset
		v.sawFirstValid = true
	}
	if v.pos == v.len {
		return ErrEOF
	}
	return nil
}

// ChunkFencePolicy selects how Split assigns the final view's soft fence.
// See spec.md's Open Question on split(N): the original floor-based behavior
// leaves a few trailing bytes belonging to nobody's fence (replicated here
// as ChunkFenceLegacy for bug-compatibility tests); ChunkFenceCorrected
// assigns the true end of file and is the default.
type ChunkFencePolicy int

const (
	ChunkFenceCorrected ChunkFencePolicy = iota
	ChunkFenceLegacy
)

// Split partitions the backing store into n independent views over disjoint
// byte ranges. View i starts at i*floor(len/n) and, under the corrected
// policy, the last view's fence is the true end of file; under the legacy
// policy every view (including the last) uses the same floor-based
// boundary, which can strand a few trailing bytes past the last view's
// fence.
func Split(b *Backing, n int, policy ChunkFencePolicy) ([]*View, error) {
	if n < 1 {
		n = 1
	}
	total := b.Len()
	if total == 0 {
		return nil, ErrEOF
	}
	step := total / int64(n)
	if step == 0 {
		// fewer bytes than views requested: fall back to a single view.
		n = 1
		step = total
	}
	views := make([]*View, n)
	for i := 0; i < n; i++ {
		start := int64(i) * step
		fence := (int64(i)+1)*step - 1
		if i == n-1 && policy == ChunkFenceCorrected {
			fence = total - 1
		}
		views[i] = &View{
			backing:  b,
			len:      total,
			pos:      start,
			chunkLen: fence,
		}
	}
	return views, nil
}
