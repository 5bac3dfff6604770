package evtrack

// Patch is a 31x31 scalar array addressed in rigid-patch coordinates. It
// backs both the rolling template (built from the event window) and the
// per-hypothesis model patches the scoring variants maintain.
type Patch struct {
	a patchArray
}

// Reset zeroes every cell.
func (p *Patch) Reset() { p.a = patchArray{} }

// At returns the value at integer patch coordinates (ix, iy).
func (p *Patch) At(ix, iy int) float32 { return p.a[patchIndex(ix, iy)] }

// Set writes the value at integer patch coordinates (ix, iy).
func (p *Patch) Set(ix, iy int, v float32) { p.a[patchIndex(ix, iy)] = v }

// Splat bilinearly adds w at (xp, yp); reports whether it was in bounds.
func (p *Patch) Splat(xp, yp, w float32) bool { return splat(&p.a, xp, yp, w) }

// Sample bilinearly reads the value at (xp, yp); 0 if out of bounds.
func (p *Patch) Sample(xp, yp float32) float32 { return sample(&p.a, xp, yp) }

// SampleBatch is the vectorised form of Sample.
func (p *Patch) SampleBatch(xs, ys []float32, dst []float32) { sampleBatch(&p.a, xs, ys, dst) }

// Block returns a mutable view onto the 2x2 neighbourhood backing (xp, yp).
// The caller must ensure InBounds(xp, yp) beforehand.
func (p *Patch) Block(xp, yp float32) Block { return blockAt(&p.a, xp, yp) }

// Sum returns the sum of every cell.
func (p *Patch) Sum() float32 {
	var s float32
	for _, v := range p.a {
		s += v
	}
	return s
}

// SquareSum returns the sum of every cell squared.
func (p *Patch) SquareSum() float32 {
	var s float32
	for _, v := range p.a {
		s += v * v
	}
	return s
}

// Scale multiplies every cell by f in place.
func (p *Patch) Scale(f float32) {
	for i := range p.a {
		p.a[i] *= f
	}
}

// AddScaled adds other scaled by f into p in place, cell by cell.
func (p *Patch) AddScaled(other *Patch, f float32) {
	for i := range p.a {
		p.a[i] += other.a[i] * f
	}
}

// CopyFrom overwrites p's cells with other's.
func (p *Patch) CopyFrom(other *Patch) { p.a = other.a }

// Raw exposes the backing array for bulk iteration (scoring variants'
// vectorised reductions).
func (p *Patch) Raw() *patchArray { return &p.a }
