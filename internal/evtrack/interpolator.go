package evtrack

// patchArray is the fixed-size column-major backing store shared by the
// template and every per-hypothesis model patch. Column-major here means
// element (ix, iy) lives at ix + iy*PatchSize, matching the Eigen::Array
// layout the reference tracker relies on.
type patchArray = [PatchSize * PatchSize]float32

func patchIndex(ix, iy int) int { return ix + iy*PatchSize }

// InBounds reports whether (xp, yp) admits a full 2x2 bilinear
// neighbourhood inside the patch. The upper bound is strict because the
// neighbourhood reads (ix+1, iy+1).
func InBounds(xp, yp float32) bool {
	return xp >= 0 && yp >= 0 && xp < PatchSize-1 && yp < PatchSize-1
}

// Kernel is the 2x2 bilinear weight matrix for a given sub-pixel location.
type Kernel struct {
	W00, W10, W01, W11 float32
}

// Sum returns the kernel's four weights summed; always 1 by construction.
func (k Kernel) Sum() float32 { return k.W00 + k.W10 + k.W01 + k.W11 }

func bilinearWeights(xp, yp float32) (ix, iy int, k Kernel) {
	ix = int(xp)
	iy = int(yp)
	dx := xp - float32(ix)
	dy := yp - float32(iy)
	dxdy := dx * dy
	k = Kernel{
		W00: 1 - dx - dy + dxdy,
		W10: dx - dxdy,
		W01: dy - dxdy,
		W11: dxdy,
	}
	return
}

// BilinearKernel returns the weight matrix for (xp, yp) without touching
// any array. Kernel(i,j) == {1,0,0,0} at integer coordinates.
func BilinearKernel(xp, yp float32) Kernel {
	_, _, k := bilinearWeights(xp, yp)
	return k
}

// splat adds w to the array at (xp, yp) via bilinear weights, returning
// false (and leaving the array unchanged) if out of bounds.
func splat(a *patchArray, xp, yp, w float32) bool {
	if !InBounds(xp, yp) {
		return false
	}
	ix, iy, k := bilinearWeights(xp, yp)
	a[patchIndex(ix, iy)] += k.W00 * w
	a[patchIndex(ix+1, iy)] += k.W10 * w
	a[patchIndex(ix, iy+1)] += k.W01 * w
	a[patchIndex(ix+1, iy+1)] += k.W11 * w
	return true
}

// sample reads a bilinearly-interpolated value from the array at (xp, yp);
// out-of-bounds samples are 0.
func sample(a *patchArray, xp, yp float32) float32 {
	if !InBounds(xp, yp) {
		return 0
	}
	ix, iy, k := bilinearWeights(xp, yp)
	return k.W00*a[patchIndex(ix, iy)] + k.W10*a[patchIndex(ix+1, iy)] +
		k.W01*a[patchIndex(ix, iy+1)] + k.W11*a[patchIndex(ix+1, iy+1)]
}

// sampleBatch is the elementwise form of sample over parallel coordinate
// vectors, writing results into dst (which must be at least len(xs) long).
func sampleBatch(a *patchArray, xs, ys []float32, dst []float32) {
	for i := range xs {
		dst[i] = sample(a, xs[i], ys[i])
	}
}

// Block is a mutable view onto the 2x2 neighbourhood backing a bilinear
// read/write at (xp, yp). Holding raw pointers into the array lets the
// Star/Difference scoring variants update and re-read that neighbourhood
// without copying the patch — the central performance motif of those
// variants.
type Block struct {
	p00, p10, p01, p11 *float32
}

// blockAt returns a Block over the 2x2 neighbourhood at floor(xp), floor(yp).
// The caller is responsible for bounds: unlike splat/sample, Block does not
// check InBounds.
func blockAt(a *patchArray, xp, yp float32) Block {
	ix, iy := int(xp), int(yp)
	return Block{
		p00: &a[patchIndex(ix, iy)],
		p10: &a[patchIndex(ix+1, iy)],
		p01: &a[patchIndex(ix, iy+1)],
		p11: &a[patchIndex(ix+1, iy+1)],
	}
}

// Values returns the block's four current cell values.
func (b Block) Values() (v00, v10, v01, v11 float32) {
	return *b.p00, *b.p10, *b.p01, *b.p11
}

// AddKernel adds k scaled by scale to each of the block's four cells.
func (b Block) AddKernel(k Kernel, scale float32) {
	*b.p00 += k.W00 * scale
	*b.p10 += k.W10 * scale
	*b.p01 += k.W01 * scale
	*b.p11 += k.W11 * scale
}

// SquareSum returns the sum of the block's four cell values squared.
func (b Block) SquareSum() float32 {
	v00, v10, v01, v11 := b.Values()
	return v00*v00 + v10*v10 + v01*v01 + v11*v11
}
