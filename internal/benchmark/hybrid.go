package benchmark

// runHybrid evaluates a hybrid function:
//
//  1. one shared shift-rotate of the whole vector,
//  2. coordinate permutation through the shuffle table,
//  3. contiguous partition into the resolved group sizes,
//  4. each group's base shape on its sub-vector (scaled by the shape's
//     rate, no further shift or rotation),
//  5. plain summation of the group values.
func (p *Problem) runHybrid(h *hybridRT, x []float64, s *scratch) float64 {
	n := p.dim
	z, tmp, y := s.a, s.b, s.c

	ShiftRotate(z, tmp, x, p.shifts[h.shiftIdx], p.matrix(h.matIdx, h.rotate), 1.0, true, h.rotate)

	perm := p.shuffle[h.shuffleOff : h.shuffleOff+n]
	for i := range y {
		y[i] = z[perm[i]]
	}

	var f float64
	off := 0
	for g, size := range h.sizes {
		sub := y[off : off+size]
		if rate := h.rates[g]; rate != 1 {
			for i := range sub {
				sub[i] *= rate
			}
		}
		f += h.shapes[g].Func()(sub)
		off += size
	}
	return f
}
