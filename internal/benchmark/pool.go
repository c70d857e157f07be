package benchmark

import "sync"

// scratch holds the per-call working vectors of one evaluation. Three
// buffers cover the deepest pipelines (rotation ping-pong plus the
// hybrid permutation / bi-Rastrigin two-bowl vector).
type scratch struct {
	a []float64
	b []float64
	c []float64
}

// scratchPool hands out scratch buffers sized for one problem
// dimension. Fitness takes a scratch per call and returns it when
// done, so concurrent evaluations never share mutable state.
type scratchPool struct {
	pool sync.Pool
}

func newScratchPool(n int) *scratchPool {
	return &scratchPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &scratch{
					a: make([]float64, n),
					b: make([]float64, n),
					c: make([]float64, n),
				}
			},
		},
	}
}

func (p *scratchPool) get() *scratch  { return p.pool.Get().(*scratch) }
func (p *scratchPool) put(s *scratch) { p.pool.Put(s) }
