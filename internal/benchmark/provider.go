package benchmark

// TableRequest names the problem a provider must supply tables for,
// together with the record counts the problem's descriptors require.
// The counts are derived once at construction from the typed indices
// in the Spec; a provider may return more data than requested but
// never less.
type TableRequest struct {
	// Suite is the suite tag, "cec2013" or "cec2014".
	Suite string
	// Func is the problem id within the suite.
	Func int
	// Dim is the problem dimension n.
	Dim int
	// Shifts is the number of n-length origin vectors required.
	Shifts int
	// Matrices is the number of n×n rotation matrices required.
	Matrices int
	// ShuffleBlocks is the number of length-n permutations required
	// (zero for everything but hybrid functions).
	ShuffleBlocks int
}

// Tables holds the static problem data in the suite's flattened
// layout: shift vectors back to back, row-major rotation matrices back
// to back, and 0-based shuffle permutations back to back.
type Tables struct {
	Shift    []float64
	Rotation []float64
	Shuffle  []int
}

// Provider supplies the precomputed shift, rotation and shuffle tables
// for a problem. The data format is a fixed external contract this
// package consumes but does not define.
type Provider interface {
	Tables(req TableRequest) (*Tables, error)
}
