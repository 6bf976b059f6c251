package chaingen

import (
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//OriginalOverlap is the overlap tolerated by the first generator, 0.1% of the
//squared contact distance. Pass it to Options.Overlap to reproduce its chains.
const OriginalOverlap = 0.001

//Options contains the parameters for the chain Builder.
//The zero value is not useful, use DefaultOptions.
type Options struct {
	seed          int64
	localRetries  int     //R_local: proposals for one particle before backtracking
	maxBacktracks int     //R_global: backtrack events before giving up
	bondRule      BondRule
	bondTol       float64
	overlap       float64 //fraction of the squared contact distance non-adjacent beads may overlap
	origin        r3.Vec
	source        rand.Source
	logger        *zap.Logger
}

//DefaultOptions returns reasonable options for coarse-grained chains:
//seed 1, 100 local retries, 10000 backtracks, bonded beads touching
//(bond length = sum of radii), a relative bond tolerance of 1e-9, no overlap
//between non-adjacent beads, the first bead at the origin and no logging.
func DefaultOptions() *Options {
	r := new(Options)
	r.seed = 1
	r.localRetries = 100
	r.maxBacktracks = 10000
	r.bondRule = SumOfRadii
	r.bondTol = 1e-9
	r.overlap = 0
	r.logger = zap.NewNop()
	return r
}

//Copy returns a copy of the options.
func (O *Options) Copy() *Options {
	r := *O
	return &r
}

//Seed returns the seed for the random stream,
//and sets it to a new value, if given.
func (O *Options) Seed(s ...int64) int64 {
	if len(s) > 0 {
		O.seed = s[0]
	}
	return O.seed
}

//LocalRetries returns the number of candidates proposed for a particle before
//backtracking, and sets it to a new value, if a positive one is given.
func (O *Options) LocalRetries(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.localRetries = n[0]
	}
	return O.localRetries
}

//MaxBacktracks returns the number of backtrack events allowed before a request
//fails, and sets it to a new value, if a non-negative one is given.
//0 means that the first exhausted local retry loop is a failure.
func (O *Options) MaxBacktracks(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.maxBacktracks = n[0]
	}
	return O.maxBacktracks
}

//BondRule returns the rule giving the bond length from the radii of two bonded
//particles, and sets it to a new one, if a non-nil one is given.
func (O *Options) BondRule(rule ...BondRule) BondRule {
	if len(rule) > 0 && rule[0] != nil {
		O.bondRule = rule[0]
	}
	return O.bondRule
}

//BondTolerance returns the relative tolerance for the bond length check,
//and sets it to a new value, if a non-negative one is given.
func (O *Options) BondTolerance(tol ...float64) float64 {
	if len(tol) > 0 && tol[0] >= 0 {
		O.bondTol = tol[0]
	}
	return O.bondTol
}

//Overlap returns the tolerated overlap, as a fraction of the squared contact distance,
//for non-adjacent particles, and sets it to a new value if one in [0,1) is given.
//With the default, 0, non-adjacent particles i, j are never closer than r_i+r_j.
//OriginalOverlap reproduces the looser chains of the first, Python, generator.
func (O *Options) Overlap(f ...float64) float64 {
	if len(f) > 0 && f[0] >= 0 && f[0] < 1 {
		O.overlap = f[0]
	}
	return O.overlap
}

//Origin returns the position of the first particle of each chain,
//and sets it to a new value, if given.
func (O *Options) Origin(o ...r3.Vec) r3.Vec {
	if len(o) > 0 {
		O.origin = o[0]
	}
	return O.origin
}

//Source returns the random source for the Builder, and sets it to a new one,
//if a non-nil one is given. Without a source, the Builder seeds its own from Seed.
//A source is used by a single Builder, so ensembles ignore it.
func (O *Options) Source(src ...rand.Source) rand.Source {
	if len(src) > 0 && src[0] != nil {
		O.source = src[0]
	}
	return O.source
}

//Logger returns the logger used by the Builder, and sets it to a new one,
//if a non-nil one is given.
func (O *Options) Logger(l ...*zap.Logger) *zap.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}
