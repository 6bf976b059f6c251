/*
 * builder.go, part of chaingen.
 *
 * Copyright 2025 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chaingen

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//maxStreakShift caps the exponent of the backtrack depth.
const maxStreakShift = 20

//Stats holds the counters for the last request served by a Builder.
type Stats struct {
	Proposals  int //candidates proposed, including the degenerate ones
	Rejections int //candidates rejected by the collision checker
	Degenerate int //draws with a non-finite or zero direction
	Backtracks int //backtrack events
}

//Builder grows chains one particle at a time. It owns its random stream,
//so two Builders created with the same options produce the same chains for
//the same requests. A Builder can serve any number of requests, one at a time;
//it is not safe for concurrent use. Use one Builder per goroutine.
type Builder struct {
	o       *Options
	rng     *rand.Rand
	sampler *StepSampler
	checker *CollisionChecker
	log     *zap.Logger
	stats   Stats
}

//NewBuilder returns a Builder with a copy of the given options. If o is nil,
//DefaultOptions are used.
func NewBuilder(o *Options) *Builder {
	if o == nil {
		o = DefaultOptions()
	}
	o = o.Copy()
	B := &Builder{o: o}
	if src := o.Source(); src != nil {
		B.rng = rand.New(src)
	} else {
		B.rng = rand.New(rand.NewSource(o.Seed()))
	}
	B.sampler = NewStepSampler(B.rng)
	B.checker = NewCollisionChecker(o.BondRule(), o.BondTolerance(), o.Overlap())
	B.log = o.Logger()
	if B.log == nil {
		B.log = zap.NewNop()
	}
	return B
}

//Checker returns the collision checker used by the Builder.
func (B *Builder) Checker() *CollisionChecker {
	return B.checker
}

//Stats returns the counters for the last request.
func (B *Builder) Stats() Stats {
	return B.stats
}

//Generate places count particles, with the radii sizes[offset:offset+count].
//The first one is placed at the origin given in the options, and each
//of the following at the bond length from the previous one, without overlapping
//any earlier, non-adjacent particle.
//
//It returns a complete chain or an error, never a partial chain. The error
//unwraps to ErrInvalidInput if the request can't be attempted, to ErrUnsatisfiableGeometry
//if the backtrack budget is exhausted, or to the context error if ctx is
//done before the chain is complete.
func (B *Builder) Generate(ctx context.Context, count, offset int, sizes *SizeList) (*Chain, error) {
	B.stats = Stats{}
	if count < 0 || offset < 0 || offset+count > sizes.Len() {
		return nil, newError(ErrInvalidInput, true, "Generate", "can't place %d particles from offset %d with %d radii", count, offset, sizes.Len())
	}
	if count == 0 {
		return newChain(nil, nil), nil
	}
	radii := sizes.window(offset, count)
	bonds, err := bondLengths(B.o.BondRule(), radii)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	placed := make([]r3.Vec, 1, count)
	placed[0] = B.o.Origin()
	R := B.o.LocalRetries()
	longest := 1 //the longest the chain has been in this request
	streak := 0  //backtracks since the chain last got longer than longest
	for len(placed) < count {
		if err := ctx.Err(); err != nil {
			return nil, Error{message: "request abandoned", kind: err, deco: &[]string{"Generate"}, critical: true}
		}
		i := len(placed)
		if B.grow(placed, i, radii, bonds[i-1], R) {
			placed = placed[:i+1]
			if i+1 > longest {
				longest = i + 1
				streak = 0
			}
			continue
		}
		if B.stats.Backtracks >= B.o.MaxBacktracks() {
			B.log.Warn("backtrack budget exhausted",
				zap.Int("particles", count),
				zap.Int("longest", longest),
				zap.Int("backtracks", B.stats.Backtracks),
				zap.Int("proposals", B.stats.Proposals))
			return nil, newError(ErrUnsatisfiableGeometry, true, "Generate", "no valid position for particle %d after %d backtracks (longest chain: %d of %d particles)", offset+i, B.stats.Backtracks, longest, count)
		}
		B.stats.Backtracks++
		depth := 1 << min(streak, maxStreakShift)
		streak++
		//particle 0 is never removed.
		keep := max(i-depth, 1)
		B.log.Debug("backtracking",
			zap.Int("particle", i),
			zap.Int("removed", i-keep),
			zap.Int("streak", streak))
		placed = placed[:keep]
	}
	B.log.Debug("chain complete",
		zap.Int("particles", count),
		zap.Int("proposals", B.stats.Proposals),
		zap.Int("rejections", B.stats.Rejections),
		zap.Int("degenerate", B.stats.Degenerate),
		zap.Int("backtracks", B.stats.Backtracks))
	return newChain(placed, radii), nil
}

//grow tries up to R candidates for particle i, bonded to particle i-1 with the given length.
//On success the accepted candidate is written to placed[i] (placed must have capacity
//for it) and true is returned.
func (B *Builder) grow(placed []r3.Vec, i int, radii []float64, bond float64, R int) bool {
	prev := placed[i-1]
	for try := 0; try < R; try++ {
		B.stats.Proposals++
		cand, err := B.sampler.ProposeNext(prev, bond)
		if err != nil {
			//ProposeNext only fails with degenerate draws.
			B.stats.Degenerate++
			B.log.Debug("degenerate direction", zap.Int("particle", i), zap.Error(err))
			continue
		}
		if B.checker.IsValid(cand, placed[:i], i, radii) {
			placed = placed[:i+1]
			placed[i] = cand
			return true
		}
		B.stats.Rejections++
	}
	return false
}

//Generate is a convenience function that creates a Builder with the options o
//(DefaultOptions if nil) and uses it for a single request with the given radii.
func Generate(ctx context.Context, count, offset int, sizes []float64, o *Options) (*Chain, error) {
	S, err := NewSizeList(sizes)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	return NewBuilder(o).Generate(ctx, count, offset, S)
}
