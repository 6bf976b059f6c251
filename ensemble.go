/*
 * ensemble.go, part of chaingen.
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
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	v3 "github.com/rmera/chaingen/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Ensemble is a set of independently generated chains for the same radii.
type Ensemble struct {
	ID     string   //unique for each call to GenerateEnsemble
	Seeds  []int64  //Seeds[k] is the seed of the Builder that made Chains[k]
	Chains []*Chain //all with the same length
}

//Len returns the number of chains in the ensemble.
func (E *Ensemble) Len() int {
	return len(E.Chains)
}

//Coords returns the coordinates of each chain in the ensemble.
//Empty chains give nil matrices.
func (E *Ensemble) Coords() []*v3.Matrix {
	ret := make([]*v3.Matrix, len(E.Chains))
	for i, c := range E.Chains {
		ret[i] = c.Coords()
	}
	return ret
}

//DeriveSeed returns the seed for the kth member of an ensemble generated
//with the base seed. It is a splitmix64 step, so nearby k give unrelated seeds.
func DeriveSeed(base int64, k int) int64 {
	z := uint64(base) + uint64(k+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

//GenerateEnsemble generates n chains with count particles each, from the radii
//sizes[offset:offset+count], using up to workers goroutines (runtime.NumCPU() if workers < 1).
//Chain k is produced by its own Builder, with the options o and the seed DeriveSeed(o.Seed(), k),
//so the result does not depend on the number of workers.
//The first failure cancels the remaining chains and is returned.
func GenerateEnsemble(ctx context.Context, n, count, offset int, sizes *SizeList, o *Options, workers int) (*Ensemble, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if n < 0 {
		return nil, newError(ErrInvalidInput, true, "GenerateEnsemble", "negative ensemble size %d", n)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	log := o.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	E := &Ensemble{
		ID:     uuid.NewString(),
		Seeds:  make([]int64, n),
		Chains: make([]*Chain, n),
	}
	log = log.With(zap.String("ensemble", E.ID))
	start := time.Now()
	log.Info("generating ensemble",
		zap.Int("chains", n),
		zap.Int("particles", count),
		zap.Int("workers", workers),
		zap.Int64("seed", o.Seed()))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := 0; k < n; k++ {
		k := k
		E.Seeds[k] = DeriveSeed(o.Seed(), k)
		g.Go(func() error {
			lo := o.Copy()
			lo.Seed(E.Seeds[k])
			lo.source = nil
			lo.Logger(log.With(zap.Int("chain", k)))
			c, err := NewBuilder(lo).Generate(gctx, count, offset, sizes)
			if err != nil {
				return fmt.Errorf("chain %d of ensemble %s: %w", k, E.ID, errDecorate(err, "GenerateEnsemble"))
			}
			E.Chains[k] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("ensemble failed", zap.Error(err))
		return nil, err
	}
	log.Info("ensemble complete", zap.Duration("elapsed", time.Since(start)))
	return E, nil
}
