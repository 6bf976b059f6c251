/*
 * sampler.go, part of chaingen.
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
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

//StepSampler proposes positions for the next particle of a chain.
//Its only state is the random stream, which it does not own exclusively:
//the Builder that creates it shares it.
type StepSampler struct {
	rng *rand.Rand
}

//NewStepSampler returns a sampler drawing its directions from rng.
func NewStepSampler(rng *rand.Rand) *StepSampler {
	return &StepSampler{rng: rng}
}

//ProposeNext returns a point at bondLength from previous, in a random direction.
func (S *StepSampler) ProposeNext(previous r3.Vec, bondLength float64) (r3.Vec, error) {
	dir, err := RandomUnitDirection(S.rng)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "ProposeNext")
	}
	return Translate(previous, dir, bondLength), nil
}
