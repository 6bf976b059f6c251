/*
 * chain.go, part of chaingen.
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
	"math"

	"github.com/rmera/chaingen/clash"
	v3 "github.com/rmera/chaingen/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Chain is a complete, generated chain: one point per particle, in placement
//order, together with the radii the particles were placed with.
//A Chain is never modified after it is returned.
type Chain struct {
	points []r3.Vec
	radii  []float64
}

func newChain(points []r3.Vec, radii []float64) *Chain {
	c := &Chain{points: make([]r3.Vec, len(points)), radii: make([]float64, len(radii))}
	copy(c.points, points)
	copy(c.radii, radii)
	return c
}

//NewChain returns a chain with copies of the given positions and radii, which
//must have the same length, and be finite. It allows chains produced elsewhere
//to be checked with CollisionChecker.Validate.
func NewChain(points []r3.Vec, radii []float64) (*Chain, error) {
	if len(points) != len(radii) {
		return nil, newError(ErrInvalidInput, true, "NewChain", "%d positions for %d radii", len(points), len(radii))
	}
	if _, err := NewSizeList(radii); err != nil {
		return nil, errDecorate(err, "NewChain")
	}
	for i, p := range points {
		if !finite(p) {
			return nil, newError(ErrInvalidInput, true, "NewChain", "position %d is not finite: %v", i, p)
		}
	}
	return newChain(points, radii), nil
}

//Len returns the number of particles in the chain.
func (C *Chain) Len() int {
	return len(C.points)
}

//At returns the position of the ith particle.
func (C *Chain) At(i int) r3.Vec {
	return C.points[i]
}

//Points returns a copy of the positions.
func (C *Chain) Points() []r3.Vec {
	ret := make([]r3.Vec, len(C.points))
	copy(ret, C.points)
	return ret
}

//Radii returns a copy of the steric radii of the particles.
func (C *Chain) Radii() []float64 {
	ret := make([]float64, len(C.radii))
	copy(ret, C.radii)
	return ret
}

//Coords returns a new Nx3 matrix with the positions, or nil
//for an empty chain.
func (C *Chain) Coords() *v3.Matrix {
	if len(C.points) == 0 {
		return nil
	}
	m, _ := v3.FromVecs(C.points) //can't fail with a non-empty slice
	return m
}

//ClosestNonBonded returns the shortest distance between two particles that
//are not bonded to each other, and their indexes. For chains with fewer than 3
//particles, the distance is +Inf and the indexes -1.
func (C *Chain) ClosestNonBonded() (float64, [2]int) {
	dist, pair := math.Inf(1), [2]int{-1, -1}
	n := C.Len()
	if n < 3 {
		return dist, pair
	}
	coords := C.Coords()
	for i := 0; i < n-2; i++ {
		d, idx := clash.LowestDist(coords.VecView(i), coords.View(i+2, n-i-2))
		if d < dist {
			dist = d
			pair = [2]int{i, i + 2 + idx[1]}
		}
	}
	return dist, pair
}

//Validate checks the whole chain, pairwise, against the bond rule and excluded volume
//constraints of checker. It returns nil for a valid chain, or an ErrInvalidInput
//error describing the first problem found.
func (C *CollisionChecker) Validate(c *Chain) error {
	if c.Len() < 2 {
		return nil
	}
	bonds, err := bondLengths(C.rule, c.radii)
	if err != nil {
		return errDecorate(err, "Validate")
	}
	coords := c.Coords()
	dev, i := clash.BondDeviation(coords, bonds)
	if i >= 0 && dev > C.bondTol*math.Max(1, bonds[i]) {
		return newError(ErrInvalidInput, true, "Validate", "bond %d-%d deviates %g from its length %g", i, i+1, dev, bonds[i])
	}
	over, pair := clash.HighestOverlap(coords, c.radii, 1)
	if over > C.overlap+1e-12 {
		return newError(ErrInvalidInput, true, "Validate", "particles %d and %d overlap by %g of their squared contact distance", pair[0], pair[1], over)
	}
	return nil
}
