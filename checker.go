/*
 * checker.go, part of chaingen.
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

	"gonum.org/v1/gonum/spatial/r3"
)

//CollisionChecker decides whether a candidate position for a particle is
//compatible with the particles already placed.
type CollisionChecker struct {
	rule    BondRule
	bondTol float64
	overlap float64
}

//NewCollisionChecker returns a checker using the given bond rule.
//bondTol is the relative tolerance for the bond length (absolute for bonds
//shorter than 1), overlap is the fraction of the squared contact distance
//that non-adjacent particles are allowed to overlap (0 means no overlap at all).
func NewCollisionChecker(rule BondRule, bondTol, overlap float64) *CollisionChecker {
	if rule == nil {
		rule = SumOfRadii
	}
	return &CollisionChecker{rule: rule, bondTol: bondTol, overlap: overlap}
}

//IsValid returns true if candidate can be particle self of the chain, given the
//already placed particles placed[0:self] and the radii in sizes (indexed like placed).
//It checks the bond to placed[self-1] and the excluded volume against every
//earlier, non-adjacent, particle, and returns false at the first violation.
//Neither placed nor sizes are modified.
func (C *CollisionChecker) IsValid(candidate r3.Vec, placed []r3.Vec, self int, sizes []float64) bool {
	if self == 0 {
		return true
	}
	if !finite(candidate) {
		return false
	}
	bond := C.rule(sizes[self-1], sizes[self])
	d := Distance(candidate, placed[self-1])
	if math.Abs(d-bond) > C.bondTol*math.Max(1, bond) {
		return false
	}
	rs := sizes[self]
	f := 1 - C.overlap
	//the most recently placed particles are the likeliest to collide.
	for j := self - 2; j >= 0; j-- {
		contact := rs + sizes[j]
		if distance2(candidate, placed[j]) < f*contact*contact {
			return false
		}
	}
	return true
}
