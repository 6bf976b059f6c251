/*
 * geometry.go, part of chaingen.
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
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

//Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

//distance2 is the squared distance, which is all the excluded volume
//test needs.
func distance2(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}

//RandomUnitDirection returns a vector uniformly distributed on the unit sphere,
//drawn from rng. Three independent standard normal components are normalized,
//which is isotropic (no bias towards the poles). If the norm of the draw is
//zero or not finite, an ErrNumericDegenerate error is returned.
func RandomUnitDirection(rng *rand.Rand) (r3.Vec, error) {
	v := r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, newError(ErrNumericDegenerate, false, "RandomUnitDirection", "sampled vector %v has norm %g", v, n)
	}
	return r3.Scale(1/n, v), nil
}

//Translate returns origin displaced by length along direction.
//direction is expected to be a unit vector.
func Translate(origin, direction r3.Vec, length float64) r3.Vec {
	return r3.Add(origin, r3.Scale(length, direction))
}

func finite(v r3.Vec) bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
