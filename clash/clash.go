//Package clash looks for steric clashes in whole sets of coordinates,
//after they have been built.
package clash

import (
	"math"

	v3 "github.com/rmera/chaingen/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Overlap returns the fractional overlap of two spheres of radii ri and rj whose
//centers are at a distance d: 1-d²/(ri+rj)². It is positive only when the spheres
//interpenetrate. Two spheres with zero contact distance never overlap.
func Overlap(d, ri, rj float64) float64 {
	c := ri + rj
	if c <= 0 {
		return math.Inf(-1)
	}
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return 1 - (d*d)/(c*c)
}

//HighestOverlap returns the largest fractional overlap (see Overlap) between
//any two vectors i, j in coords with |i-j| > skip, and the pair giving it.
//With skip=1, bonded neighbours in a chain are not considered. If no pair
//qualifies, over is -Inf and indexes are -1.
func HighestOverlap(coords *v3.Matrix, radii []float64, skip int) (over float64, indexes [2]int) {
	over = math.Inf(-1)
	indexes = [2]int{-1, -1}
	n := coords.NVecs()
	if len(radii) < n {
		panic(v3.ErrShape)
	}
	vecs := coords.Vecs()
	for i := 0; i < n; i++ {
		for j := i + skip + 1; j < n; j++ {
			d := r3.Norm(r3.Sub(vecs[i], vecs[j]))
			ov := Overlap(d, radii[i], radii[j])
			if ov > over {
				over = ov
				indexes[0] = i
				indexes[1] = j
			}
		}
	}
	return
}

//BondDeviation returns the largest absolute difference between the distance
//of consecutive vectors i, i+1 in coords and bonds[i], and the index i
//where it happens. bonds must have one element less than coords has vectors.
func BondDeviation(coords *v3.Matrix, bonds []float64) (dev float64, index int) {
	n := coords.NVecs()
	if len(bonds) != n-1 {
		panic(v3.ErrShape)
	}
	index = -1
	prev := coords.Vec(0)
	for i := 1; i < n; i++ {
		cur := coords.Vec(i)
		dt := math.Abs(r3.Norm(r3.Sub(cur, prev)) - bonds[i-1])
		if dt > dev || math.IsNaN(dt) {
			dev = dt
			index = i - 1
		}
		prev = cur
	}
	return
}

//LowestDist returns the lowest distance between a vector in test and one in clash,
//and the indexes of both vectors.
func LowestDist(test, clash *v3.Matrix) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	for i := 0; i < test.NVecs(); i++ {
		a1 := test.Vec(i)
		for j := 0; j < clash.NVecs(); j++ {
			dt := r3.Norm(r3.Sub(a1, clash.Vec(j)))
			if dt < dist {
				dist = dt
				indexes[0] = i
				indexes[1] = j
			}
		}
	}
	return
}
