package chaingen

import (
	"math"

	v3 "github.com/rmera/chaingen/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//RadiusOfGyration returns the (unweighted) radius of gyration of the
//points in coords, i.e. the root mean square distance to their centroid.
func RadiusOfGyration(coords *v3.Matrix) float64 {
	n := coords.NVecs()
	c, _ := v3.FromVecs([]r3.Vec{coords.Centroid()})
	centered := v3.Zeros(n)
	centered.SubVec(coords, c)
	//Frobenius norm: the square root of the sum of squared distances.
	return mat.Norm(centered, 2) / math.Sqrt(float64(n))
}

//EndToEnd returns the distance between the first and the last point in coords.
func EndToEnd(coords *v3.Matrix) float64 {
	return Distance(coords.Vec(0), coords.Vec(coords.NVecs()-1))
}
