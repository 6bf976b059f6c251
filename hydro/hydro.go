/*
 * hydro.go, part of chaingen.
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

//Package hydro estimates the hydrodynamic radius and translational diffusion
//coefficient of a flexible chain from an ensemble of its conformations.
//
//The beads interact through the generalized Rotne-Prager-Yamakawa mobility
//(Zuk, Wajnryb, Mizerski and Szymczak, J. Fluid Mech. 741, R5, 2014), which
//is well defined also for overlapping beads of different radii. Mobilities
//are given for unit viscosity.
package hydro

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/rmera/chaingen/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

//Boltzmann is the Boltzmann constant, in J/K.
const Boltzmann = 1.380649e-23

var (
	//ErrInput is returned for ensembles or radii that can't be used.
	ErrInput = errors.New("chaingen/hydro: invalid input")
	//ErrSingular is returned when the averaged mobility can't be inverted.
	ErrSingular = errors.New("chaingen/hydro: singular mobility matrix")
)

//PairMobility returns the 3x3 translational mobility tensor coupling a bead of
//radius ai at ri with one of radius aj at rj. With ri==rj and ai==aj it is the
//self mobility of the bead.
func PairMobility(ri, rj r3.Vec, ai, aj float64) *mat.Dense {
	d := r3.Sub(rj, ri)
	r := r3.Norm(d)
	ret := mat.NewDense(3, 3, nil)
	if r == 0 || r <= math.Abs(ai-aj) {
		//self term, or one bead inside the other.
		c := 1 / (6 * math.Pi * math.Max(ai, aj))
		for k := 0; k < 3; k++ {
			ret.Set(k, k, c)
		}
		return ret
	}
	ci, crr := pairCoefficients(r, ai, aj)
	u := r3.Scale(1/r, d)
	uu := [3]float64{u.X, u.Y, u.Z}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			v := crr * uu[k] * uu[l]
			if k == l {
				v += ci
			}
			ret.Set(k, l, v)
		}
	}
	return ret
}

//pairCoefficients returns the coefficients of the identity and of the
//outer product of the unit separation vector in the mobility of two
//beads at a distance r > |ai-aj|.
func pairCoefficients(r, ai, aj float64) (ci, crr float64) {
	if r > ai+aj {
		s := (ai*ai + aj*aj) / (r * r)
		p := 1 / (8 * math.Pi * r)
		return p * (1 + s/3), p * (1 - s)
	}
	cube := r * r * r
	dif := (ai - aj) * (ai - aj)
	p := 1 / (6 * math.Pi * ai * aj)
	ci = p * (16*cube*(ai+aj) - math.Pow(dif+3*r*r, 2)) / (32 * cube)
	crr = p * 3 * math.Pow(dif-r*r, 2) / (32 * cube)
	return ci, crr
}

//PairTrace returns the trace of PairMobility for two beads at a distance r.
//For non-overlapping beads it is 1/(2πr), independently of the radii.
func PairTrace(r, ai, aj float64) float64 {
	if r == 0 || r <= math.Abs(ai-aj) {
		return 1 / (2 * math.Pi * math.Max(ai, aj))
	}
	ci, crr := pairCoefficients(r, ai, aj)
	return 3*ci + crr
}

//TraceMatrix returns the NxN matrix of the traces of the pair mobilities
//of the N beads in coords, with radii radii. If dst is not nil, the matrix is
//accumulated into dst, which must be NxN, and dst is returned.
func TraceMatrix(coords *v3.Matrix, radii []float64, dst *mat.SymDense) (*mat.SymDense, error) {
	n := coords.NVecs()
	if err := checkRadii(radii, n); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = mat.NewSymDense(n, nil)
	} else if dst.SymmetricDim() != n {
		return nil, fmt.Errorf("%w: %d beads for a %d matrix", ErrInput, n, dst.SymmetricDim())
	}
	vecs := coords.Vecs()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := r3.Norm(r3.Sub(vecs[i], vecs[j]))
			if i == j {
				r = 0
			}
			dst.SetSym(i, j, dst.At(i, j)+PairTrace(r, radii[i], radii[j]))
		}
	}
	return dst, nil
}

//MeanTraceMatrix returns the trace matrix averaged over all the chains in ensemble.
func MeanTraceMatrix(ensemble []*v3.Matrix, radii []float64) (*mat.SymDense, error) {
	if len(ensemble) == 0 {
		return nil, fmt.Errorf("%w: empty ensemble", ErrInput)
	}
	var sum *mat.SymDense
	var err error
	for i, c := range ensemble {
		if c == nil {
			return nil, fmt.Errorf("%w: chain %d is empty", ErrInput, i)
		}
		sum, err = TraceMatrix(c, radii, sum)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
	}
	sum.ScaleSym(1/float64(len(ensemble)), sum)
	return sum, nil
}

//Rh returns the hydrodynamic radius of the ensemble, in the units of the
//coordinates and radii: the sum of all the elements of the inverse of the
//mean trace matrix, divided by 2π. For a single bead it is the bead radius.
func Rh(ensemble []*v3.Matrix, radii []float64) (float64, error) {
	M, err := MeanTraceMatrix(ensemble, radii)
	if err != nil {
		return math.NaN(), err
	}
	//The sum of the elements of M^-1 is 1ᵀx, where Mx=1.
	n := M.SymmetricDim()
	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}
	var ch mat.Cholesky
	if ok := ch.Factorize(M); !ok {
		return math.NaN(), ErrSingular
	}
	x := mat.NewVecDense(n, nil)
	if err := ch.SolveVecTo(x, ones); err != nil {
		return math.NaN(), fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return mat.Sum(x) / (2 * math.Pi), nil
}

//Batches returns the number of batches used by RhSamplingError for an
//ensemble of n chains.
func Batches(n int) int {
	return max(min(n/2, 20), 1)
}

//RhSamplingError estimates the sampling error of Rh for the ensemble, as
//the (population) standard deviation of Rh computed over Batches(len(ensemble))
//interleaved sub-ensembles (chain k goes to batch k%batches).
//With fewer than 3 batches the estimate is meaningless, and NaN is returned.
func RhSamplingError(ensemble []*v3.Matrix, radii []float64) (float64, error) {
	b := Batches(len(ensemble))
	rhs := make([]float64, b)
	for i := 0; i < b; i++ {
		sub := make([]*v3.Matrix, 0, len(ensemble)/b+1)
		for k := i; k < len(ensemble); k += b {
			sub = append(sub, ensemble[k])
		}
		var err error
		rhs[i], err = Rh(sub, radii)
		if err != nil {
			return math.NaN(), fmt.Errorf("batch %d: %w", i, err)
		}
	}
	if b < 3 {
		return math.NaN(), nil
	}
	_, std := stat.PopMeanStdDev(rhs, nil)
	return std, nil
}

//DiffusionCoefficient returns the translational diffusion coefficient, in m²/s,
//of a particle of hydrodynamic radius rh (Å) at the temperature T (K) in a
//solvent of viscosity eta (cP), from the Stokes-Einstein relation.
//Values are 10 times those of the first, Python, version of this tool, which took
//1 cP as 0.01 Pa·s and kB as 1.38e-23 J/K (1 cP is 1e-3 Pa·s).
func DiffusionCoefficient(rh, T, eta float64) float64 {
	const (
		angstrom   = 1e-10 //m
		centipoise = 1e-3  //Pa·s
	)
	return Boltzmann * T / (6 * math.Pi * eta * centipoise * rh * angstrom)
}

func checkRadii(radii []float64, n int) error {
	if len(radii) != n {
		return fmt.Errorf("%w: %d radii for %d beads", ErrInput, len(radii), n)
	}
	for i, v := range radii {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: hydrodynamic radius %d is %g", ErrInput, i, v)
		}
	}
	return nil
}
