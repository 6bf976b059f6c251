/*
 * sizes.go, part of chaingen.
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
	"fmt"
	"math"
	"strings"
)

//SizeList is an immutable, ordered list of steric radii. Element i is the
//radius of particle i. All radii are finite and non-negative.
type SizeList struct {
	radii []float64
}

//NewSizeList copies radii into a new SizeList. It returns an ErrInvalidInput
//error if any radius is negative, NaN or infinite.
func NewSizeList(radii []float64) (*SizeList, error) {
	r := make([]float64, len(radii))
	for i, v := range radii {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, newError(ErrInvalidInput, true, "NewSizeList", "radius %d is %g, radii must be finite and non-negative", i, v)
		}
		r[i] = v
	}
	return &SizeList{radii: r}, nil
}

//Len returns the number of radii in the list.
func (S *SizeList) Len() int {
	if S == nil {
		return 0
	}
	return len(S.radii)
}

//At returns the ith radius.
func (S *SizeList) At(i int) float64 {
	return S.radii[i]
}

//Slice returns a copy of the radii.
func (S *SizeList) Slice() []float64 {
	ret := make([]float64, S.Len())
	copy(ret, S.radii)
	return ret
}

//window returns the radii for particles offset..offset+count-1, without copying.
//Callers must not modify the result.
func (S *SizeList) window(offset, count int) []float64 {
	return S.radii[offset : offset+count]
}

func (S *SizeList) String() string {
	s := make([]string, 0, S.Len())
	for _, v := range S.radii {
		s = append(s, fmt.Sprintf("%g", v))
	}
	return "[" + strings.Join(s, ", ") + "]"
}

//BondRule maps the steric radii of two bonded particles to the
//distance between them.
type BondRule func(a, b float64) float64

//SumOfRadii is the default bond rule: bonded particles touch.
func SumOfRadii(a, b float64) float64 {
	return a + b
}

//SumPlusOffset returns a rule that adds a fixed offset to the sum of the radii.
func SumPlusOffset(offset float64) BondRule {
	return func(a, b float64) float64 {
		return a + b + offset
	}
}

//FixedLength returns a rule that ignores the radii and always gives length.
func FixedLength(length float64) BondRule {
	return func(_, _ float64) float64 {
		return length
	}
}

//bondLengths applies rule to every adjacent pair in radii.
func bondLengths(rule BondRule, radii []float64) ([]float64, error) {
	if len(radii) < 2 {
		return nil, nil
	}
	bonds := make([]float64, len(radii)-1)
	for i := range bonds {
		b := rule(radii[i], radii[i+1])
		if math.IsNaN(b) || math.IsInf(b, 0) || b <= 0 {
			return nil, newError(ErrInvalidInput, true, "bondLengths", "bond rule gives %g for particles %d-%d (radii %g, %g)", b, i, i+1, radii[i], radii[i+1])
		}
		bonds[i] = b
	}
	return bonds, nil
}
