/*
 * builder_test.go, part of chaingen.
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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func mustSizes(Te *testing.T, radii []float64) *SizeList {
	Te.Helper()
	S, err := NewSizeList(radii)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//checkChain verifies, pairwise, every constraint a generated chain must satisfy.
func checkChain(Te *testing.T, c *Chain, radii []float64, rule BondRule, overlap float64) {
	Te.Helper()
	if c.Len() != len(radii) {
		Te.Fatalf("chain has %d particles, %d expected", c.Len(), len(radii))
	}
	for i := 0; i+1 < c.Len(); i++ {
		want := rule(radii[i], radii[i+1])
		if d := Distance(c.At(i), c.At(i+1)); math.Abs(d-want) > eps*math.Max(1, want) {
			Te.Errorf("bond %d-%d is %g, should be %g", i, i+1, d, want)
		}
	}
	f := math.Sqrt(1 - overlap)
	for i := 0; i < c.Len(); i++ {
		for j := i + 2; j < c.Len(); j++ {
			min := (radii[i] + radii[j]) * f
			if d := Distance(c.At(i), c.At(j)); d < min-eps {
				Te.Errorf("particles %d and %d are %g apart, at least %g required", i, j, d, min)
			}
		}
	}
}

func TestThreeBeads(Te *testing.T) {
	c, err := Generate(context.Background(), 3, 0, []float64{1, 1, 1}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("Three beads:", c.Coords())
	if c.At(0) != (r3.Vec{}) {
		Te.Errorf("first bead should be at the origin, got %v", c.At(0))
	}
	for i, want := range []float64{2, 2} {
		if d := Distance(c.At(i), c.At(i+1)); math.Abs(d-want) > eps {
			Te.Errorf("distance %d-%d: got %g, want %g", i, i+1, d, want)
		}
	}
	if d := Distance(c.At(0), c.At(2)); d < 2-eps {
		Te.Errorf("distance 0-2 is %g, should be at least 2", d)
	}
	checkChain(Te, c, []float64{1, 1, 1}, SumOfRadii, DefaultOptions().Overlap())
}

func TestOriginalOverlap(Te *testing.T) {
	o := DefaultOptions()
	o.Overlap(OriginalOverlap)
	radii := make([]float64, 60)
	for i := range radii {
		radii[i] = 1
	}
	B := NewBuilder(o)
	c, err := B.Generate(context.Background(), len(radii), 0, mustSizes(Te, radii))
	if err != nil {
		Te.Fatal(err)
	}
	checkChain(Te, c, radii, SumOfRadii, OriginalOverlap)
	if err := B.Checker().Validate(c); err != nil {
		Te.Error(err)
	}
}

func TestExcludedVolume(Te *testing.T) {
	//Large beads make any accepted overlap much larger than the tolerance.
	radii := []float64{1000, 1000, 1000}
	for seed := int64(0); seed < 2000; seed++ {
		o := DefaultOptions()
		o.Seed(seed)
		c, err := Generate(context.Background(), 3, 0, radii, o)
		if err != nil {
			Te.Fatal(err)
		}
		if d := Distance(c.At(0), c.At(2)); d < 2000-eps*2000 {
			Te.Fatalf("seed %d: particles 0 and 2 are %g apart, at least 2000 required", seed, d)
		}
	}
}

func TestMixedRadii(Te *testing.T) {
	rng := rand.New(rand.NewSource(42))
	radii := make([]float64, 150)
	for i := range radii {
		radii[i] = 0.5 + 2.5*rng.Float64()
	}
	radii[40] = 12 //a folded domain in the middle
	radii[41] = 0  //and a point particle
	for _, seed := range []int64{1, 2, 3} {
		o := DefaultOptions()
		o.Seed(seed)
		B := NewBuilder(o)
		c, err := B.Generate(context.Background(), len(radii), 0, mustSizes(Te, radii))
		if err != nil {
			Te.Fatal(err)
		}
		checkChain(Te, c, radii, SumOfRadii, o.Overlap())
		if err := B.Checker().Validate(c); err != nil {
			Te.Error(err)
		}
		fmt.Printf("seed %d: %+v\n", seed, B.Stats())
	}
}

func TestBondRules(Te *testing.T) {
	radii := []float64{1, 2, 1.5, 1, 1, 3, 1}
	rules := map[string]BondRule{
		"offset": SumPlusOffset(0.5),
		"fixed":  FixedLength(7),
	}
	for name, rule := range rules {
		o := DefaultOptions()
		o.BondRule(rule)
		c, err := Generate(context.Background(), len(radii), 0, radii, o)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		checkChain(Te, c, radii, rule, o.Overlap())
	}
	o := DefaultOptions()
	o.BondRule(FixedLength(0))
	_, err := Generate(context.Background(), 3, 0, []float64{1, 1, 1}, o)
	if !errors.Is(err, ErrInvalidInput) {
		Te.Errorf("a zero bond length should be invalid input, got %v", err)
	}
}

func TestDeterminism(Te *testing.T) {
	radii := []float64{1, 2, 1, 1, 3, 1, 1, 2, 1, 1, 1, 1, 2, 2, 1, 1}
	S := mustSizes(Te, radii)
	gen := func(seed int64) *Chain {
		o := DefaultOptions()
		o.Seed(seed)
		c, err := NewBuilder(o).Generate(context.Background(), len(radii), 0, S)
		if err != nil {
			Te.Fatal(err)
		}
		return c
	}
	a, b := gen(7), gen(7)
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			Te.Fatalf("same seed gave different chains at particle %d: %v %v", i, a.At(i), b.At(i))
		}
	}
	d := gen(8)
	checkChain(Te, d, radii, SumOfRadii, DefaultOptions().Overlap())
	same := true
	for i := 1; i < a.Len(); i++ {
		if a.At(i) != d.At(i) {
			same = false
		}
	}
	if same {
		Te.Error("different seeds gave the same chain")
	}
}

func TestSequentialRequests(Te *testing.T) {
	//A Builder serving two requests in a row gives the same two chains as another
	//Builder with the same seed.
	S := mustSizes(Te, []float64{1, 1, 1, 1, 1, 1})
	B1, B2 := NewBuilder(nil), NewBuilder(nil)
	for k := 0; k < 2; k++ {
		a, err := B1.Generate(context.Background(), 6, 0, S)
		if err != nil {
			Te.Fatal(err)
		}
		b, err := B2.Generate(context.Background(), 6, 0, S)
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < a.Len(); i++ {
			if a.At(i) != b.At(i) {
				Te.Fatalf("request %d differs at particle %d", k, i)
			}
		}
	}
}

func TestBoundaries(Te *testing.T) {
	B := NewBuilder(nil)
	S := mustSizes(Te, []float64{1, 2, 3})
	c, err := B.Generate(context.Background(), 0, 0, S)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Len() != 0 || c.Coords() != nil {
		Te.Errorf("count 0 should give an empty chain, got %d particles", c.Len())
	}
	c, err = B.Generate(context.Background(), 1, 0, S)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Len() != 1 || c.At(0) != (r3.Vec{}) {
		Te.Errorf("count 1 should give the origin, got %v", c.Points())
	}
	if B.Stats().Proposals != 0 {
		Te.Errorf("no proposals expected for a single particle, got %d", B.Stats().Proposals)
	}
	o := DefaultOptions()
	o.Origin(r3.Vec{X: 1, Y: 2, Z: 3})
	c, err = NewBuilder(o).Generate(context.Background(), 1, 0, S)
	if err != nil {
		Te.Fatal(err)
	}
	if c.At(0) != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		Te.Errorf("first particle should be at the given origin, got %v", c.At(0))
	}
}

func TestOffset(Te *testing.T) {
	S := mustSizes(Te, []float64{5, 1, 1, 1, 4})
	c, err := NewBuilder(nil).Generate(context.Background(), 3, 1, S)
	if err != nil {
		Te.Fatal(err)
	}
	r := c.Radii()
	if len(r) != 3 || r[0] != 1 || r[1] != 1 || r[2] != 1 {
		Te.Errorf("offset 1 should use radii [1 1 1], got %v", r)
	}
	checkChain(Te, c, r, SumOfRadii, DefaultOptions().Overlap())
}

func TestInvalidInput(Te *testing.T) {
	for _, radii := range [][]float64{{1, -1, 1}, {1, math.NaN()}, {math.Inf(1), 1}} {
		_, err := NewSizeList(radii)
		if !errors.Is(err, ErrInvalidInput) {
			Te.Errorf("radii %v should be invalid, got %v", radii, err)
		}
	}
	S := mustSizes(Te, []float64{1, 1, 1})
	B := NewBuilder(nil)
	for _, req := range [][2]int{{4, 0}, {3, 1}, {-1, 0}, {2, -1}} {
		c, err := B.Generate(context.Background(), req[0], req[1], S)
		if !errors.Is(err, ErrInvalidInput) || c != nil {
			Te.Errorf("count %d offset %d should be invalid input, got %v", req[0], req[1], err)
		}
	}
	var E Error
	_, err := B.Generate(context.Background(), 4, 0, S)
	if !errors.As(err, &E) || !E.Critical() {
		Te.Errorf("expected a critical chaingen Error, got %v", err)
	}
	fmt.Println(err)
}

func TestUnsatisfiable(Te *testing.T) {
	o := DefaultOptions()
	o.BondRule(FixedLength(1))
	o.MaxBacktracks(50)
	o.LocalRetries(20)
	B := NewBuilder(o)
	c, err := B.Generate(context.Background(), 5, 0, mustSizes(Te, []float64{1000, 1000, 1000, 1000, 1000}))
	if !errors.Is(err, ErrUnsatisfiableGeometry) {
		Te.Fatalf("expected unsatisfiable geometry, got %v", err)
	}
	if c != nil {
		Te.Error("a failed request must not return a chain")
	}
	st := B.Stats()
	if st.Backtracks != 50 {
		Te.Errorf("expected the 50 backtracks to be used, got %d", st.Backtracks)
	}
	//Particle 1 always fits at the first try, particle 2 never does.
	if want := 51 * (1 + 20); st.Proposals != want {
		Te.Errorf("expected %d proposals, got %d", want, st.Proposals)
	}
	if st.Rejections != 51*20 {
		Te.Errorf("expected %d rejections, got %d", 51*20, st.Rejections)
	}
	fmt.Println(err)
}

func TestDegenerateStream(Te *testing.T) {
	o := DefaultOptions()
	o.Source(zeroSource{})
	o.LocalRetries(5)
	o.MaxBacktracks(3)
	B := NewBuilder(o)
	c, err := B.Generate(context.Background(), 4, 0, mustSizes(Te, []float64{1, 1, 1, 1}))
	if !errors.Is(err, ErrUnsatisfiableGeometry) {
		Te.Fatalf("a stream of degenerate draws should exhaust the budget, got %v", err)
	}
	if c != nil {
		Te.Error("a failed request must not return a chain")
	}
	st := B.Stats()
	if st.Proposals != 4*5 || st.Degenerate != st.Proposals || st.Rejections != 0 {
		Te.Errorf("every proposal should be a degenerate retry, got %+v", st)
	}
}

func TestCancel(Te *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, 10, 0, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, nil)
	if !errors.Is(err, context.Canceled) {
		Te.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestValidateRejects(Te *testing.T) {
	C := NewCollisionChecker(SumOfRadii, 1e-9, 0)
	bad := newChain([]r3.Vec{{}, {X: 2}, {X: 2, Y: 2}, {X: 0.5, Y: 1}}, []float64{1, 1, 1, 1})
	if err := C.Validate(bad); !errors.Is(err, ErrInvalidInput) {
		Te.Errorf("overlapping chain should not validate, got %v", err)
	}
	stretched := newChain([]r3.Vec{{}, {X: 2.5}}, []float64{1, 1})
	if err := C.Validate(stretched); err == nil {
		Te.Error("a wrong bond length should not validate")
	}
	good := newChain([]r3.Vec{{}, {X: 2}, {X: 4}}, []float64{1, 1, 1})
	if err := C.Validate(good); err != nil {
		Te.Error(err)
	}
}

func TestNewChain(Te *testing.T) {
	c, err := NewChain([]r3.Vec{{}, {X: 2}}, []float64{1, 1})
	if err != nil {
		Te.Fatal(err)
	}
	if err := NewCollisionChecker(nil, 1e-9, 0).Validate(c); err != nil {
		Te.Error(err)
	}
	if _, err := NewChain([]r3.Vec{{}}, []float64{1, 1}); !errors.Is(err, ErrInvalidInput) {
		Te.Errorf("mismatched lengths should be invalid, got %v", err)
	}
	if _, err := NewChain([]r3.Vec{{X: math.NaN()}}, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		Te.Errorf("non-finite positions should be invalid, got %v", err)
	}
	if _, err := NewChain([]r3.Vec{{}}, []float64{-1}); !errors.Is(err, ErrInvalidInput) {
		Te.Errorf("negative radii should be invalid, got %v", err)
	}
}

func TestClosestNonBonded(Te *testing.T) {
	//a U shape: 0 and 3 are the closest non-bonded pair, 1.5 apart.
	c, err := NewChain([]r3.Vec{{}, {X: 2}, {X: 2, Y: 1.5}, {Y: 1.5}, {X: -2, Y: 1.5}}, []float64{1, 1, 1, 1, 1})
	if err != nil {
		Te.Fatal(err)
	}
	d, pair := c.ClosestNonBonded()
	if pair != [2]int{0, 3} || math.Abs(d-1.5) > eps {
		Te.Errorf("closest non-bonded pair should be 0-3 at 1.5, got %v at %g", pair, d)
	}
	short, _ := NewChain([]r3.Vec{{}, {X: 2}}, []float64{1, 1})
	if d, pair := short.ClosestNonBonded(); !math.IsInf(d, 1) || pair != [2]int{-1, -1} {
		Te.Errorf("a 2-particle chain has no non-bonded pairs, got %v at %g", pair, d)
	}
}
