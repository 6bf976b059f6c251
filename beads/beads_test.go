package beads

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisordered(t *testing.T) {
	B := Parse("MDEK")
	assert.Equal(t, 4, B.Len())
	assert.Equal(t, 4, B.Count(Disordered))
	for i := 0; i < B.Len(); i++ {
		assert.Equal(t, DisorderedSteric, B.Steric[i])
		assert.Equal(t, DisorderedHydrodynamic, B.Hydrodynamic[i])
	}
	assert.InDelta(t, 131.21+115.09+129.12+128.18, B.TotalMass, 1e-9)
}

func TestOrdered(t *testing.T) {
	B := Parse("MD[GFH]SE")
	assert.Equal(t, []Type{Disordered, Disordered, Ordered, Disordered, Disordered}, B.Types)
	m := 57.06 + 147.18 + 137.15
	r := 0.7525 * math.Cbrt(m)
	assert.InDelta(t, r, B.Steric[2], 1e-12)
	assert.InDelta(t, r, B.Hydrodynamic[2], 1e-12)
	assert.InDelta(t, 131.21+115.09+m+87.08+129.12, B.TotalMass, 1e-9)

	//two folded domains joined by a linker.
	B = Parse("[AAA]GG[WWW]")
	assert.Equal(t, []Type{Ordered, Disordered, Disordered, Ordered}, B.Types)
	assert.Equal(t, "ordered", B.Types[0].String())
}

func TestIgnoredCharacters(t *testing.T) {
	a := Parse("md ek\n12*MDEK")
	assert.Equal(t, 4, a.Len(), "lower case, digits, spaces and stars are dropped")
	b := Parse("AX B")
	assert.Equal(t, 3, b.Len())
	assert.InDelta(t, 71.08, b.TotalMass, 1e-12, "ambiguous codes have no mass")
	//a lone bracket still makes the chunk ordered.
	c := Parse("GG]AA")
	assert.Equal(t, []Type{Ordered, Disordered, Disordered}, c.Types)
	assert.Equal(t, 0, Parse("").Len())
	assert.Equal(t, 0, Parse("[]").Len())
}
