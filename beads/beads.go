//Package beads translates protein sequences into coarse-grained bead
//descriptions for the chain generator.
//
//Each residue of a disordered region is one bead. A folded region, written
//between brackets, is a single bead whose size depends on the mass of
//the region. For instance, in
//
//	MDEK[GFHLLVQ]SEE
//
//the first 4 and the last 3 residues are disordered beads, and GFHLLVQ is one
//ordered bead. Characters other than upper-case letters and brackets are ignored.
package beads

import (
	"math"
	"regexp"
	"strings"
)

//Type is the kind of region a bead represents.
type Type int

const (
	Disordered Type = 1 //one residue of a disordered region
	Ordered    Type = 2 //a whole folded region
)

func (t Type) String() string {
	switch t {
	case Disordered:
		return "disordered"
	case Ordered:
		return "ordered"
	}
	return "unknown"
}

//Sizes, in Å, of the disordered beads, and the factor
//giving the radius of an ordered bead from the cubic root of its mass in Da.
const (
	DisorderedSteric       = 1.9025
	DisorderedHydrodynamic = 4.2
	OrderedFactor          = 0.7525
)

//ResidueMass is the mass, in Da, of each residue (as part of a chain)
//by its one-letter code. Ambiguous and non-standard codes weigh nothing.
var ResidueMass = map[rune]float64{
	'A': 71.08,
	'C': 103.14,
	'D': 115.09,
	'E': 129.12,
	'F': 147.18,
	'G': 57.06,
	'H': 137.15,
	'I': 113.17,
	'K': 128.18,
	'L': 113.17,
	'M': 131.21,
	'N': 114.11,
	'P': 97.12,
	'Q': 128.41,
	'R': 156.2,
	'S': 87.08,
	'T': 101.11,
	'V': 99.14,
	'W': 186.21,
	'Y': 163.18,

	'Z': 0,
	'O': 0,
	'U': 0,
	'J': 0,
	'X': 0,
	'B': 0,
}

var (
	illegal = regexp.MustCompile(`[^A-Z\[\]]`)
	chunk   = regexp.MustCompile(`\[?[A-Z]+\]?`)
)

//Beads describes a chain of beads. All the slices have one element per bead.
type Beads struct {
	Steric       []float64 //radius for excluded volume, in Å
	Hydrodynamic []float64 //radius for the mobility, in Å
	Types        []Type
	TotalMass    float64 //in Da
}

//Len returns the number of beads.
func (B *Beads) Len() int {
	return len(B.Types)
}

//Count returns the number of beads of type t.
func (B *Beads) Count(t Type) int {
	n := 0
	for _, v := range B.Types {
		if v == t {
			n++
		}
	}
	return n
}

func (B *Beads) add(steric, hydro float64, t Type) {
	B.Steric = append(B.Steric, steric)
	B.Hydrodynamic = append(B.Hydrodynamic, hydro)
	B.Types = append(B.Types, t)
}

//Parse returns the beads for the sequence in text. A chunk with at least
//one bracket is an ordered region, even if one bracket is missing.
func Parse(text string) *Beads {
	B := new(Beads)
	legal := illegal.ReplaceAllString(text, "")
	for _, c := range chunk.FindAllString(legal, -1) {
		if strings.ContainsAny(c, "[]") {
			m := 0.0
			for _, r := range c {
				m += ResidueMass[r]
			}
			B.TotalMass += m
			s := OrderedFactor * math.Cbrt(m)
			B.add(s, s, Ordered)
			continue
		}
		for _, r := range c {
			B.TotalMass += ResidueMass[r]
			B.add(DisorderedSteric, DisorderedHydrodynamic, Disordered)
		}
	}
	return B
}
