//Package textio reads and writes the plain-text forms used by the chaingen
//command: size lists and "x y z" coordinate lines.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/chaingen"
	"gonum.org/v1/gonum/spatial/r3"
)

func sizeSeparator(r rune) bool {
	switch r {
	case '[', ']', ',', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

//ParseSizes reads a list of radii such as "[1.9, 1.9, 4.5]" or "1.9 1.9 4.5".
//Brackets, commas and white space all separate values.
func ParseSizes(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, sizeSeparator)
	ret := make([]float64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("size %d (%q): %w", i, f, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

//FormatSizes writes sizes in the form ParseSizes reads.
func FormatSizes(sizes []float64) string {
	s := make([]string, len(sizes))
	for i, v := range sizes {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

//WriteChain writes one "x y z" line per particle of c.
func WriteChain(w io.Writer, c *chaingen.Chain) error {
	out := bufio.NewWriter(w)
	for i := 0; i < c.Len(); i++ {
		p := c.At(i)
		if _, err := fmt.Fprintf(out, "%g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return out.Flush()
}

//ReadChain reads "x y z" lines, as written by WriteChain. Blank lines
//are skipped, any other line needs exactly 3 numbers.
func ReadChain(r io.Reader) ([]r3.Vec, error) {
	var ret []r3.Vec
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: %d fields, 3 expected", n, len(fields))
		}
		var c [3]float64
		for j, f := range fields {
			var err error
			c[j], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
		}
		ret = append(ret, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	}
	return ret, sc.Err()
}
