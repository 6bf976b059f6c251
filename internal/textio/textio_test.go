package textio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rmera/chaingen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseSizes(t *testing.T) {
	s, err := ParseSizes("[1, 2.5,3]")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3}, s)

	s, err = ParseSizes(" 1.9025\n4.2\t1e1 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.9025, 4.2, 10}, s)

	s, err = ParseSizes("[]")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = ParseSizes("[1, two, 3]")
	assert.Error(t, err)

	again, err := ParseSizes(FormatSizes([]float64{1.9025, 0.5, 12}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.9025, 0.5, 12}, again)
}

func TestChainText(t *testing.T) {
	c, err := chaingen.Generate(context.Background(), 5, 0, []float64{1, 2, 1, 1, 3}, nil)
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, WriteChain(&b, c))
	assert.Equal(t, 5, strings.Count(b.String(), "\n"))
	assert.True(t, strings.HasPrefix(b.String(), "0 0 0\n"))

	pts, err := ReadChain(&b)
	require.NoError(t, err)
	require.Len(t, pts, 5)
	for i := range pts {
		assert.InDelta(t, 0, r3.Norm(r3.Sub(pts[i], c.At(i))), 1e-9)
	}

	_, err = ReadChain(strings.NewReader("1 2 3\n\n4 5\n"))
	assert.ErrorContains(t, err, "line 3")
	_, err = ReadChain(strings.NewReader("1 2 x\n"))
	assert.Error(t, err)
}
