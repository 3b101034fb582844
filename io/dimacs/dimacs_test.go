package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
)

func TestReadParsesTriangleWithComments(t *testing.T) {
	in := "c a comment\np edge 3 3\ne 1 2\ne 2 3\ne 1 3\n"
	g, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 2))
	assert.True(t, g.HasEdge(0, 2))
}

func TestReadIgnoresSelfLoop(t *testing.T) {
	in := "p edge 2 2\ne 1 1\ne 1 2\n"
	g, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.False(t, g.HasEdge(0, 0))
	assert.True(t, g.HasEdge(0, 1))
}

func TestReadRejectsOutOfRangeVertex(t *testing.T) {
	in := "p edge 2 1\ne 1 3\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, errs.KindParse, errs.KindOf(err))
}

func TestReadRejectsMissingHeader(t *testing.T) {
	_, err := Read(strings.NewReader("e 1 2\n"))
	require.Error(t, err)
	assert.Equal(t, errs.KindParse, errs.KindOf(err))
}

func TestReadRejectsEdgeCountMismatch(t *testing.T) {
	in := "p edge 3 2\ne 1 2\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
}

func TestReadRejectsDuplicateHeader(t *testing.T) {
	in := "p edge 2 0\np edge 2 0\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
}

func TestWriteRoundTrips(t *testing.T) {
	in := "p edge 4 3\ne 1 2\ne 2 3\ne 3 4\n"
	g, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g))

	g2, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, g.N(), g2.N())
	for u := 0; u < g.N(); u++ {
		for v := u + 1; v < g.N(); v++ {
			assert.Equal(t, g.HasEdge(graph.NI(u), graph.NI(v)), g2.HasEdge(graph.NI(u), graph.NI(v)))
		}
	}
}
