package lad

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
)

func TestReadParsesTriangle(t *testing.T) {
	in := "3\n2 1 2\n2 0 2\n2 0 1\n"
	g, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 2))
	assert.True(t, g.HasEdge(0, 2))
}

func TestReadRejectsDegreeMismatch(t *testing.T) {
	in := "2\n2 1\n1 0\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, errs.KindParse, errs.KindOf(err))
}

func TestReadRejectsOutOfRangeNeighbour(t *testing.T) {
	in := "2\n1 5\n0\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
}

func TestReadRejectsMissingAdjacencyLine(t *testing.T) {
	in := "2\n1 1\n"
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
}

func TestWriteRoundTrips(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g))

	g2, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.N(), g2.N())
	assert.True(t, g2.HasEdge(0, 1))
	assert.True(t, g2.HasEdge(1, 2))
}
