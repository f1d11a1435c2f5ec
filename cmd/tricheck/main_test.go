package main

import (
	"bytes"
	"strings"
	"testing"

	"map-annotator/internal/mesh"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	in := "# square\n0 0\n10,0\n\n10\t10\n 0 10 \n"
	vs, err := parsePoints(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []geometry.Vertex{
		geometry.Flat(0, 0), geometry.Flat(10, 0), geometry.Flat(10, 10), geometry.Flat(0, 10),
	}, vs)
}

func TestParsePointsErrors(t *testing.T) {
	_, err := parsePoints(strings.NewReader("1 2 3\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = parsePoints(strings.NewReader("0 0\nx 1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestReportSquare(t *testing.T) {
	vs := []geometry.Vertex{geometry.Flat(0, 0), geometry.Flat(10, 0), geometry.Flat(10, 10), geometry.Flat(0, 10)}
	res, err := mesh.NewBuilder(mesh.DefaultOptions()).Build(vs, colorutil.Green)
	require.NoError(t, err)

	var buf bytes.Buffer
	report(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "Triangles: 2")
	assert.Contains(t, out, "Outline segments: 4")
	assert.Contains(t, out, "(0.00, 10.00) -> (0.00, 0.00)")
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, mesh.Result{})
	assert.Contains(t, buf.String(), "Nothing built")
}
