// Command tricheck builds annotation geometry from a list of points and
// prints the resulting triangles and outline, optionally rendering a PNG.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"map-annotator/internal/mesh"
	"map-annotator/internal/render"
	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"

	"cogentcore.org/core/colors"
	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	pointsPath := flag.String("points", "", "File with one \"x y\" pair per line (default stdin)")
	pngPath := flag.String("png", "", "Write a rendering of the result to this PNG file")
	size := flag.Int("size", 512, "PNG size in pixels")
	colorName := flag.String("color", "#00ffff", "Fill color (hex or name)")
	flag.Parse()

	var in io.Reader = os.Stdin
	if *pointsPath != "" {
		f, err := os.Open(*pointsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open points: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	vertices, err := parsePoints(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read points: %v\n", err)
		os.Exit(1)
	}
	c, err := colors.FromString(*colorName, colorutil.Black)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad color: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Read %d points\n", len(vertices))
	fmt.Printf("Fill color: %s\n", colors.AsHex(c))
	fmt.Printf("Signed area: %.3f\n", geometry.SignedArea(vertices))

	result, err := mesh.NewBuilder(mesh.DefaultOptions()).Build(vertices, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build: %v\n", err)
	}
	report(os.Stdout, result)

	if *pngPath != "" && !result.Empty() {
		if err := writePNG(*pngPath, *size, vertices, result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *pngPath)
	}
}

// parsePoints reads whitespace- or comma-separated "x y" pairs. Blank lines
// and lines starting with # are skipped.
func parsePoints(r io.Reader) ([]geometry.Vertex, error) {
	var out []geometry.Vertex
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 numbers, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, geometry.Flat(x, y))
	}
	return out, sc.Err()
}

func report(w io.Writer, r mesh.Result) {
	if r.Empty() {
		fmt.Fprintln(w, "\nNothing built")
		return
	}
	pos := r.Buffer.Positions()
	if r.Line != nil {
		fmt.Fprintf(w, "\nLine: (%.2f, %.2f) -> (%.2f, %.2f)\n", pos[0].X, pos[0].Y, pos[1].X, pos[1].Y)
	}
	if r.Fill != nil {
		tris := r.Fill.Triangles()
		fmt.Fprintf(w, "\nTriangles: %d\n", len(tris))
		fmt.Fprintf(w, "%-5s %8s %8s %8s\n", "#", "A", "B", "C")
		for i, t := range tris {
			fmt.Fprintf(w, "%-5d %8d %8d %8d\n", i, t[0], t[1], t[2])
		}
	}
	if r.Outline != nil {
		segs := r.Outline.Segments()
		fmt.Fprintf(w, "\nOutline segments: %d\n", len(segs))
		for _, s := range segs {
			a, b := pos[s[0]], pos[s[1]]
			fmt.Fprintf(w, "  (%.2f, %.2f) -> (%.2f, %.2f)\n", a.X, a.Y, b.X, b.Y)
		}
	}
}

// writePNG renders the result from a camera framing the points.
func writePNG(path string, size int, vertices []geometry.Vertex, r mesh.Result) error {
	sc := scene.New()
	for _, obj := range r.Renderables() {
		if err := sc.Add(obj); err != nil {
			return err
		}
	}

	bb := geometry.BoundingBox(vertices)
	extent := math.Max(math.Max(bb.Width, bb.Height), 1) * 1.2
	const fov = 60.0
	center := bb.Center()
	cam := scene.NewCamera(fov, 1, 0.1, 1e6, extent/(2*math.Tan(geometry.Radians(fov)/2)))
	cam.Position.X, cam.Position.Y = center.X, center.Y
	cam.LookAt(r3.Vec{X: center.X, Y: center.Y})

	img, err := render.NewRasterizer().Render(size, size, cam, sc, nil)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
