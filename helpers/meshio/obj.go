// Package meshio turns mesh files and triangle streams into polygon soup
// ready for hemesh.Build.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/hemesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOBJ reads Wavefront OBJ polygon data. Vertex positions (v) and faces
// (f) are kept. Face corners may be written as i, i/t, i//n or i/t/n and
// negative indices count back from the last vertex read. Each o or g
// statement that follows at least one face starts a new shell. All other
// statements are ignored.
func ReadOBJ(r io.Reader) (hemesh.Soup, error) {
	var (
		soup       hemesh.Soup
		shellStart int
		lineno     int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		args := fields[1:]
		switch fields[0] {
		case "v":
			p, err := parseVertex(args)
			if err != nil {
				return hemesh.Soup{}, fmt.Errorf("obj line %d: %w", lineno, err)
			}
			soup.Positions = append(soup.Positions, p)
		case "f":
			face, err := parseFace(args, len(soup.Positions))
			if err != nil {
				return hemesh.Soup{}, fmt.Errorf("obj line %d: %w", lineno, err)
			}
			soup.Faces = append(soup.Faces, face)
		case "o", "g":
			if len(soup.Faces) > shellStart && shellStart > 0 {
				soup.Shells = append(soup.Shells, shellStart)
			}
			if len(soup.Faces) > 0 {
				shellStart = len(soup.Faces)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return hemesh.Soup{}, err
	}
	if shellStart > 0 && shellStart < len(soup.Faces) {
		soup.Shells = append(soup.Shells, shellStart)
	}
	return soup, nil
}

func parseVertex(args []string) (p r3.Vec, err error) {
	// A fourth w component and trailing vertex colors are allowed and ignored.
	if len(args) < 3 {
		return p, errors.New("vertex needs 3 coordinates")
	}
	var c [3]float64
	for i := range c {
		c[i], err = strconv.ParseFloat(args[i], 64)
		if err != nil {
			return p, err
		}
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func parseFace(args []string, nverts int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("face has %d vertices, need at least 3", len(args))
	}
	face := make([]int, len(args))
	for i, arg := range args {
		vi, _, _ := strings.Cut(arg, "/")
		n, err := strconv.Atoi(vi)
		if err != nil {
			return nil, fmt.Errorf("face vertex %q: %w", arg, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += nverts
		default:
			return nil, errors.New("face index 0 found, OBJ indices start at 1")
		}
		if n < 0 || n >= nverts {
			return nil, fmt.Errorf("face vertex %q references undefined vertex", arg)
		}
		face[i] = n
	}
	return face, nil
}
