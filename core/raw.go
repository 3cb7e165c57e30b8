package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/erosion/erosion"
)

// ReadRaw reads a raw face file: one triangle (9 values) or quad (12 values)
// per line, as x y z triples. Shared vertices appear once per face.
func ReadRaw(r io.Reader) ([]mgl32.Vec3, error) {
	var verts []mgl32.Vec3
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 9 && len(fields) != 12 {
			return nil, fmt.Errorf("raw line %d: %d values, expected 9 or 12", line, len(fields))
		}
		for k := 0; k < len(fields); k += 3 {
			var v mgl32.Vec3
			for a := 0; a < 3; a++ {
				f, err := strconv.ParseFloat(fields[k+a], 32)
				if err != nil {
					return nil, fmt.Errorf("raw line %d: %w", line, err)
				}
				v[a] = float32(f)
			}
			verts = append(verts, v)
		}
	}
	return verts, scanner.Err()
}

// LoadRaw reads a raw face file straight into a grid.
func LoadRaw(r io.Reader) (*erosion.Grid, error) {
	verts, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}
	return FromVertices(verts)
}

// WriteRaw writes every triangle of m on its own line.
func WriteRaw(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 256)
	for _, face := range m.Faces() {
		buf = buf[:0]
		for k, idx := range face {
			for a, x := range m.Vertices[idx] {
				if k > 0 || a > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendFloat(buf, float64(x), 'g', -1, 32)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
