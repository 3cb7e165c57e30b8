package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ob6160/erosion/erosion"
)

// ReadHeightfield parses a whitespace separated matrix of heights, one grid
// row per line. Blank lines are skipped; every row must have the same width.
func ReadHeightfield(r io.Reader) (erosion.Field, error) {
	var (
		data []float64
		rows int
		cols = -1
		line int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if cols >= 0 && len(fields) != cols {
			return erosion.Field{}, fmt.Errorf("%w: line %d has %d values, expected %d", erosion.ErrShape, line, len(fields), cols)
		}
		cols = len(fields)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return erosion.Field{}, fmt.Errorf("line %d: %w", line, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return erosion.Field{}, err
	}
	if rows == 0 {
		return erosion.Field{}, fmt.Errorf("%w: empty heightfield", erosion.ErrShape)
	}
	return erosion.Field{Rows: rows, Cols: cols, Data: data}, nil
}

func WriteHeightfield(w io.Writer, f erosion.Field) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for r := 0; r < f.Rows; r++ {
		for c, v := range f.Row(r) {
			if c > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
