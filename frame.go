package pixely

import (
	"fmt"
	"strconv"
)

// PixelColor is a straight (non-premultiplied) color. A is in [0, 1].
type PixelColor struct {
	R, G, B uint8
	A       float64
}

// NewPixelColor builds a color from 8-bit channels, normalizing alpha.
func NewPixelColor(r, g, b, a uint8) PixelColor {
	return PixelColor{R: r, G: g, B: b, A: float64(a) / 255}
}

// Visible reports whether the pixel contributes anything to the output.
func (c PixelColor) Visible() bool {
	return c.A > 0
}

// String returns the CSS notation, eg. rgba(255,0,0,1).
func (c PixelColor) String() string {
	return string(c.appendCSS(nil))
}

func (c PixelColor) appendCSS(b []byte) []byte {
	b = append(b, "rgba("...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	b = append(b, ',')
	b = strconv.AppendFloat(b, c.A, 'f', -1, 64)
	return append(b, ')')
}

// Frame is one decoded still image: a rectangular grid of colors addressed
// row first. Frames are never modified after they are built.
type Frame struct {
	ID    string
	Index int
	rows  [][]PixelColor
}

// NewFrame validates rows and wraps them in a Frame. The rows are used as is
// and must not be modified by the caller afterwards.
func NewFrame(id string, rows [][]PixelColor) (*Frame, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyFrame
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedFrame, y, len(row), width)
		}
	}
	return &Frame{ID: id, rows: rows}, nil
}

// Width is the number of pixels in a row.
func (f *Frame) Width() int {
	return len(f.rows[0])
}

// Height is the number of rows.
func (f *Frame) Height() int {
	return len(f.rows)
}

// At returns the color in column x of row y.
func (f *Frame) At(x, y int) PixelColor {
	return f.rows[y][x]
}

// Frames is an ordered frame sequence. More than one frame means the image is
// animated and the frames loop in order.
type Frames []*Frame

func (fs Frames) Animated() bool {
	return len(fs) > 1
}

// DecodeFrame converts a [x, y, channel] buffer into a Frame. The buffer is
// column indexed, so it is unpacked as columns and transposed into rows.
func DecodeFrame(raw *Pixels, index int) (*Frame, error) {
	if raw.Dims() != 3 {
		return nil, fmt.Errorf("%w: frame has %d axes", ErrUnsupportedShape, raw.Dims())
	}
	if raw.Shape[0] == 0 || raw.Shape[1] == 0 || raw.Shape[2] == 0 {
		return nil, ErrEmptyFrame
	}
	frame, err := NewFrame(frameID(index), transpose(unpackColumns(raw)))
	if err != nil {
		return nil, err
	}
	frame.Index = index
	return frame, nil
}

func frameID(index int) string {
	return "frame" + strconv.Itoa(index)
}

// unpackColumns reads the buffer in its native axis order: cols[x][y].
func unpackColumns(raw *Pixels) [][]PixelColor {
	width, height, channels := raw.Shape[0], raw.Shape[1], raw.Shape[2]
	cols := make([][]PixelColor, width)
	for x := 0; x < width; x++ {
		col := make([]PixelColor, height)
		for y := 0; y < height; y++ {
			col[y] = colorAt(raw, x, y, channels)
		}
		cols[x] = col
	}
	return cols
}

// colorAt reads one pixel. Gray, gray+alpha and RGB buffers are opaque
// unless they carry an alpha channel.
func colorAt(raw *Pixels, x, y, channels int) PixelColor {
	ch := func(c int) uint8 { return raw.At(x, y, c) }
	switch channels {
	case 1:
		v := ch(0)
		return NewPixelColor(v, v, v, 255)
	case 2:
		v := ch(0)
		return NewPixelColor(v, v, v, ch(1))
	case 3:
		return NewPixelColor(ch(0), ch(1), ch(2), 255)
	default:
		return NewPixelColor(ch(0), ch(1), ch(2), ch(3))
	}
}

// transpose swaps the two outer axes of a rectangular grid: grid[i][j]
// becomes out[j][i].
func transpose(grid [][]PixelColor) [][]PixelColor {
	if len(grid) == 0 {
		return nil
	}
	out := make([][]PixelColor, len(grid[0]))
	for j := range out {
		row := make([]PixelColor, len(grid))
		for i := range grid {
			row[i] = grid[i][j]
		}
		out[j] = row
	}
	return out
}
