package pixely

import "image"

// Pixels is a strided view over interleaved 8-bit channel data.
//
// Axes are ordered the way the loader hands them out: x before y. Iterating the
// first spatial axis therefore walks columns, not rows, and DecodeFrame has to
// transpose before anything is emitted. A still image has the shape
// [width, height, channels]; an animation has [frames, width, height, channels].
type Pixels struct {
	Data   []uint8
	Shape  []int
	Stride []int
	Offset int
}

// NewPixels wraps data with the given shape. The last axis varies fastest.
func NewPixels(data []uint8, shape ...int) *Pixels {
	stride := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		stride[i] = step
		step *= shape[i]
	}
	return &Pixels{
		Data:   data,
		Shape:  append([]int(nil), shape...),
		Stride: stride,
	}
}

// Dims returns the number of axes.
func (p *Pixels) Dims() int {
	return len(p.Shape)
}

// Index maps coordinates to a position in Data.
func (p *Pixels) Index(idx ...int) int {
	i := p.Offset
	for axis, v := range idx {
		i += v * p.Stride[axis]
	}
	return i
}

func (p *Pixels) At(idx ...int) uint8 {
	return p.Data[p.Index(idx...)]
}

// Pick fixes the outermost axis at i and returns the remaining view. For an
// animation this yields the buffer of frame i.
func (p *Pixels) Pick(i int) *Pixels {
	return &Pixels{
		Data:   p.Data,
		Shape:  p.Shape[1:],
		Stride: p.Stride[1:],
		Offset: p.Offset + i*p.Stride[0],
	}
}

// pixelsOf views an NRGBA image as [x, y, channel] without copying.
func pixelsOf(img *image.NRGBA) *Pixels {
	b := img.Bounds()
	return &Pixels{
		Data:   img.Pix,
		Shape:  []int{b.Dx(), b.Dy(), 4},
		Stride: []int{4, img.Stride, 1},
	}
}

// stackPixels joins equally sized frames into one [frame, x, y, channel] buffer.
func stackPixels(frames []*image.NRGBA) *Pixels {
	if len(frames) == 0 {
		return NewPixels(nil, 0, 0, 0, 4)
	}
	b := frames[0].Bounds()
	stride := frames[0].Stride
	size := stride * b.Dy()
	data := make([]uint8, 0, size*len(frames))
	for _, f := range frames {
		data = append(data, f.Pix[:size]...)
	}
	return &Pixels{
		Data:   data,
		Shape:  []int{len(frames), b.Dx(), b.Dy(), 4},
		Stride: []int{size, 4, stride, 1},
	}
}
