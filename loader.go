package pixely

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"runtime"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Loader decodes encoded images into frames.
type Loader struct {
	// Workers bounds how many frames are decoded at once. Zero means GOMAXPROCS.
	Workers int
}

var defaultLoader = &Loader{}

// Load decodes r with the default loader.
func Load(ctx context.Context, r io.Reader) (Frames, error) {
	return defaultLoader.Load(ctx, r)
}

// Load reads every byte of r and decodes them into a frame sequence. Animated
// GIFs yield one frame per image block, anything else yields one frame.
// Decoding stops early, returning ctx.Err(), if ctx is cancelled.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Frames, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(data) == 0 {
		return nil, &DecodeError{Err: ErrEmptySource}
	}

	type decoded struct {
		px  *Pixels
		err error
	}
	done := make(chan decoded, 1)
	go func() {
		px, err := decodePixels(ctx, data)
		done <- decoded{px: px, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case d := <-done:
		if d.err != nil {
			return nil, d.err
		}
		return l.FramesFromPixels(ctx, d.px)
	}
}

// FramesFromPixels turns a decoded buffer into frames. Four axes are an
// animation and are unpacked frame by frame in source order; three axes are a
// still image.
func (l *Loader) FramesFromPixels(ctx context.Context, p *Pixels) (Frames, error) {
	switch p.Dims() {
	case 4:
		n := p.Shape[0]
		if n == 0 {
			return nil, ErrEmptyFrame
		}
		frames := make(Frames, n)
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(l.workers())
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				f, err := DecodeFrame(p.Pick(i), i)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				frames[i] = f
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return frames, nil
	case 3:
		f, err := DecodeFrame(p, 0)
		if err != nil {
			return nil, err
		}
		return Frames{f}, nil
	default:
		return nil, fmt.Errorf("%w: %d axes", ErrUnsupportedShape, p.Dims())
	}
}

func (l *Loader) workers() int {
	if l.Workers > 0 {
		return l.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func decodePixels(ctx context.Context, data []byte) (*Pixels, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Format: format, Err: err}
		}
		frames, err := compositeGIF(ctx, g)
		if err != nil {
			return nil, err
		}
		return stackPixels(frames), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	// Clone always hands back non-premultiplied channels anchored at (0, 0).
	return pixelsOf(imaging.Clone(img)), nil
}

// compositeGIF replays the frames of g onto a canvas and snapshots the canvas
// after each one. Disposal methods are respected.
func compositeGIF(ctx context.Context, g *gif.GIF) ([]*image.NRGBA, error) {
	if len(g.Image) == 0 {
		return nil, &DecodeError{Format: "gif", Err: ErrEmptyFrame}
	}
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewNRGBA(bounds)
	snapshots := make([]*image.NRGBA, 0, len(g.Image))
	for i, frame := range g.Image {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous []uint8
		if disposal == gif.DisposalPrevious {
			previous = append([]uint8(nil), canvas.Pix...)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshots = append(snapshots, imaging.Clone(canvas))

		switch disposal {
		// Dispose background clears the area the frame covered.
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		// Dispose previous draws, then undoes.
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}
	return snapshots, nil
}
