package pixely

import (
	"io"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ShadowList renders the box-shadow entries reproducing the visible pixels of
// f, row by row, left to right:
//
//	0px 0px rgba(255,0,0,1),1px 0px rgba(255,0,0,1)
//
// Fully transparent pixels are skipped, so a transparent frame gives "".
func ShadowList(f *Frame, scale float64) string {
	return string(appendShadowList(nil, f, scale))
}

func appendShadowList(b []byte, f *Frame, scale float64) []byte {
	first := true
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := f.At(x, y)
			if !c.Visible() {
				continue
			}
			if !first {
				b = append(b, ',')
			}
			first = false
			b = appendPx(b, float64(x)*scale)
			b = append(b, ' ')
			b = appendPx(b, float64(y)*scale)
			b = append(b, ' ')
			b = c.appendCSS(b)
		}
	}
	return b
}

// appendNumber never uses an exponent and drops trailing zeros. Values are
// rounded to 15 significant digits first, so 3*0.1 prints as 0.3.
func appendNumber(b []byte, v float64) []byte {
	if r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64); err == nil {
		v = r
	}
	return strconv.AppendFloat(b, v, 'f', -1, 64)
}

func appendPx(b []byte, v float64) []byte {
	return append(appendNumber(b, v), "px"...)
}

// StyleSheet renders the complete style sheet for frames.
func StyleSheet(frames Frames, cfg Config) (string, error) {
	var sb strings.Builder
	if err := NewStyleEncoder(&sb, cfg).Encode(frames); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// StyleEncoder writes style sheets to an io.Writer.
type StyleEncoder struct {
	w       io.Writer
	cfg     Config
	workers int
}

type StyleOpt func(enc *StyleEncoder)

// WithStyleWorkers bounds how many shadow lists are rendered at once.
func WithStyleWorkers(n int) StyleOpt {
	return func(enc *StyleEncoder) {
		enc.workers = n
	}
}

func NewStyleEncoder(w io.Writer, cfg Config, opts ...StyleOpt) *StyleEncoder {
	enc := StyleEncoder{
		w:       w,
		cfg:     cfg,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&enc)
	}
	return &enc
}

/*
Encode writes, in order:

  - a rule sizing the scoping element to the first frame,
  - an ::after rule one scale unit square, shifted one unit left, carrying the
    first frame's shadow list and, for animations, the animation declaration,
  - for animations only, a step-wise keyframes block, once prefixed with
    -webkit- and once unprefixed, with one step per frame at i*(100/n)% and a
    closing 100% step repeating the first frame.

The output is a single line of CSS, eg. for a 1x1 red still at scale 1:

	.pixely-1{width:1px;height:1px;position:relative;}.pixely-1::after{content:"";width:1px;height:1px;display:block;left:-1px;position:absolute;-webkit-backface-visibility:hidden !important;box-shadow:0px 0px rgba(255,0,0,1);}
*/
func (enc *StyleEncoder) Encode(frames Frames) error {
	if len(frames) == 0 {
		return ErrEmptyStyleSheet
	}
	lists, err := enc.shadowLists(frames)
	if err != nil {
		return err
	}

	cls := enc.cfg.ClassName
	scale := enc.cfg.Scale
	first := frames[0]

	var b []byte
	// Size the element to the image.
	b = append(b, '.')
	b = append(b, cls...)
	b = append(b, "{width:"...)
	b = appendPx(b, float64(first.Width())*scale)
	b = append(b, ";height:"...)
	b = appendPx(b, float64(first.Height())*scale)
	b = append(b, ";position:relative;}"...)

	// The pseudo element carries the pixels.
	b = append(b, '.')
	b = append(b, cls...)
	b = append(b, "::after{content:\"\";width:"...)
	b = appendPx(b, scale)
	b = append(b, ";height:"...)
	b = appendPx(b, scale)
	b = append(b, ";display:block;left:-"...)
	b = appendPx(b, scale)
	b = append(b, ";position:absolute;-webkit-backface-visibility:hidden !important;"...)
	if frames.Animated() {
		for _, prop := range []string{"-webkit-animation:", "animation:"} {
			b = append(b, prop...)
			b = append(b, cls...)
			b = append(b, "-frames "...)
			b = appendNumber(b, enc.cfg.AnimationDuration)
			b = append(b, "s step-end infinite;"...)
		}
	}
	b = appendShadowDecl(b, lists[0])
	b = append(b, '}')

	if frames.Animated() {
		for _, at := range []string{"@-webkit-keyframes ", "@keyframes "} {
			b = append(b, at...)
			b = appendKeyframes(b, cls, lists)
		}
	}

	_, err = enc.w.Write(b)
	return err
}

// appendKeyframes writes the body of a keyframes rule: one step per list at
// i*(100/n)% and a closing 100% step on the first list.
func appendKeyframes(b []byte, cls string, lists [][]byte) []byte {
	step := 100 / float64(len(lists))
	b = append(b, cls...)
	b = append(b, "-frames{"...)
	for i, list := range lists {
		b = appendNumber(b, float64(i)*step)
		b = append(b, "%{"...)
		b = appendShadowDecl(b, list)
		b = append(b, '}')
	}
	b = append(b, "100%{"...)
	b = appendShadowDecl(b, lists[0])
	return append(b, "}}"...)
}

// appendShadowDecl writes "box-shadow:<list>;". An empty list becomes none so
// the declaration stays valid.
func appendShadowDecl(b []byte, list []byte) []byte {
	b = append(b, "box-shadow:"...)
	if len(list) == 0 {
		b = append(b, "none"...)
	} else {
		b = append(b, list...)
	}
	return append(b, ';')
}

// shadowLists renders the list of every frame needed. Still images only need
// the first one.
func (enc *StyleEncoder) shadowLists(frames Frames) ([][]byte, error) {
	if !frames.Animated() {
		return [][]byte{appendShadowList(nil, frames[0], enc.cfg.Scale)}, nil
	}
	lists := make([][]byte, len(frames))
	var g errgroup.Group
	if enc.workers > 0 {
		g.SetLimit(enc.workers)
	}
	for i, f := range frames {
		g.Go(func() error {
			lists[i] = appendShadowList(nil, f, enc.cfg.Scale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}
