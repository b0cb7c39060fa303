/*
Package pixely converts raster images into pure HTML and CSS.

Every pixel of the image becomes one entry in the box-shadow list of a single
pseudo element. Animated GIFs cycle through one shadow list per frame using a
step-wise keyframe animation:

	cfg, err := pixely.NewConfig("geralt.gif", pixely.WithScale(4))
	if err != nil {
		return err
	}
	out, err := pixely.Render(ctx, cfg)
	if err != nil {
		return err
	}
	// out.Markup links pixely.css, out.Styles is its content.
*/
package pixely

import (
	"context"
	"io"
	"log/slog"

	"github.com/kevin-cantwell/pixely/internal/source"
)

// Output holds the two generated documents.
type Output struct {
	Markup string
	Styles string
}

// Opener resolves a source identifier to its bytes.
type Opener interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// Renderer runs the whole conversion: open, load, style, markup.
type Renderer struct {
	opener Opener
	loader *Loader
	logger *slog.Logger
}

type RendererOpt func(r *Renderer)

// WithOpener replaces the default opener, which reads files, http(s) URLs
// and "-" for stdin.
func WithOpener(o Opener) RendererOpt {
	return func(r *Renderer) {
		r.opener = o
	}
}

func WithLoader(l *Loader) RendererOpt {
	return func(r *Renderer) {
		r.loader = l
	}
}

// WithLogger enables debug logging. Nothing is logged by default.
func WithLogger(l *slog.Logger) RendererOpt {
	return func(r *Renderer) {
		r.logger = l
	}
}

func NewRenderer(opts ...RendererOpt) *Renderer {
	r := Renderer{
		opener: &source.Opener{},
		loader: defaultLoader,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

var defaultRenderer = NewRenderer()

// Render converts cfg.Source with the default renderer.
func Render(ctx context.Context, cfg Config) (*Output, error) {
	return defaultRenderer.Render(ctx, cfg)
}

// Render opens cfg.Source and converts it. Errors from any step are returned
// as they are and no output is produced.
func (r *Renderer) Render(ctx context.Context, cfg Config) (*Output, error) {
	if cfg.Source == "" {
		return nil, ErrMissingSource
	}
	rc, err := r.opener.Open(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return r.RenderReader(ctx, cfg, rc)
}

// RenderReader converts the encoded image read from src. cfg.Source is only
// used for logging.
func (r *Renderer) RenderReader(ctx context.Context, cfg Config, src io.Reader) (*Output, error) {
	frames, err := r.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "decoded image",
		"source", cfg.Source,
		"frames", len(frames),
		"width", frames[0].Width(),
		"height", frames[0].Height())

	styles, err := StyleSheet(frames, cfg)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Markup: Markup(cfg),
		Styles: styles,
	}
	r.logger.DebugContext(ctx, "generated output",
		"class", cfg.ClassName,
		"animated", frames.Animated(),
		"styles_bytes", len(out.Styles),
		"markup_bytes", len(out.Markup))
	return out, nil
}

// Result is delivered by RenderAsync.
type Result struct {
	Output *Output
	Err    error
}

// RenderAsync runs Render in the background. The channel yields exactly one
// Result and is then closed.
func (r *Renderer) RenderAsync(ctx context.Context, cfg Config) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		defer close(results)
		out, err := r.Render(ctx, cfg)
		results <- Result{Output: out, Err: err}
	}()
	return results
}
