package main

import (
	"image"
	"io"

	"github.com/pion/videoproxy/internal/config"
	internallog "github.com/pion/videoproxy/internal/logging"
	"github.com/pion/videoproxy/pkg/console"
	"github.com/pion/videoproxy/pkg/pass"
	"github.com/pion/videoproxy/pkg/pass/facedetect"
	"github.com/pion/videoproxy/pkg/pass/filewatch"
	"github.com/pion/videoproxy/pkg/pass/morse"
	"github.com/pion/videoproxy/pkg/pass/mousedraw"
	"github.com/pion/videoproxy/pkg/pass/pong"
	"github.com/pion/videoproxy/pkg/pass/rain"
	"github.com/pion/videoproxy/pkg/pass/reddot"
	"github.com/pion/videoproxy/pkg/pass/shellwatch"
	"github.com/pion/videoproxy/pkg/pass/statictext"
	"github.com/pion/videoproxy/pkg/pass/template"
	"github.com/pion/videoproxy/pkg/pass/timer"
	"github.com/pion/videoproxy/pkg/pass/typing"
)

// buildPasses creates the passes in their registry order. Passes that can't be created,
// usually because a model or file is missing, are logged and left out. The returned
// closers release what the passes hold.
func buildPasses(cfg config.Config, lines console.LineReader) (*pass.Registry, []io.Closer) {
	log := internallog.NewLogger("videoproxy/pass")
	registry, _ := pass.NewRegistry()
	var closers []io.Closer

	add := func(name string, p pass.RenderPass, err error) {
		if err != nil {
			log.Warnf("Skipping pass %s: %v", name, err)
			return
		}
		if _, err := registry.Register(p); err != nil {
			log.Warnf("Skipping pass %s: %v", name, err)
			if c, ok := p.(io.Closer); ok {
				_ = c.Close()
			}
			return
		}
		if c, ok := p.(io.Closer); ok {
			closers = append(closers, c)
		}
	}

	statictextPass, err := statictext.New(cfg.Passes.StaticText)
	add("statictext", statictextPass, err)
	add("rain", rain.New(nil), nil)
	typingPass, err := typing.New(lines)
	add("typing", typingPass, err)
	pongPass, err := pong.New()
	add("pong", pongPass, err)

	for _, s := range cfg.Passes.Shell {
		opts := []shellwatch.Option{shellwatch.WithFrequency(s.Frequency)}
		if s.X != 0 || s.Y != 0 {
			opts = append(opts, shellwatch.WithPosition(image.Pt(s.X, s.Y)))
		}
		p, err := shellwatch.New(s.Command, opts...)
		add("shellwatch", p, err)
	}
	for _, f := range cfg.Passes.Files {
		p, err := filewatch.New(f.Path, image.Pt(f.X, f.Y), internallog.NewLogger("videoproxy/pass/filewatch"))
		add("filewatch", p, err)
	}

	add("mousedraw", mousedraw.New(), nil)
	add("reddot", reddot.New(nil), nil)
	facePass, err := facedetect.New(cfg.Passes.FaceCascade)
	add("facedetect", facePass, err)
	templatePass, err := template.New(cfg.Passes.Template)
	add("template", templatePass, err)
	timerPass, err := timer.New(lines)
	add("timer", timerPass, err)
	add("morse", morse.New(lines), nil)

	return registry, closers
}
