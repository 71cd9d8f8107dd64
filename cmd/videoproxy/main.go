// Command videoproxy reads a camera, draws interactive overlays onto its frames and
// publishes the result as a virtual camera. Keys typed into the input window select the
// passes: 0-9 toggle a pass, - enables all of them, ` disables all of them and p toggles
// picture in picture.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/pion/logging"
	"github.com/pion/videoproxy"
	"github.com/pion/videoproxy/internal/config"
	internallog "github.com/pion/videoproxy/internal/logging"
	"github.com/pion/videoproxy/pkg/console"
	"github.com/pion/videoproxy/pkg/driver"
	"github.com/pion/videoproxy/pkg/driver/camera"
	"github.com/pion/videoproxy/pkg/driver/screen"
	"github.com/pion/videoproxy/pkg/driver/videotest"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/frame"
	"github.com/pion/videoproxy/pkg/input"
	"github.com/pion/videoproxy/pkg/input/window"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
	"github.com/pion/videoproxy/pkg/sink"
	"github.com/pion/videoproxy/pkg/sink/loopback"
	"github.com/pion/videoproxy/pkg/sink/preview"
	"github.com/spf13/pflag"
)

const (
	gracePeriod    = time.Second
	consoleBacklog = 16
)

func init() {
	// The input window must live on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := internallog.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := internallog.NewLogger("videoproxy")
	log.Info("Video Proxy start")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		log.Errorf("Failed to open the %s source: %v", cfg.Source, err)
		return 1
	}

	out, err := openSinks(cfg)
	if err != nil {
		log.Errorf("Failed to open the output: %v", err)
		_ = closeSrc()
		return 1
	}

	lines := console.New(os.Stdin, consoleBacklog, internallog.NewLogger("videoproxy/console"))
	passes, closers := buildPasses(cfg, lines)
	videoproxy.LogPasses(log, passes)

	queue := event.NewQueue()
	proxy, err := videoproxy.New(src, out, passes, queue,
		videoproxy.WithSize(cfg.Width, cfg.Height),
		videoproxy.WithFrameRate(cfg.FPS),
		videoproxy.WithInitialMask(videoproxy.Mask(cfg.Mask)),
		videoproxy.WithLogger(log),
		videoproxy.WithTransformers(video.DetectChanges(time.Second, 1, func(p prop.Media) {
			log.Infof("Source: %dx%d at %.1f fps", p.Width, p.Height, p.FrameRate)
		})),
	)
	if err != nil {
		log.Errorf("Failed to create the pipeline: %v", err)
		return 1
	}

	go func() {
		if err := proxy.Run(ctx); err != nil {
			log.Errorf("Pipeline stopped: %v", err)
			cancel()
		}
	}()

	// Closing the input window only ends the input, the video keeps going until the
	// process is told to stop.
	inputLog := internallog.NewLogger("videoproxy/input")
	win, err := window.New(cfg.Width, cfg.Height, input.NewEmitter(queue))
	if err != nil {
		log.Warnf("Running without an input window: %v", err)
	} else if err := input.Run(ctx, win, input.DefaultPollInterval, inputLog); err != nil {
		inputLog.Warnf("Failed to close the input window: %v", err)
	}
	<-ctx.Done()

	// The pipeline isn't joined, it gets a moment to finish its tick.
	time.Sleep(gracePeriod)
	closeAll(log, append([]io.Closer{out, lines}, closers...)...)
	if err := closeSrc(); err != nil {
		log.Debugf("Failed to close the source: %v", err)
	}
	log.Info("Exiting")
	return 0
}

func openSource(cfg config.Config) (video.Reader, func() error, error) {
	m := driver.GetManager()
	constraints := prop.Constraints{
		Width:     prop.Int(cfg.Width),
		Height:    prop.Int(cfg.Height),
		FrameRate: prop.Float(cfg.FPS),
	}

	var filter driver.FilterFn
	switch cfg.Source {
	case config.SourceCamera:
		var err error
		if strings.HasPrefix(cfg.InputDevice, "/") {
			err = camera.Register(m, cfg.InputDevice)
		} else {
			err = camera.Discover(m, "/dev/v4l/by-path/*", "/dev/video*")
		}
		if err != nil {
			return nil, nil, err
		}
		filter = driver.FilterDeviceType(driver.Camera)
		if cfg.InputDevice != "" {
			filter = driver.FilterAnd(filter, hasLabel(cfg.InputDevice))
		}
		constraints.FrameFormat = prop.FrameFormatOneOf{
			frame.FormatMJPEG,
			frame.FormatYUY2,
			frame.FormatUYVY,
			frame.FormatNV12,
			frame.FormatNV21,
			frame.FormatI420,
		}
	case config.SourceScreen:
		if err := screen.Register(m); err != nil {
			return nil, nil, err
		}
		filter = driver.FilterDeviceType(driver.Screen)
	case config.SourceTest:
		if err := videotest.Register(m, cfg.Width, cfg.Height, cfg.FPS); err != nil {
			return nil, nil, err
		}
		filter = driver.FilterDeviceType(driver.Test)
	}

	d, p, err := m.SelectBest(filter, constraints)
	if err != nil {
		return nil, nil, err
	}
	r, err := d.VideoRecord(p)
	if err != nil {
		_ = d.Close()
		return nil, nil, err
	}
	return r, d.Close, nil
}

// hasLabel matches drivers with label as one of their labels.
func hasLabel(label string) driver.FilterFn {
	return func(d driver.Driver) bool {
		for _, l := range strings.Split(d.Info().Label, camera.LabelSeparator) {
			if l == label {
				return true
			}
		}
		return false
	}
}

func openSinks(cfg config.Config) (sink.Sink, error) {
	sinkLog := internallog.NewLogger("videoproxy/sink")
	lb, err := loopback.New(cfg.OutputDevice, cfg.Width, cfg.Height, cfg.FPS, loopback.WithLogger(sinkLog))
	if err != nil {
		return nil, err
	}
	if cfg.Preview == "" {
		return lb, nil
	}

	pv, err := preview.New(cfg.Preview, preview.WithLogger(sinkLog))
	if err != nil {
		_ = lb.Close()
		return nil, err
	}
	return sink.Tee{lb, pv}, nil
}

func closeAll(log logging.LeveledLogger, closers ...io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Warnf("Failed to close: %v", err)
		}
	}
}
