// Command easel plays a JSON scene script in a window, a terminal or
// headless.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phanxgames/easel"
	"github.com/phanxgames/easel/ebitenhost"
	"github.com/phanxgames/easel/stream"
	"github.com/phanxgames/easel/termhost"
)

//go:embed demo.json
var demoScript []byte

func main() {
	var (
		configPath = flag.String("config", "easel.yaml", "path to the YAML config")
		scriptPath = flag.String("script", "", "JSON scene script (default: built-in demo)")
		hostName   = flag.String("host", "ebiten", "host: ebiten | term | headless")
		frames     = flag.Int("frames", 0, "stop after this many frames (0 = no limit)")
		fps        = flag.Int("fps", 0, "frame rate override")
		exit       = flag.Bool("exit", false, "exit once the script has finished animating")
		debug      = flag.Bool("debug", false, "log per-tick stats")
		info       = flag.Bool("info", false, "show the cursor position and color (ebiten host)")
		record     = flag.String("record", "", "screenshot directory (ebiten host)")
		mqttURL    = flag.String("mqtt", "", "MQTT broker URL to stream frames to, e.g. tcp://localhost:1883")
		topic      = flag.String("topic", stream.DefaultTopic, "MQTT topic for streamed frames")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Config (flags override the file) ----
	cfg, err := easel.LoadConfig(*configPath)
	if err != nil {
		if easel.IsNotExist(err) {
			log.Debug().Str("path", *configPath).Msg("no config file; using defaults")
		} else {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		}
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if *info {
		cfg.ShowInfo = true
	}
	if *record != "" {
		cfg.RecordDir = *record
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level")
	}

	if err := run(cfg, *scriptPath, *hostName, *frames, *exit, *mqttURL, *topic); err != nil {
		log.Error().Err(err).Msg("easel failed")
		os.Exit(1)
	}
}

func run(cfg easel.Config, scriptPath, hostName string, frames int, exit bool, mqttURL, topic string) error {
	data := demoScript
	if scriptPath != "" {
		b, err := os.ReadFile(scriptPath)
		if err != nil {
			return err
		}
		data = b
	}
	script, err := easel.LoadScript(data)
	if err != nil {
		return err
	}

	opts := []easel.AppOption{easel.WithLogger(log.Logger)}
	if exit || hostName == "headless" {
		opts = append(opts, easel.WithExitWhenDone())
	}
	app, err := easel.NewApp(cfg, opts...)
	if err != nil {
		return err
	}

	host, err := selectHost(hostName, cfg, frames)
	if err != nil {
		return err
	}
	if h, ok := host.(*ebitenhost.Host); ok && h.Recorder() != nil {
		rec := h.Recorder()
		script.Handle("screenshot", func(*easel.Canvas) error {
			rec.Screenshot("screenshot")
			return nil
		})
		script.Handle("record-start", func(*easel.Canvas) error {
			rec.StartSequence("sequence")
			return nil
		})
		script.Handle("record-stop", func(c *easel.Canvas) error {
			n := rec.StopSequence()
			log.Info().Int("frames", n).Int("frame", c.Frame()).Msg("sequence recorded")
			return nil
		})
	}

	if mqttURL != "" {
		client, err := stream.Dial(stream.BrokerConfig{URL: mqttURL}, 5*time.Second, log.Logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		pub := stream.NewPublisher(client, app.Canvas(), stream.Options{Topic: topic})
		pub.SetLogger(log.Logger)
		app.Canvas().AddRenderer(pub)
		log.Info().Str("broker", mqttURL).Str("topic", topic).Msg("streaming frames")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("host", hostName).
		Int("fps", cfg.FPS).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("steps", script.Steps()).
		Msg("starting")

	return app.Run(ctx, host, func(app *easel.App) error {
		_, err := script.Apply(app.Canvas())
		return err
	})
}

func selectHost(name string, cfg easel.Config, frames int) (easel.Host, error) {
	switch name {
	case "ebiten":
		return ebitenhost.New(cfg, ebitenhost.WithLogger(log.Logger)), nil
	case "term":
		return termhost.New(termhost.WithLogger(log.Logger)), nil
	case "headless":
		return easel.HeadlessHost{Frames: frames}, nil
	default:
		return nil, fmt.Errorf("unknown host %q (want ebiten, term or headless)", name)
	}
}
