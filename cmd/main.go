package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glshapes/glfwcontext"
	"github.com/richinsley/glshapes/options"
	"github.com/richinsley/glshapes/renderer"
	"github.com/richinsley/glshapes/scene"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	runtime.LockOSThread()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

func parseOptions() *options.ShapesOptions {
	opts := &options.ShapesOptions{
		Scene:        flag.String("scene", "movement", "Scene to show: "+strings.Join(scene.Names(), ", ")),
		ConfigFile:   flag.String("config", "", "Optional YAML settings file"),
		Help:         flag.Bool("help", false, "Show help message"),
		Width:        flag.Int("width", 800, "Window or output width"),
		Height:       flag.Int("height", 800, "Window or output height"),
		Record:       flag.Bool("record", false, "Render offscreen and encode to -output instead of opening a window"),
		Duration:     flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:          flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile:   flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath:   flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Translate:    flag.Bool("translate", false, "Build shaders from ESSL sources via the shader translator"),
		LogLevel:     flag.String("loglevel", "info", "Log level (debug, info, warn, error)"),
		LegacyCircle: flag.Bool("legacy-circle", false, "Draw the skewed legacy circle in the movement scene"),
	}
	flag.Parse()
	return opts
}

// resolveSettings loads the settings file, then lets explicitly set flags win.
func resolveSettings(opts *options.ShapesOptions) error {
	settings := options.DefaultSettings()
	if *opts.ConfigFile != "" {
		var err error
		settings, err = options.LoadSettingsFile(*opts.ConfigFile)
		if err != nil {
			return err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["width"] {
		settings.Width = *opts.Width
	}
	if set["height"] {
		settings.Height = *opts.Height
	}
	if set["legacy-circle"] {
		settings.LegacyCircle = *opts.LegacyCircle
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := opts.ValidateRecording(); err != nil {
		return err
	}

	*opts.Width = settings.Width
	*opts.Height = settings.Height
	*opts.LegacyCircle = settings.LegacyCircle
	opts.Settings = settings
	return nil
}

func run(ctx context.Context, opts *options.ShapesOptions, logger *zap.Logger) error {
	s, err := scene.New(*opts.Scene, opts.Settings)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(logger); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics(logger)

	win, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()

	r, err := renderer.NewRenderer(opts, win, logger)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.LoadScene(s); err != nil {
		return err
	}

	if *opts.Record {
		if err := r.RunOffscreen(ctx, opts); err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		logger.Info("recording complete", zap.String("output", *opts.OutputFile))
		return nil
	}

	win.RegisterKeyCallback(glfw.KeyR, func() {
		logger.Debug("restarting scene clock")
		r.ResetClock()
	})
	logger.Info("starting interactive render loop", zap.String("scene", s.Name()))
	return r.Run(ctx)
}

func main() {
	opts := parseOptions()
	if *opts.Help {
		fmt.Println("OpenGL shape demos")
		flag.PrintDefaults()
		return
	}

	logger, err := newLogger(*opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *opts.LogLevel, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := resolveSettings(opts); err != nil {
		logger.Fatal("invalid settings", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("glshapes failed", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
