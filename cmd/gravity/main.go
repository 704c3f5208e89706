package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/lixenwraith/gravity2d/audio"
	"github.com/lixenwraith/gravity2d/config"
	"github.com/lixenwraith/gravity2d/engine"
	"github.com/lixenwraith/gravity2d/game"
	"github.com/lixenwraith/gravity2d/logging"
	"github.com/lixenwraith/gravity2d/render"
	"github.com/lixenwraith/gravity2d/terminal"
)

// Frame cap applied to headless runs that set none
const headlessFrames = 600

var (
	configFlag   = flag.String("config", "", "Path to YAML config, defaults when empty")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal, rendering to a recorder")
	framesFlag   = flag.Uint64("frames", 0, "Stop after this many frames, 0 keeps the config value")
	profileFlag  = flag.String("profile", "", "Profiling mode: cpu, mem")
	logFlag      = flag.String("log", "", "Log level override: debug, info, warn, error, off")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gravity: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile mode %q", *profileFlag)
	}

	loop, err := cfg.Loop.Engine()
	if err != nil {
		return err
	}
	bindings, err := cfg.Input.KeyBindings()
	if err != nil {
		return err
	}

	headless := *headlessFlag || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless && loop.MaxFrames == 0 {
		loop.MaxFrames = headlessFrames
	}

	sounds := startAudio(cfg.Audio, headless, logger)
	if sounds != nil {
		defer sounds.Shutdown()
	}

	worldOpts := []game.Option{
		game.WithSize(cfg.Window.Width, cfg.Window.Height),
		game.WithGravity(cfg.Physics.Gravity.Vec2()),
		game.WithCollisions(cfg.Physics.Collisions),
		game.WithLogger(logger.Named("game")),
	}
	if sounds != nil {
		worldOpts = append(worldOpts, game.WithSounds(sounds))
	}
	world := game.New(worldOpts...)
	defer world.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []engine.Option{
		engine.WithConfig(loop),
		engine.WithBindings(bindings),
		engine.WithLogger(logger.Named("engine")),
	}

	if headless {
		eng, err := engine.New(world, render.NewRecorder(), engine.NewSliceSource(), engineOpts...)
		if err != nil {
			return err
		}
		err = eng.Run(ctx)
		logSession(logger, eng, world)
		return err
	}
	return runTerminal(ctx, cfg, world, engineOpts, logger)
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *framesFlag > 0 {
		cfg.Loop.MaxFrames = *framesFlag
	}
	if *logFlag != "" {
		cfg.Logging.Level = *logFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startAudio returns nil when audio is off; device failure degrades to silent play
func startAudio(cfg config.AudioConfig, headless bool, logger *zap.Logger) *audio.Manager {
	if !cfg.Enabled || headless {
		return nil
	}
	m := audio.NewManager(audio.WithLogger(logger.Named("audio")))
	if err := game.RegisterSounds(m); err != nil {
		logger.Warn("audio cues unavailable", zap.Error(err))
		return nil
	}
	if err := m.Initialize(); err != nil {
		logger.Warn("audio initialization failed, continuing without audio", zap.Error(err))
		return m
	}
	m.SetSoundVolume(cfg.SoundVolume)
	m.SetMusicVolume(cfg.MusicVolume)
	m.PlayMusic(game.MusicTheme)
	return m
}

func runTerminal(ctx context.Context, cfg *config.Config, world *game.World, opts []engine.Option, logger *zap.Logger) error {
	screen, err := terminal.OpenScreen()
	if err != nil {
		return err
	}
	// Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			crash(screen, r)
		}
	}()
	defer screen.Fini()

	source := terminal.NewSource(screen,
		terminal.WithReleaseTimeout(cfg.Input.ReleaseTimeout),
		terminal.WithLogger(logger.Named("input")),
	)
	renderer := render.NewTerminal(screen, cfg.Window.CellWidth, cfg.Window.CellHeight)
	eng, err := engine.New(world, renderer, source, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return source.Run(gctx)
	})
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				crash(screen, r)
			}
		}()
		// Loop exit stops the poller
		defer cancel()
		return eng.Run(gctx)
	})
	err = g.Wait()

	logSession(logger, eng, world)
	return err
}

// crash restores the terminal and reports the panic with its stack
func crash(screen tcell.Screen, r any) {
	screen.Fini()
	// \r\n for raw mode compatibility
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mGRAVITY CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func logSession(logger *zap.Logger, eng *engine.Engine, world *game.World) {
	s := eng.Stats()
	logger.Info("session finished",
		zap.Int("score", world.Score()),
		zap.Int("remaining", world.Remaining()),
		zap.Uint64("frames", s.Frames),
		zap.Uint64("steps", s.Steps),
		zap.Duration("dropped", s.Dropped),
		zap.Duration("elapsed", s.Elapsed),
	)
}
