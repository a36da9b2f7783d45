package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jpalmerr/tickface"
	"github.com/jpalmerr/tickface/config"
	"github.com/jpalmerr/tickface/ebitencanvas"
	"github.com/spf13/cobra"
)

// rateChoices are the rotary positions for the time-rate control.
var rateChoices = []string{"0.25", "1", "60", "3600"}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd opens the clock window.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the clock window",
	Long: `Open a window rendering the configured clock.

Keys:
  S      toggle second hand
  M      toggle minute tick ring
  H      toggle hour numeral ring
  R      cycle time rate (0.25x / 1x / 60x / 3600x)
  T      toggle timer (stopwatch) display
  Space  start the timer
  C      clear the timer
  Esc/Q  quit

Without -c, built-in defaults are used.

Example:
  tickface run
  tickface run -c config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	opts, err := config.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to build clock options: %w", err)
	}

	// the game loop pumps frames; the clock schedules against it
	pump := tickface.NewFramePump()
	opts = append(opts,
		tickface.WithDriver(pump),
		tickface.WithLogger(logger),
	)

	clock, err := tickface.New(cfg.Label, opts...)
	if err != nil {
		return fmt.Errorf("failed to create clock: %w", err)
	}
	defer clock.Dispose()

	g, err := newGame(clock, pump, cfg)
	if err != nil {
		return err
	}

	logger.Info("window opening",
		"label", cfg.Label,
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
	)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("TickFace - " + cfg.Label)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window error: %w", err)
	}

	logger.Info("window closed")
	return nil
}

// game hosts the clock and its controls in an Ebitengine window.
type game struct {
	clock *tickface.Clock
	pump  *tickface.FramePump

	seconds    *tickface.Toggle
	minuteRing *tickface.Toggle
	hourRing   *tickface.Toggle
	timerMode  *tickface.Toggle
	rate       *tickface.Rotary

	width  int
	height int
}

func newGame(clock *tickface.Clock, pump *tickface.FramePump, cfg *config.Config) (*game, error) {
	g := &game{
		clock:  clock,
		pump:   pump,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	// controls start in the configured position and publish immediately;
	// the clock picks the values up at bind time
	g.seconds = tickface.NewToggle("seconds", startOn(clock.SecondHand())...)
	g.minuteRing = tickface.NewToggle("minute ring", startOn(cfg.MinuteRing == nil || *cfg.MinuteRing)...)
	g.hourRing = tickface.NewToggle("hour ring", startOn(cfg.HourRing == nil || *cfg.HourRing)...)
	g.timerMode = tickface.NewToggle("timer", startOn(cfg.Timer)...)

	rate, err := tickface.NewRotary("rate", rateChoices, tickface.WithSelected(initialRateIndex(cfg.Rate)))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate control: %w", err)
	}
	g.rate = rate

	clock.BindSecondHand(g.seconds.Value())
	clock.BindMinuteRing(g.minuteRing.Value())
	clock.BindHourRing(g.hourRing.Value())
	clock.BindTimerMode(g.timerMode.Value())
	clock.BindTimeRate(tickface.Map(g.rate.Choice(), parseRate))

	return g, nil
}

// startOn adapts a bool to the toggle option list.
func startOn(on bool) []tickface.ToggleOption {
	if on {
		return []tickface.ToggleOption{tickface.StartOn()}
	}
	return nil
}

// initialRateIndex picks the rotary position matching the configured
// rate, falling back to 1x.
func initialRateIndex(rate float64) int {
	for i, c := range rateChoices {
		if parseRate(c) == rate {
			return i
		}
	}
	return 1
}

// parseRate maps a rotary choice to a multiplier. Choices are fixed
// strings, so a parse failure means a programming error; fall back to
// real time rather than freezing the face.
func parseRate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

func (g *game) Update() error {
	g.pump.Tick()

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seconds.Flip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.minuteRing.Flip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hourRing.Flip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.timerMode.Flip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rate.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.StartTimer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clock.ClearTimer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	zone := tickface.DrawZone{
		Width:  float64(g.width),
		Height: float64(g.height),
	}
	g.clock.Draw(ebitencanvas.New(screen), zone)

	status := fmt.Sprintf("rate %sx | refresh %s", rateChoices[g.rate.Selected()], g.clock.RedrawDelay())
	if g.timerMode.On() {
		if _, running := g.clock.TimerStart(); running {
			status += fmt.Sprintf(" | timer %s", g.clock.TimerElapsed().Round(time.Second))
		} else {
			status += " | timer stopped - Space to start"
		}
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
