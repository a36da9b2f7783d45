package tickface

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/jpalmerr/tickface/internal/store"
)

// clockConfig holds mutable state during Clock construction.
type clockConfig struct {
	baseTime    time.Time
	location    *time.Location
	rate        float64
	secondHand  bool
	minuteRing  bool
	hourRing    bool
	maxRefresh  time.Duration
	timerMode   bool
	autoAdvance bool
	driver      Driver
	state       StateStore
	redraw      func()
	logger      *slog.Logger
}

// StateStore is the persistent storage boundary: a simple string-keyed
// byte store. Values are serialised with encoding/json.
//
// The default store is in-memory; [WithStateFile] persists to a local
// JSON file. Custom implementations must be safe for concurrent use.
type StateStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Option is a function that configures a [Clock] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*clockConfig) error

// WithBaseTime sets the instant the clock displays at the moment it is
// created. Elapsed wall time (scaled by the time rate) advances the
// display from there. Defaults to the current time.
func WithBaseTime(t time.Time) Option {
	return func(cfg *clockConfig) error {
		cfg.baseTime = t
		return nil
	}
}

// WithLocation sets the timezone the clock face displays.
// Defaults to [time.Local].
//
// Returns an error if loc is nil.
func WithLocation(loc *time.Location) Option {
	return func(cfg *clockConfig) error {
		if loc == nil {
			return errors.New("location cannot be nil")
		}
		cfg.location = loc
		return nil
	}
}

// WithTimeRate sets the time-rate multiplier: 1 is real time, 60 makes a
// minute pass per second, 0 freezes the display. Negative rates run the
// clock backwards.
//
// Returns an error if the rate is NaN or infinite.
func WithTimeRate(rate float64) Option {
	return func(cfg *clockConfig) error {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return errors.New("time rate must be finite")
		}
		cfg.rate = rate
		return nil
	}
}

// WithSecondHand sets whether the second hand is rendered.
// Defaults to true. The second hand is a timing field: hiding it lets the
// redraw loop throttle down to a coarse cadence.
func WithSecondHand(show bool) Option {
	return func(cfg *clockConfig) error {
		cfg.secondHand = show
		return nil
	}
}

// WithMinuteRing sets whether the 60-count tick ring is rendered.
// Defaults to true.
func WithMinuteRing(show bool) Option {
	return func(cfg *clockConfig) error {
		cfg.minuteRing = show
		return nil
	}
}

// WithHourRing sets whether the 12-count numeral ring is rendered.
// Defaults to true.
func WithHourRing(show bool) Option {
	return func(cfg *clockConfig) error {
		cfg.hourRing = show
		return nil
	}
}

// WithMaxRefreshInterval sets the shortest time between redraws the user
// will tolerate. While the second hand is visible the clock redraws at
// exactly this interval; while it is hidden, redraws may be throttled
// further but never below this. Defaults to 32ms (roughly 30 fps).
//
// Returns an error if the interval is zero or negative.
func WithMaxRefreshInterval(d time.Duration) Option {
	return func(cfg *clockConfig) error {
		if d <= 0 {
			return errors.New("max refresh interval must be positive")
		}
		cfg.maxRefresh = d
		return nil
	}
}

// WithTimerMode sets whether the clock starts in timer (stopwatch) mode,
// showing elapsed time since the persisted timer start rather than the
// time of day. Defaults to false.
func WithTimerMode(enabled bool) Option {
	return func(cfg *clockConfig) error {
		cfg.timerMode = enabled
		return nil
	}
}

// WithAutoAdvance sets whether the clock schedules its own redraw loop.
// Defaults to true. Disable it for hosts that drive every redraw
// themselves and only want [Clock.Draw].
func WithAutoAdvance(enabled bool) Option {
	return func(cfg *clockConfig) error {
		cfg.autoAdvance = enabled
		return nil
	}
}

// WithDriver sets the platform scheduling [Driver]. Defaults to a
// [TimerDriver] emulating a 60Hz display; game-loop hosts should supply
// a [FramePump] and tick it each frame.
//
// Returns an error if the driver is nil.
func WithDriver(d Driver) Option {
	return func(cfg *clockConfig) error {
		if d == nil {
			return errors.New("driver cannot be nil")
		}
		cfg.driver = d
		return nil
	}
}

// WithStateStore sets the [StateStore] used for persisted widget state
// such as the timer start. Defaults to an in-memory store that does not
// survive restarts.
//
// Returns an error if the store is nil.
func WithStateStore(s StateStore) Option {
	return func(cfg *clockConfig) error {
		if s == nil {
			return errors.New("state store cannot be nil")
		}
		cfg.state = s
		return nil
	}
}

// WithStateFile persists widget state to a JSON file at path, creating
// it on first write.
//
// Returns an error if an existing file cannot be read or parsed.
func WithStateFile(path string) Option {
	return func(cfg *clockConfig) error {
		if path == "" {
			return errors.New("state file path cannot be empty")
		}
		kv, err := store.OpenFileKV(path)
		if err != nil {
			return err
		}
		cfg.state = kv
		return nil
	}
}

// WithRedrawHandler registers a function invoked whenever the clock wants
// to be repainted: on every redraw-loop wake-up and, coalesced to at most
// once per paint opportunity, after configuration changes.
//
// Hosts that already repaint continuously (such as Ebitengine) can omit
// this. The handler must be non-blocking.
//
// Nil handlers are silently ignored.
func WithRedrawHandler(fn func()) Option {
	return func(cfg *clockConfig) error {
		if fn == nil {
			return nil // no-op for nil handler (safe to call)
		}
		cfg.redraw = fn
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the clock.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clockConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
