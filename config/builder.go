package config

import (
	"fmt"
	"time"

	"github.com/jpalmerr/tickface"
)

// Build converts a parsed configuration into SDK clock options.
//
// The returned options are ready to pass to tickface.New along with any
// host-specific ones (driver, redraw handler).
func Build(cfg *Config) ([]tickface.Option, error) {
	var opts []tickface.Option

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
		opts = append(opts, tickface.WithLocation(loc))
	}

	if cfg.Rate != 1 {
		opts = append(opts, tickface.WithTimeRate(cfg.Rate))
	}

	if cfg.SecondHand != nil {
		opts = append(opts, tickface.WithSecondHand(*cfg.SecondHand))
	}
	if cfg.MinuteRing != nil {
		opts = append(opts, tickface.WithMinuteRing(*cfg.MinuteRing))
	}
	if cfg.HourRing != nil {
		opts = append(opts, tickface.WithHourRing(*cfg.HourRing))
	}

	if cfg.MaxRefresh != 0 {
		opts = append(opts, tickface.WithMaxRefreshInterval(cfg.MaxRefresh.Duration()))
	}

	if cfg.Timer {
		opts = append(opts, tickface.WithTimerMode(true))
	}

	if cfg.StateFile != "" {
		opts = append(opts, tickface.WithStateFile(cfg.StateFile))
	}

	return opts, nil
}
