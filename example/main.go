// Command example demonstrates embedding tickface as an SDK, without a
// window: a headless clock redraws on its own adaptive cadence and
// reports each repaint request.
//
// Run with:
//
//	go run ./example
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jpalmerr/tickface"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// controls the clock will follow
	seconds := tickface.NewToggle("seconds", tickface.StartOn())
	rate, err := tickface.NewRotary("rate", []string{"1", "60", "3600"})
	if err != nil {
		logger.Error("failed to create rate control", "error", err)
		os.Exit(1)
	}

	redraws := 0
	clock, err := tickface.New("Example",
		tickface.WithMaxRefreshInterval(250*time.Millisecond),
		tickface.WithLogger(logger),
		tickface.WithRedrawHandler(func() {
			redraws++
		}),
	)
	if err != nil {
		logger.Error("failed to create clock", "error", err)
		os.Exit(1)
	}
	defer clock.Dispose()

	clock.BindSecondHand(seconds.Value())
	clock.BindTimeRate(tickface.Map(rate.Choice(), func(s string) float64 {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}))

	fmt.Printf("second hand on : delay %s\n", clock.RedrawDelay())

	// hiding the second hand lets the loop throttle down
	seconds.Set(false)
	fmt.Printf("second hand off: delay %s\n", clock.RedrawDelay())

	// spin time at a minute per second
	_ = rate.Select(1)

	start := clock.Time()
	time.Sleep(2 * time.Second)
	fmt.Printf("displayed time advanced by %s in 2s of wall time\n",
		clock.Time().Sub(start).Round(time.Second))
	fmt.Printf("repaint requests: %d\n", redraws)
}
