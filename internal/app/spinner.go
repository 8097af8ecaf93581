package app

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/reqrelay/internal/logger"
)

const (
	// spinnerInterval is how often the spinner advances.
	spinnerInterval = 100 * time.Millisecond

	// spinnerType is the progressbar spinner charset.
	spinnerType = 14
)

// startSpinner draws an indeterminate spinner on w until the returned function is called.
// Nothing is drawn when w is nil or the log level is above info.
func startSpinner(w io.Writer, description string) func() {
	if w == nil || logger.Level() > zap.InfoLevel {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(spinnerType),
		progressbar.OptionClearOnFinish(),
	)

	var (
		done = make(chan struct{})
		wg   sync.WaitGroup
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()

		_ = bar.Finish()
	}
}
