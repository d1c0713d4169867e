package feedback

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator marks a long-running operation. Start returns the release
// function; callers defer it so the indicator is cleared on every exit path.
//
//	stop := ind.Start("loading recordings")
//	defer stop()
type Indicator interface {
	Start(description string) (stop func())
}

const spinInterval = 100 * time.Millisecond

// Spinner animates a progressbar spinner while an operation runs. On a
// non-terminal writer it draws nothing.
type Spinner struct {
	w       io.Writer
	animate bool
}

func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, animate: IsTerminal(w)}
}

func (s *Spinner) Start(description string) func() {
	if !s.animate {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinInterval)
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

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			_ = bar.Finish()
		})
	}
}

// Nop is an Indicator that shows nothing.
type Nop struct{}

func (Nop) Start(string) func() { return func() {} }
