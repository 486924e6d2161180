package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const cleanUpTimeout = 5 * time.Second

type operation func(ctx context.Context) error

// withSignals returns a context that is cancelled on SIGINT, SIGTERM or SIGHUP.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

// cleanUp runs every op concurrently and stops waiting once timeout has elapsed.
func cleanUp(timeout time.Duration, ops map[string]operation) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for key, op := range ops {
			wg.Add(1)
			go func() {
				defer wg.Done()

				logrus.Debug(fmt.Sprintf("cleaning up: %s", key))
				if err := op(ctx); err != nil {
					logrus.Error(fmt.Sprintf("%s: clean up failed: %s", key, err.Error()))
					return
				}

				logrus.Debug(fmt.Sprintf("%s was closed", key))
			}()
		}

		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logrus.Error(fmt.Sprintf("timeout %d ms has been elapsed, skipping clean up", timeout.Milliseconds()))
	}
}
