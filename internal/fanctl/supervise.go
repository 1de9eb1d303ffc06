package fanctl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xl0/nvml-tool/internal/ui"
)

type SuperviseOptions struct {
	// MetricsPort > 0 serves prometheus metrics on that port while
	// the loop runs.
	MetricsPort int
}

// Supervise runs the controller under an actor group together with a
// signal handler and, optionally, a metrics exporter. The signal
// handler only unblocks the loop; all device I/O, including
// restoration, stays on the loop goroutine.
func Supervise(controller Controller, opts SuperviseOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	return supervise(ctx, cancel, controller, sig, opts)
}

func supervise(ctx context.Context, cancel context.CancelFunc, controller Controller, sig <-chan os.Signal, opts SuperviseOptions) error {
	var g run.Group
	var loopErr error
	{
		// === the control loop itself
		g.Add(func() error {
			loopErr = controller.Run(ctx)
			return loopErr
		}, func(err error) {
			cancel()
		})
	}
	{
		// === cancellation
		g.Add(func() error {
			select {
			case <-sig:
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			cancel()
		})
	}
	if opts.MetricsPort > 0 {
		// === prometheus exporter, serves while the loop runs
		server := &http.Server{Addr: fmt.Sprintf(":%d", opts.MetricsPort), Handler: promhttp.Handler()}

		g.Add(func() error {
			go func() {
				<-ctx.Done()
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				_ = server.Shutdown(timeoutCtx)
			}()
			ui.Info("Serving metrics on :%d/metrics", opts.MetricsPort)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				// metrics are auxiliary, a dead endpoint must not
				// stop fan control
				ui.Warning("Cannot serve metrics endpoint (%s)", err.Error())
				<-ctx.Done()
			}
			return nil
		}, func(err error) {
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		return err
	}
	// on SIGINT/SIGTERM the signal actor exits first and clean, but
	// the exit status still has to reflect a failed restoration
	return loopErr
}
