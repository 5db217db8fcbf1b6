package batch

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/expki/go-numutil/compute"
	"github.com/expki/go-numutil/config"
	"github.com/expki/go-numutil/logger"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

var index atomic.Uint64

type Runner struct {
	workers  int
	cast     compute.CastPolicy
	progress io.Writer
}

// NewRunner builds a runner from cfg. A nil progress writer disables the progress bar.
func NewRunner(cfg config.Config, progress io.Writer) (*Runner, error) {
	cast, err := cfg.Image.Policy()
	if err != nil {
		return nil, errors.Join(errors.New("invalid image config"), err)
	}
	return &Runner{
		workers:  max(cfg.Batch.GetWorkers(), 1),
		cast:     cast,
		progress: progress,
	}, nil
}

// Run evaluates every request with at most r.workers in flight. Responses keep request order.
// A failing request is reported in its response; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, requests []Request) (responses []Response, err error) {
	start := time.Now()
	responses = make([]Response, len(requests))

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions64(
			int64(len(requests)),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("Evaluate requests"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for idx, req := range requests {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			responses[idx] = r.evaluate(req)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if bar != nil {
		bar.Close()
	}
	if err != nil {
		logger.Sugar().Warnf("batch canceled after %s: %v", time.Since(start).String(), err)
		return nil, err
	}
	logger.Sugar().Infof("batch of %d requests finished (%dms)", len(requests), time.Since(start).Milliseconds())
	return responses, nil
}

func (r *Runner) evaluate(req Request) (res Response) {
	start := time.Now()
	txid := index.Add(1)
	logger.Sugar().Debugf("%d %s request %q started", txid, req.Op, req.ID)

	res = Response{ID: req.ID, Op: req.Op}
	result, err := Dispatch(req, r.cast)
	if err != nil {
		logger.Sugar().Warnf("%d %s request %q failed: %v", txid, req.Op, req.ID, err)
		res.Error = err.Error()
		return res
	}
	res.Result = result
	logger.Sugar().Debugf("%d %s request %q succeeded (%dms)", txid, req.Op, req.ID, time.Since(start).Milliseconds())
	return res
}
