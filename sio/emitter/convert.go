package emitter

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/brimdata/stax"
	"github.com/brimdata/stax/pkg/storage"
	"github.com/brimdata/stax/sio/lineio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A Job concatenates the lines of its inputs into one document at Output.
type Job struct {
	Inputs []*storage.URI
	Output *storage.URI
}

// SplitJobs returns one job per input, each writing a file in dir named
// for its input with the extension replaced by ".xml".
func SplitJobs(dir *storage.URI, inputs []*storage.URI) ([]Job, error) {
	seen := make(map[string]*storage.URI)
	var jobs []Job
	for _, in := range inputs {
		base := in.Base()
		if in.IsStdio() {
			base = "stdin"
		}
		name := strings.TrimSuffix(base, path.Ext(base)) + ".xml"
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("inputs %s and %s both split to %s", prev, in, name)
		}
		seen[name] = in
		jobs = append(jobs, Job{
			Inputs: []*storage.URI{in},
			Output: dir.JoinPath(name),
		})
	}
	return jobs, nil
}

// Convert runs jobs concurrently.  Each job opens its own sink and asks
// factory for its own writer.  The first failure cancels the rest.
func Convert(ctx context.Context, engine storage.Engine, factory stax.Factory, opts Opts, jobs []Job, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	group, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		group.Go(func() error {
			logger := logger.With(zap.Stringer("output", job.Output))
			lines, err := convert(ctx, engine, factory, opts, job)
			if err != nil {
				logger.Error("conversion failed", zap.Error(err))
				return fmt.Errorf("%s: %w", job.Output, err)
			}
			logger.Info("converted", zap.Int("inputs", len(job.Inputs)), zap.Int("lines", lines))
			return nil
		})
	}
	return group.Wait()
}

func convert(ctx context.Context, engine storage.Engine, factory stax.Factory, opts Opts, job Job) (int, error) {
	d, err := NewFile(ctx, engine, job.Output, factory, opts)
	if err != nil {
		return 0, err
	}
	for _, in := range job.Inputs {
		if err = copyFrom(ctx, engine, d, in); err != nil {
			break
		}
	}
	if closeErr := d.Close(); err == nil {
		err = closeErr
	}
	return d.Lines(), err
}

func copyFrom(ctx context.Context, engine storage.Engine, d *Document, u *storage.URI) error {
	r, err := engine.Get(ctx, u)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := Copy(ctx, d, lineio.NewReader(r)); err != nil {
		return fmt.Errorf("%s: %w", u, err)
	}
	return nil
}
