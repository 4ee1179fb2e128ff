package query

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"wgsla/internal/source"
)

// PrimeResult reports the outcome of priming a single loaded file.
type PrimeResult struct {
	Path   string
	FileID source.FileID
	Err    error
}

// Prime loads every path into the FileSet, then fans item-tree
// construction and every definition's inference out across a worker pool
// sized by jobs (0 selects GOMAXPROCS), warming the session's memo
// tables before the first interactive request arrives. An edit arriving mid-
// prime cancels ctx's derived context, at which point every worker's next
// suspension point (an ItemTree/Body/Infer call) observes it and returns,
// discarding whatever that worker had not yet committed — outstanding
// work for the old revision is abandoned, not corrupted, since nothing
// partial is ever written to a memo table.
//
// sink, if non-nil, receives one queued/working/done/error Event per file
// per stage — the progress feed `wgsla tui` renders live. A nil sink
// costs nothing extra; this is the common path for a one-shot `check`.
func (db *Database) Prime(ctx context.Context, paths []string, jobs int, sink ProgressSink) ([]PrimeResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	emit := func(file string, stage Stage, status Status, err error) {
		if sink != nil {
			sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
		}
	}

	results := make([]PrimeResult, len(paths))
	fileIDs := make([]source.FileID, len(paths))
	for i, p := range paths {
		emit(p, StageItemTree, StatusQueued, nil)
		content, err := os.ReadFile(p)
		if err != nil {
			results[i] = PrimeResult{Path: p, Err: fmt.Errorf("query: reading %s: %w", p, err)}
			emit(p, StageItemTree, StatusError, err)
			continue
		}
		fileIDs[i] = db.Files.Open(p, content)
		results[i] = PrimeResult{Path: p, FileID: fileIDs[i]}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i := range paths {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			p := paths[i]
			emit(p, StageItemTree, StatusWorking, nil)
			items, err := db.ItemTree(gctx, fileIDs[i])
			if err != nil {
				results[i].Err = err
				emit(p, StageItemTree, StatusError, err)
				return nil //nolint:nilerr // per-file priming failures are reported, not fatal to the batch
			}
			emit(p, StageInfer, StatusWorking, nil)
			for idx := 1; idx < len(items.Items); idx++ {
				it := &items.Items[idx]
				if !hasBody(it) {
					continue
				}
				if _, err := db.Infer(gctx, it.ID); err != nil {
					results[i].Err = err
					emit(p, StageInfer, StatusError, err)
					return nil //nolint:nilerr
				}
			}
			emit(p, StageInfer, StatusDone, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
