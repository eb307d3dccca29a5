package media

import (
	"context"
	"fmt"

	"github.com/leadersite/internal/logger"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

const cleanupConcurrency = 8

// ItemError names the 1-based position of the payload that failed in a batch upload.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("upload of item %d failed: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// UploadAll uploads every payload concurrently and returns assets in input order.
// Any failure fails the whole batch; assets already stored by siblings are left in place.
func UploadAll(ctx context.Context, host Host, payloads []string, folder string) ([]Asset, error) {
	assets := make([]Asset, len(payloads))
	group := new(errgroup.Group)

	for i, payload := range payloads {
		group.Go(func() error {
			asset, err := host.Upload(ctx, payload, folder)
			if err != nil {
				return &ItemError{Index: i + 1, Err: err}
			}
			assets[i] = asset
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// Cleanup deletes every asset concurrently. Failures are logged and never returned;
// the surrounding document mutation must not depend on them. Returns the number of
// deletes issued.
func Cleanup(ctx context.Context, host Host, publicIDs []string) int {
	p := pool.New().WithMaxGoroutines(cleanupConcurrency)
	issued := 0

	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		issued++
		p.Go(func() {
			if err := host.Delete(ctx, id); err != nil {
				logger.For(ctx).WithError(err).WithField("public_id", id).Warn("failed to delete remote asset")
			}
		})
	}

	p.Wait()
	return issued
}

// CleanupURLs resolves each URL to an asset id on host and deletes it best-effort.
// URLs the host did not produce are skipped.
func CleanupURLs(ctx context.Context, host Host, urls ...string) int {
	ids := make([]string, 0, len(urls))
	for _, raw := range urls {
		if raw == "" {
			continue
		}
		id, ok := host.PublicIDFromURL(raw)
		if !ok {
			logger.For(ctx).WithField("url", raw).Debug("skipping cleanup of foreign media url")
			continue
		}
		ids = append(ids, id)
	}
	return Cleanup(ctx, host, ids)
}
