package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/altinukshini/schedviz/internal/export"
)

type BulkDeleteFilter struct {
	Scheduler string
	Algorithm string
	OlderThan time.Duration
}

func FilterExports(entries []export.Entry, filter BulkDeleteFilter) []export.Entry {
	var matched []export.Entry
	now := time.Now()

	for _, e := range entries {
		if filter.Scheduler != "" && e.Scheduler != filter.Scheduler {
			continue
		}
		if filter.Algorithm != "" && e.Algorithm != filter.Algorithm {
			continue
		}
		if filter.OlderThan > 0 && now.Sub(e.StoredAt) < filter.OlderThan {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// Deleter is the part of the export store bulk deletion needs.
type Deleter interface {
	Delete(id string) error
}

type BulkDeleteResult struct {
	Completed int
	Failed    int
	Errors    []error
}

// Err summarises failures, or nil when everything was deleted.
func (r *BulkDeleteResult) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("deleted %d/%d exports, last error: %w",
		r.Completed, r.Completed+r.Failed, r.Errors[len(r.Errors)-1])
}

func BulkDeleteExports(ctx context.Context, store Deleter, ids []string, onProgress func(completed, total int)) (*BulkDeleteResult, error) {
	result := &BulkDeleteResult{}
	total := len(ids)

	for i, id := range ids {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := store.Delete(id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("export %s: %w", id, err))
		} else {
			result.Completed++
		}

		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	return result, nil
}
