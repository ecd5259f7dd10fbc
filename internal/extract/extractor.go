// ABOUTME: Sequential extraction pipeline: list, fetch detail, map.
// ABOUTME: Any failed step aborts the run; no partial activity is kept.
package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coroshub/coroshub/internal/coros"
	"github.com/coroshub/coroshub/internal/models"
)

// Options bound what an extraction run covers.
type Options struct {
	// Limit caps how many activities are extracted. Zero means the full
	// history, discovered through count-based pagination.
	Limit int

	// SportTypes filters the listing to the given sport type codes.
	// Empty means all sports.
	SportTypes []int
}

// Extractor drives the extraction pipeline against one authenticated
// client. It holds no state between runs.
type Extractor struct {
	client   *coros.Client
	pageSize int
}

// New creates an Extractor. pageSize caps listing page sizes; values
// outside (0, MaxPageSize] fall back to MaxPageSize.
func New(client *coros.Client, pageSize int) *Extractor {
	if pageSize <= 0 || pageSize > coros.MaxPageSize {
		pageSize = coros.MaxPageSize
	}
	return &Extractor{client: client, pageSize: pageSize}
}

// ListActivities returns activity references in remote listing order.
// With no limit it first probes the total count with a size-1 query,
// then pages through the whole history.
func (e *Extractor) ListActivities(ctx context.Context, opts Options) ([]coros.ActivityRef, error) {
	modeList := joinSportTypes(opts.SportTypes)

	total := opts.Limit
	size := e.pageSize
	if opts.Limit > 0 && opts.Limit < size {
		size = opts.Limit
	}

	if opts.Limit <= 0 {
		probe, err := e.client.ListActivities(ctx, 1, 1, modeList)
		if err != nil {
			return nil, fmt.Errorf("count activities: %w", err)
		}
		total = probe.Count
	}

	var refs []coros.ActivityRef
	pages := (total + size - 1) / size
	for page := 1; page <= pages; page++ {
		result, err := e.client.ListActivities(ctx, page, size, modeList)
		if err != nil {
			return nil, fmt.Errorf("list activities page %d: %w", page, err)
		}
		refs = append(refs, result.DataList...)
		if len(result.DataList) < size {
			break
		}
	}

	if opts.Limit > 0 && len(refs) > opts.Limit {
		refs = refs[:opts.Limit]
	}
	log.Debug("listed activities", "count", len(refs))
	return refs, nil
}

// FetchDetail retrieves the raw detail fragments for one activity.
func (e *Extractor) FetchDetail(ctx context.Context, ref coros.ActivityRef) (*coros.Detail, error) {
	detail, err := e.client.ActivityDetail(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("activity %s: fetch detail: %w", ref.LabelID, err)
	}
	return detail, nil
}

// Extract runs the full pipeline and returns every requested activity
// fully mapped. The first error at any step aborts the run.
func (e *Extractor) Extract(ctx context.Context, opts Options) (*models.ExtractionResult, error) {
	refs, err := e.ListActivities(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &models.ExtractionResult{}
	for _, ref := range refs {
		detail, err := e.FetchDetail(ctx, ref)
		if err != nil {
			return nil, err
		}

		activity, err := MapActivity(ref, detail)
		if err != nil {
			return nil, err
		}

		log.Debug("mapped activity",
			"label_id", activity.LabelID,
			"sport", activity.Sport,
			"laps", len(activity.Laps),
			"samples", len(activity.Samples))
		result.Add(*activity)
	}
	return result, nil
}

func joinSportTypes(types []int) string {
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ",")
}
