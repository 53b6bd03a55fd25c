package services

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

// pageFetch returns one page of results starting at the given offset.
type pageFetch func(ctx context.Context, start int) domain.Outcome

// collectWithTotal aggregates pages from an endpoint that reports the total
// item count alongside each page. It stops once the accumulated count
// reaches the reported total. Any intermediate error or pending outcome is
// propagated unchanged; partial results are never returned as success.
func collectWithTotal(ctx context.Context, fetch pageFetch, itemsKey, totalKey string) domain.Outcome {
	all := []any{}
	start := 0

	for {
		out := fetch(ctx, start)
		if !out.IsSuccess() {
			return out
		}

		page, ok := out.Data().(map[string]any)
		if !ok {
			return domain.Errorf("unexpected page shape for %q: %T", itemsKey, out.Data())
		}

		items, _ := page[itemsKey].([]any)
		all = append(all, items...)

		// An empty page means the server has nothing more to give,
		// whatever total it reported.
		if len(items) == 0 || start+len(items) >= intField(page, totalKey) {
			return domain.Success(all)
		}
		start += len(items)
	}
}

// collectUntilLastPage aggregates pages from an endpoint that marks its
// final page with a boolean flag. A page without the flag is treated as the
// last one.
func collectUntilLastPage(ctx context.Context, fetch pageFetch, itemsKey, lastPageKey string) domain.Outcome {
	all := []any{}
	start := 0

	for {
		out := fetch(ctx, start)
		if !out.IsSuccess() {
			return out
		}

		page, ok := out.Data().(map[string]any)
		if !ok {
			return domain.Errorf("unexpected page shape for %q: %T", itemsKey, out.Data())
		}

		items, _ := page[itemsKey].([]any)
		all = append(all, items...)

		last, ok := page[lastPageKey].(bool)
		if !ok {
			last = true
		}
		if last || len(items) == 0 {
			return domain.Success(all)
		}
		start += len(items)
	}
}

// intField reads a numeric field from a decoded JSON object. JSON numbers
// decode as float64.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
