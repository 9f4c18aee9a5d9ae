package ecb

import (
	"context"
	"unsafe"

	"github.com/argus-labs/ecb/pkg/assert"
	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/jobs"
	"github.com/argus-labs/ecb/pkg/ranksort"
	"github.com/rotisserie/eris"
)

// location is the sort key of a resolved record: page ID high word, page ID low word, row.
type location ranksort.Int3

func (l location) SortKey3() ranksort.Int3 {
	return ranksort.Int3(l)
}

func (l location) samePage(other location) bool {
	return l[0] == other[0] && l[1] == other[1]
}

func (l location) row() int {
	return int(l[2])
}

func locationOf(loc ecs.Location) location {
	return location{int32(uint32(loc.Page >> 32)), int32(uint32(loc.Page)), loc.Row} //nolint:gosec // bit reinterpretation
}

// pageRun is a stretch of the location order whose records all live in one page.
type pageRun struct {
	page       ecs.PageID
	start, end int
}

// writeBack copies each record's data slots into its entity's page columns. Records are grouped by
// page so each page column is resolved once. Within a page, records keep their playback order, so
// a later record for the same entity overwrites an earlier one.
func (b *buffer) writeBack(
	ctx context.Context, store Store, entities []ecs.Entity, payloads [][]uint64, stats *playbackStats,
) error {
	locs := make([]location, len(entities))
	pages := make([]ecs.PageID, len(entities))
	for i, e := range entities {
		loc, err := store.ResolveLocation(e)
		if err != nil {
			return eris.Wrapf(err, "failed to resolve location of %v", e)
		}
		locs[i] = locationOf(loc)
		pages[i] = loc.Page
	}
	order := ranksort.ByInt3x32(locs)

	runs := make([]pageRun, 0)
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && locs[order[end]].samePage(locs[order[start]]) {
			end++
		}
		runs = append(runs, pageRun{page: pages[order[start]], start: start, end: end})
		start = end
	}
	stats.pages = len(runs)

	// Spans are fetched up front so the store is only called from this goroutine.
	data := b.schema.data
	spans := make([][]byte, len(runs)*len(data))
	for r, run := range runs {
		for d, si := range data {
			span, err := store.PageWriteSpan(run.page, b.schema.slots[si].component)
			if err != nil {
				return eris.Wrapf(err, "failed to get write span of page %d", run.page)
			}
			spans[r*len(data)+d] = span
		}
	}

	copyRun := func(r int) {
		run := runs[r]
		for d, si := range data {
			sl := &b.schema.slots[si]
			span := spans[r*len(data)+d]
			src := sl.word * wordSize
			for _, i := range order[run.start:run.end] {
				dst := locs[i].row() * sl.size
				assert.That(dst+sl.size <= len(span), "row %d outside page %d", locs[i].row(), run.page)
				copy(span[dst:dst+sl.size], recordBytes(payloads[i])[src:src+sl.size])
			}
		}
	}

	workers := min(b.opts.writeBackWorkers, len(runs))
	if workers <= 1 {
		for r := range runs {
			copyRun(r)
		}
		return nil
	}
	// Runs touch disjoint pages.
	return jobs.ParallelFor(ctx, len(runs), workers, func(_ context.Context, _, r int) error {
		copyRun(r)
		return nil
	})
}

// recordBytes views a payload record as bytes.
func recordBytes(rec []uint64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&rec[0])), len(rec)*wordSize)
}
