package ecb

import (
	"context"
	"reflect"
	"time"

	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/ranksort"
	"github.com/argus-labs/ecb/pkg/statsd"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	ddotel "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/opentelemetry"
	ddtracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// playbackStats summarizes one playback for logs, spans and metrics.
type playbackStats struct {
	records     int // Recorded commands
	dropped     int // Records skipped under PolicyDrop
	substituted int // Throwaway entities created under PolicySubstitute
	prefabs     int // Distinct prefabs instantiated
	pages       int // Page runs written
}

// Playback replays every recorded command into store. It may succeed only once.
//
// Checks that fail before the store is touched (a destroyed target under PolicyThrow, a missing
// prefab) leave the buffer recording so it can be played back again. Once the store has been
// changed the buffer is consumed, even if a later step fails.
func (b *buffer) Playback(ctx context.Context, store Store) error {
	if isNil(store) {
		return eris.Wrapf(ErrMissingStore, "buffer %s", b.id)
	}
	switch b.state {
	case StateRecording:
	case StateDisposed:
		return eris.Wrapf(ErrDisposed, "buffer %s", b.id)
	default:
		return eris.Wrapf(ErrUseAfterPlayback, "buffer %s", b.id)
	}

	start := time.Now()
	ctx, span := b.opts.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "ecb.playback",
		trace.WithAttributes(
			attribute.String("ecb.buffer_id", b.id.String()),
			attribute.String("ecb.variant", b.variant.String()),
		))
	defer span.End()

	var stats playbackStats
	var err error
	switch b.variant {
	case variantApply:
		err = b.playbackApply(ctx, store, &stats)
	case variantInstantiate:
		err = b.playbackInstantiate(ctx, store, &stats)
	}

	span.SetAttributes(
		attribute.Int("ecb.records", stats.records),
		attribute.Int("ecb.dropped", stats.dropped),
		attribute.Int("ecb.pages", stats.pages),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "playback failed")
		b.logger.Warn().Err(err).Str("state", b.state.String()).Msg("playback failed")
		return err
	}

	statsd.EmitPlaybackStat(start, statsd.PlaybackStat{
		Variant: b.variant.String(),
		Records: stats.records,
		Dropped: stats.dropped,
		Pages:   stats.pages,
	})
	b.logger.Debug().
		Int("records", stats.records).
		Int("dropped", stats.dropped).
		Int("substituted", stats.substituted).
		Int("prefabs", stats.prefabs).
		Int("pages", stats.pages).
		Dur("duration", time.Since(start)).
		Msg("playback done")
	return nil
}

// playbackApply writes every record into its existing target.
func (b *buffer) playbackApply(ctx context.Context, store Store, stats *playbackStats) error {
	targets, recs := b.materialize()
	stats.records = len(targets)
	order := ranksort.ByInt32(targets)

	// Resolve targets in sort key order. Nothing touches the store until every target is checked.
	entities := make([]ecs.Entity, 0, len(order))
	payloads := make([][]uint64, 0, len(order))
	var holes []int // Positions in entities waiting for a substitute
	for _, i := range order {
		t := targets[i]
		if !store.Exists(t.entity) {
			switch b.opts.policy {
			case PolicyDrop:
				stats.dropped++
				continue
			case PolicyThrow:
				return eris.Wrapf(ErrDestroyedTarget, "target %v, sort key %d", t.entity, t.sortKey)
			case PolicySubstitute:
				holes = append(holes, len(entities))
			}
		}
		entities = append(entities, t.entity)
		payloads = append(payloads, recs[i])
	}

	b.state = StatePlayedBack

	var substitutes []ecs.Entity
	if len(holes) > 0 {
		var err error
		substitutes, err = store.Create(len(holes))
		if err != nil {
			return eris.Wrap(err, "failed to create substitute entities")
		}
		for k, pos := range holes {
			entities[pos] = substitutes[k]
		}
		stats.substituted = len(substitutes)
	}

	if err := b.writeEntities(ctx, store, entities, payloads, stats); err != nil {
		return err
	}

	if len(substitutes) > 0 {
		if err := store.Destroy(substitutes); err != nil {
			return eris.Wrap(err, "failed to destroy substitute entities")
		}
	}
	return nil
}

// writeEntities adds the schema's components to entities and writes payloads[i] into entities[i].
func (b *buffer) writeEntities(
	ctx context.Context, store Store, entities []ecs.Entity, payloads [][]uint64, stats *playbackStats,
) error {
	if len(entities) == 0 {
		return nil
	}
	if set := b.schema.componentSet(); !set.Empty() {
		if err := store.AddComponents(entities, set); err != nil {
			return eris.Wrap(err, "failed to add components")
		}
	}
	if len(b.schema.data) == 0 {
		return nil
	}
	return b.writeBack(ctx, store, entities, payloads, stats)
}

// isNil also catches typed nil pointers wrapped in the interface.
func isNil(store Store) bool {
	if store == nil {
		return true
	}
	v := reflect.ValueOf(store)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
