package ecb

import (
	"context"

	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/ranksort"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	ddotel "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/opentelemetry"
	ddtracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// prefabGroup is every record that instantiates the same prefab.
type prefabGroup struct {
	prefab  ecs.Entity
	members []int // Positions in playback order
}

// playbackInstantiate clones one entity per record from its prefab, writes the record into the
// clone, then runs the command slots over every clone.
func (b *buffer) playbackInstantiate(ctx context.Context, store Store, stats *playbackStats) error {
	targets, recs := b.materialize()
	stats.records = len(targets)
	order := ranksort.ByInt32(targets)

	// Group by prefab in order of first appearance. All prefabs are checked before anything is
	// instantiated.
	groups := make([]prefabGroup, 0)
	byPrefab := make(map[ecs.Entity]int)
	payloads := make([][]uint64, len(order))
	for pos, i := range order {
		prefab := targets[i].entity
		g, ok := byPrefab[prefab]
		if !ok {
			if !store.Exists(prefab) {
				return eris.Wrapf(ErrInvalidTarget, "prefab %v does not exist", prefab)
			}
			g = len(groups)
			byPrefab[prefab] = g
			groups = append(groups, prefabGroup{prefab: prefab})
		}
		groups[g].members = append(groups[g].members, pos)
		payloads[pos] = recs[i]
	}
	stats.prefabs = len(groups)

	b.state = StatePlayedBack

	entities := make([]ecs.Entity, len(order))
	for _, g := range groups {
		primary, err := store.Instantiate(g.prefab)
		if err != nil {
			return eris.Wrapf(err, "failed to instantiate prefab %v", g.prefab)
		}
		entities[g.members[0]] = primary

		rest := len(g.members) - 1
		if rest == 0 {
			continue
		}
		clones, err := store.InstantiateBatch(primary, rest)
		if err != nil {
			return eris.Wrapf(err, "failed to instantiate %d copies of prefab %v", rest, g.prefab)
		}
		if len(clones) != rest {
			return eris.Errorf("store returned %d copies of prefab %v, want %d", len(clones), g.prefab, rest)
		}
		for k, e := range clones {
			entities[g.members[k+1]] = e
		}
	}

	if err := b.writeEntities(ctx, store, entities, payloads, stats); err != nil {
		return err
	}
	return b.runCommands(ctx, store, entities, payloads)
}

// runCommands calls every command slot once, in registration order.
func (b *buffer) runCommands(ctx context.Context, store Store, entities []ecs.Entity, payloads [][]uint64) error {
	if len(entities) == 0 {
		return nil
	}
	for _, ci := range b.schema.commands {
		sl := &b.schema.slots[ci]
		err := func() error {
			ctx, span := b.opts.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "ecb.command",
				trace.WithAttributes(attribute.String("ecb.command", sl.name)))
			defer span.End()
			return sl.run(ctx, store, entities, payloads, sl.word)
		}()
		if err != nil {
			return eris.Wrapf(err, "command %s failed", sl.name)
		}
	}
	return nil
}
