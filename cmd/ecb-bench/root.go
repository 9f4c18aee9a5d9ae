package main

import (
	"context"
	"time"

	"github.com/argus-labs/ecb/pkg/ecb"
	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/jobs"
	"github.com/argus-labs/ecb/pkg/statsd"
	"github.com/argus-labs/ecb/pkg/telemetry"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type benchFlags struct {
	entities   int
	commands   int
	workers    int
	rounds     int
	variant    string
	profile    string
	profileDir string
}

func newRootCmd() *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:          "ecb-bench",
		Short:        "Benchmark command buffer recording and playback",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().IntVar(&f.entities, "entities", 100_000, "number of target entities or prefabs")
	cmd.Flags().IntVar(&f.commands, "commands", 1_000_000, "number of recorded commands per round")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "recording workers, 0 means one per CPU")
	cmd.Flags().IntVar(&f.rounds, "rounds", 3, "number of record and playback rounds")
	cmd.Flags().StringVar(&f.variant, "variant", "apply", "buffer variant: apply or instantiate")
	cmd.Flags().StringVar(&f.profile, "profile", "", "profile to capture: cpu, mem or empty for none")
	cmd.Flags().StringVar(&f.profileDir, "profile-dir", ".", "directory profiles are written to")
	return cmd
}

func run(ctx context.Context, f benchFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.entities <= 0 || f.commands < 0 || f.rounds <= 0 {
		return eris.New("entities and rounds must be positive, commands non-negative")
	}

	tel, err := telemetry.New(telemetry.Options{ServiceName: "ecb-bench"})
	if err != nil {
		return eris.Wrap(err, "failed to set up telemetry")
	}
	defer func() {
		if err := tel.Shutdown(ctx); err != nil {
			tel.Logger.Warn().Err(err).Msg("failed to shut down telemetry")
		}
	}()
	telemetry.SetGlobalLogger(tel.Logger)
	logger := tel.GetLogger("bench")

	statsdCfg, err := statsd.LoadConfig()
	if err != nil {
		return err
	}
	if statsdCfg.Address != "" {
		if err := statsd.Init(statsdCfg); err != nil {
			return err
		}
		defer func() {
			if err := statsd.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close statsd client")
			}
		}()
	}

	cfg, err := ecb.LoadConfig()
	if err != nil {
		return err
	}

	switch f.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(f.profileDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(f.profileDir), profile.Quiet).Stop()
	default:
		return eris.Errorf("unknown profile %q (must be 'cpu' or 'mem')", f.profile)
	}

	workers := jobs.Workers(f.workers)
	opts := []ecb.Option{
		ecb.WithConfig(cfg),
		ecb.WithShards(workers),
		ecb.WithLogger(tel.GetLogger("ecb")),
		ecb.WithTracer(tel.Tracer),
	}

	for round := range f.rounds {
		var r roundResult
		switch f.variant {
		case "apply":
			r, err = benchApply(ctx, f, workers, opts)
		case "instantiate":
			r, err = benchInstantiate(ctx, f, workers, opts)
		default:
			return eris.Errorf("unknown variant %q (must be 'apply' or 'instantiate')", f.variant)
		}
		if err != nil {
			return eris.Wrapf(err, "round %d failed", round)
		}
		r.log(logger.Info(), round, f)
	}
	return nil
}

type roundResult struct {
	record   time.Duration
	playback time.Duration
	alive    int
}

func (r roundResult) log(e *zerolog.Event, round int, f benchFlags) {
	e.Int("round", round).
		Str("variant", f.variant).
		Int("commands", f.commands).
		Dur("record", r.record).
		Dur("playback", r.playback).
		Int("alive", r.alive).
		Msg("round done")
}

func benchApply(ctx context.Context, f benchFlags, workers int, opts []ecb.Option) (roundResult, error) {
	var r roundResult
	w := ecs.NewWorld(ecs.NewRegistry())
	targets, err := w.Create(f.entities)
	if err != nil {
		return r, err
	}

	buf, err := ecb.NewApplyBuffer2[Position, Velocity](w.Registry(), opts...)
	if err != nil {
		return r, err
	}
	defer buf.Dispose()

	writer := buf.AsParallelWriter()
	start := time.Now()
	err = jobs.ParallelFor(ctx, f.commands, workers, func(_ context.Context, worker, i int) error {
		pos, vel := motion(i)
		return writer.AddWithKey(worker, int32(i), targets[i%len(targets)], pos, vel) //nolint:gosec // it's ok
	})
	if err != nil {
		return r, err
	}
	r.record = time.Since(start)

	start = time.Now()
	if err := buf.Playback(ctx, w); err != nil {
		return r, err
	}
	r.playback = time.Since(start)
	r.alive = w.Len()
	return r, nil
}

func benchInstantiate(ctx context.Context, f benchFlags, workers int, opts []ecb.Option) (roundResult, error) {
	var r roundResult
	w := ecs.NewWorld(ecs.NewRegistry())
	prefabs, err := w.Create(f.entities)
	if err != nil {
		return r, err
	}

	integrate := func(_ context.Context, _ ecb.Store, es []ecs.Entity, steps []*Step) error {
		for i, e := range es {
			pos, err := ecs.Get[Position](w, e)
			if err != nil {
				return err
			}
			vel, err := ecs.Get[Velocity](w, e)
			if err != nil {
				return err
			}
			dt := steps[i].Dt
			pos.X, pos.Y, pos.Z = pos.X+vel.X*dt, pos.Y+vel.Y*dt, pos.Z+vel.Z*dt
			if err := ecs.Set(w, e, pos); err != nil {
				return err
			}
		}
		return nil
	}

	buf, err := ecb.NewInstantiateBuffer3(w.Registry(),
		ecb.Data[Position](), ecb.Data[Velocity](), ecb.Command("integrate", integrate), opts...)
	if err != nil {
		return r, err
	}
	defer buf.Dispose()
	if err := ecb.AddTag[Spawned](buf); err != nil {
		return r, err
	}

	writer := buf.AsParallelWriter()
	start := time.Now()
	err = jobs.ParallelFor(ctx, f.commands, workers, func(_ context.Context, worker, i int) error {
		pos, vel := motion(i)
		return writer.Add(worker, prefabs[i%len(prefabs)], pos, vel, Step{Dt: 1.0 / 60})
	})
	if err != nil {
		return r, err
	}
	r.record = time.Since(start)

	start = time.Now()
	if err := buf.Playback(ctx, w); err != nil {
		return r, err
	}
	r.playback = time.Since(start)
	r.alive = w.Len()
	return r, nil
}
