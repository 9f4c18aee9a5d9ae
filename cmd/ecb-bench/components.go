package main

type Position struct{ X, Y, Z float32 }

func (Position) Name() string { return "position" }

type Velocity struct{ X, Y, Z float32 }

func (Velocity) Name() string { return "velocity" }

// Spawned marks entities created by an instantiate round.
type Spawned struct{}

func (Spawned) Name() string { return "spawned" }

// Step is the payload of the integrate command.
type Step struct{ Dt float32 }

func motion(i int) (Position, Velocity) {
	f := float32(i)
	return Position{X: f, Y: f * 0.5, Z: -f}, Velocity{X: 1, Y: 0.5, Z: -1}
}
