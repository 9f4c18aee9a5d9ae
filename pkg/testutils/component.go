package testutils

// Components are plain data: their bytes are copied verbatim into page storage.

type Position struct{ X, Y, Z float32 }

func (Position) Name() string { return "Position" }

type Velocity struct{ X, Y, Z float32 }

func (Velocity) Name() string { return "Velocity" }

type Health struct{ Value int32 }

func (Health) Name() string { return "Health" }

type Level struct{ Value uint8 }

func (Level) Name() string { return "Level" }

type Stats struct {
	Values  [8]int32
	Counter uint16
}

func (Stats) Name() string { return "Stats" }

type Owner struct{ Index, Generation uint32 }

func (Owner) Name() string { return "Owner" }

// Tags.

type Frozen struct{}

func (Frozen) Name() string { return "Frozen" }

type Spawned struct{}

func (Spawned) Name() string { return "Spawned" }

// Not plain data, registration must fail.

type Named struct{ Label string }

func (Named) Name() string { return "Named" }
