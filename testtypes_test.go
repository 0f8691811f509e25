package silo

// Fixture component types shared across this package's test files, mirroring
// the small Position/Velocity-style fixtures the teacher's own tests use.

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	HP int
}

type Tag struct{}
