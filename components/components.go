// Package components defines ECS components for the aquarium.
package components

import "github.com/pthm-cable/aquarium/jellyfish"

// Position is an entity's scene position.
type Position struct {
	X, Y, Z float32
}

// Scale is an entity's per-axis render scale.
type Scale struct {
	X, Y, Z float32
}

// Jelly ties an entity to its simulated creature.
type Jelly struct {
	Creature *jellyfish.Creature `inspect:"skip"`
	Index    int                 `inspect:"skip"` // position in the configured jelly list
	Name     string              `inspect:"label"`
	Route    string              `inspect:"label"`
	Surfaced int                 `inspect:"label"` // completed surfacing episodes
}

// Swim mirrors the locomotion state of a jelly for display and telemetry.
// It is rewritten every frame by the swim system.
type Swim struct {
	Phase     float32 `inspect:"bar"`
	Speed     float32 `inspect:"bar,max:2"`
	Heading   float32 `inspect:"angle"`
	Pitch     float32 `inspect:"angle"`
	Surfacing bool    `inspect:"bool"`
	Hover     float32 `inspect:"bar"`
	Violation float32 `inspect:"label,fmt:%.3f"` // worst distance constraint error
}

// Bubble holds the fixed parameters of one rising bubble. Height is the
// only integrated state; the XZ wobble is a function of time.
type Bubble struct {
	SpawnX, SpawnZ float32
	Size           float32
	Rise           float32 // units per second
	Height         float32
	WobblePhase    float32
	WobbleFreq     float32
	WobbleAmp      float32
	Color          uint8 // index into the bubble palette
}
