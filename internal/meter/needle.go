package meter

import (
	"math"
	"math/rand"
	"time"

	"emf-meter.klederson.com/internal/config"
)

// Needle simulates an analog meter needle as a spring-mass system, advanced
// once per animation frame. Integration is explicit Euler, which is stable
// for the small, regular deltaTime of a ~60 Hz frame loop; large steps can
// overshoot. That behavior is part of the meter feel and is kept as is.
type Needle struct {
	Damping        float64
	SpringConstant float64
	Mass           float64
	NoiseFactor    float64 // Jitter amplitude relative to |velocity|

	position float64 // [0,1]
	velocity float64 // position units per second
	rng      *rand.Rand
}

// NewNeedle creates a needle at rest with the default physics parameters.
// seed selects the jitter sequence; 0 seeds from the clock.
func NewNeedle(seed int64) *Needle {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Needle{
		Damping:        config.NeedleDamping,
		SpringConstant: config.NeedleSpringConstant,
		Mass:           config.NeedleMass,
		NoiseFactor:    config.NeedleNoiseFactor,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// Update advances the simulation by deltaTime seconds toward targetPosition
// (clamped to [0,1]) and returns the new needle position.
func (n *Needle) Update(targetPosition, deltaTime float64) float64 {
	target := clamp01(targetPosition)

	displacement := target - n.position
	springForce := n.SpringConstant * displacement
	dampingForce := n.Damping * n.velocity
	acceleration := (springForce - dampingForce) / n.Mass

	n.velocity += acceleration * deltaTime
	n.position += n.velocity * deltaTime

	// Jitter only while the needle is visibly moving.
	if math.Abs(n.velocity) > 0.01 {
		n.position += (n.rng.Float64() - 0.5) * n.NoiseFactor * math.Abs(n.velocity)
	}

	n.position = clamp01(n.position)
	return n.position
}

// Reset returns the needle to rest at zero.
func (n *Needle) Reset() {
	n.position = 0
	n.velocity = 0
}

// SetPosition jumps the needle instantly, bypassing physics. Used for
// unit or display-mode switches.
func (n *Needle) SetPosition(p float64) {
	n.position = clamp01(p)
	n.velocity = 0
}

// Position returns the current needle position in [0,1].
func (n *Needle) Position() float64 {
	return n.position
}

// Velocity returns the current needle velocity.
func (n *Needle) Velocity() float64 {
	return n.velocity
}
