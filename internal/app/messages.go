package app

import "time"

// TickMsg triggers a frame update for needle physics and animation.
type TickMsg time.Time
