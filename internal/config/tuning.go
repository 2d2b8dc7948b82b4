package config

import "sync"

const (
	MinFollowLerp = 1.0
	MaxFollowLerp = 60.0
)

// PickupSettings holds the tunables of dragged props
type PickupSettings struct {
	mu         sync.RWMutex
	followLerp float32
	useRange   float32
}

var globalPickupSettings = &PickupSettings{
	followLerp: 18, // per second
	useRange:   3,
}

// GetFollowLerp returns how fast a held prop chases the cursor
func GetFollowLerp() float32 {
	globalPickupSettings.mu.RLock()
	defer globalPickupSettings.mu.RUnlock()
	return globalPickupSettings.followLerp
}

// SetFollowLerp sets the follow rate
func SetFollowLerp(v float32) {
	globalPickupSettings.mu.Lock()
	defer globalPickupSettings.mu.Unlock()

	if v < MinFollowLerp {
		v = MinFollowLerp
	}
	if v > MaxFollowLerp {
		v = MaxFollowLerp
	}

	globalPickupSettings.followLerp = v
}

// GetUseRange returns how far away a container can be opened
func GetUseRange() float32 {
	globalPickupSettings.mu.RLock()
	defer globalPickupSettings.mu.RUnlock()
	return globalPickupSettings.useRange
}

func SetUseRange(v float32) {
	globalPickupSettings.mu.Lock()
	defer globalPickupSettings.mu.Unlock()
	if v <= 0 {
		v = 3
	}
	globalPickupSettings.useRange = v
}
