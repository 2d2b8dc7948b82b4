package config

import "sync"

const (
	MinFPSLimit = 10
	MaxFPSLimit = 1000
)

// FrameSettings holds frame loop configuration
type FrameSettings struct {
	mu          sync.RWMutex
	fpsLimit    int // 0 means unlimited
	slowFrameMs int
	profiling   bool
}

var globalFrameSettings = &FrameSettings{
	fpsLimit:    60, // default value
	slowFrameMs: 50,
}

// GetFPSLimit returns the frame rate cap, 0 when unlimited
func GetFPSLimit() int {
	globalFrameSettings.mu.RLock()
	defer globalFrameSettings.mu.RUnlock()
	return globalFrameSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Non-positive values remove the cap.
func SetFPSLimit(limit int) {
	globalFrameSettings.mu.Lock()
	defer globalFrameSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit <= 0 {
		limit = 0
	} else if limit < MinFPSLimit {
		limit = MinFPSLimit
	} else if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}

	globalFrameSettings.fpsLimit = limit
}

// GetSlowFrameMs returns the frame time above which a frame is reported as slow
func GetSlowFrameMs() int {
	globalFrameSettings.mu.RLock()
	defer globalFrameSettings.mu.RUnlock()
	return globalFrameSettings.slowFrameMs
}

func SetSlowFrameMs(ms int) {
	globalFrameSettings.mu.Lock()
	defer globalFrameSettings.mu.Unlock()
	if ms < 1 {
		ms = 1
	}
	globalFrameSettings.slowFrameMs = ms
}

// GetProfiling returns whether per-frame timings are reported
func GetProfiling() bool {
	globalFrameSettings.mu.RLock()
	defer globalFrameSettings.mu.RUnlock()
	return globalFrameSettings.profiling
}

func SetProfiling(enabled bool) {
	globalFrameSettings.mu.Lock()
	defer globalFrameSettings.mu.Unlock()
	globalFrameSettings.profiling = enabled
}
