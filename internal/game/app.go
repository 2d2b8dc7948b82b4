package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	standardInput "github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"
)

// FixedStep is the frame time used while replaying a script.
const FixedStep = 1.0 / 60

type App struct {
	inputManager *standardInput.InputManager
	session      *Session
	script       *standardInput.Script
	log          *slog.Logger

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	frame      int
}

// NewApp runs s driven by im. A non-nil script is replayed with a fixed time step.
func NewApp(s *Session, im *standardInput.InputManager, script *standardInput.Script, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		inputManager: im,
		session:      s,
		script:       script,
		log:          logger,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}
}

func (a *App) Frame() int { return a.frame }

// Run ticks until ctx is done or maxFrames frames ran. With a script and no
// frame limit, it stops one frame after the last step.
func (a *App) Run(ctx context.Context, maxFrames int) error {
	if maxFrames <= 0 && a.script != nil {
		maxFrames = a.script.LastFrame() + 2
	}
	for maxFrames <= 0 || a.frame < maxFrames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a.tick()
		if a.script == nil {
			a.fpsLimiter.Wait(a.session.Paused())
		}
	}
	a.log.Info("frames done", "frames", a.frame)
	return nil
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()

	dt := FixedStep
	if a.script == nil {
		now := time.Now()
		dt = now.Sub(a.lastTime).Seconds()
		a.lastTime = now
	} else {
		for _, st := range a.script.StepsAt(a.frame) {
			a.session.HandleStep(st, a.inputManager)
		}
	}

	a.session.Update(dt, a.inputManager)

	processing := time.Since(startTick)
	if processing > time.Duration(config.GetSlowFrameMs())*time.Millisecond {
		a.log.Warn("slow frame", "frame", a.frame, "took", processing, "top", profiling.TopN(5))
	} else if config.GetProfiling() {
		a.log.Debug("frame", "frame", a.frame, "took", processing, "top", profiling.Attrs(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.frame++
}
