package scene

import (
	"context"
	"time"

	"github.com/san-kum/photosim/internal/widget"
)

// Frontend is a window or terminal the scene is shown in.
type Frontend interface {
	Poll() widget.Input
	BeginFrame() widget.Surface
	EndFrame() error
}

// Paced front ends block in EndFrame until the next frame is due, so the
// loop does not wait on its own ticker.
type Paced interface {
	Paced() bool
}

type Loop struct {
	Scene *Scene

	// OnFrame, when set, sees each step's error. Returning an error stops
	// the loop with it; by default step errors are logged and the loop goes on.
	OnFrame func(err error) error
}

func NewLoop(s *Scene) *Loop { return &Loop{Scene: s} }

// Run drives the scene at the configured tick rate until quit, a front
// end error or cancellation.
func (l *Loop) Run(ctx context.Context, fe Frontend) error {
	s := l.Scene
	var tick <-chan time.Time
	if p, ok := fe.(Paced); !ok || !p.Paced() {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / s.cfg.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		quit, err := s.Step(fe.Poll())
		if err != nil {
			if l.OnFrame != nil {
				if err := l.OnFrame(err); err != nil {
					return err
				}
			} else {
				s.fail("step", err)
			}
		}
		if quit {
			return nil
		}

		s.Draw(fe.BeginFrame())
		if err := fe.EndFrame(); err != nil {
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}
