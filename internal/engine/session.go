// Package engine owns the ordered screen list and its layout lifecycle:
// adding, updating, and deleting screens, compacting IDs, and recomputing
// every derived resolution whenever the screens or the global parameters
// change.
package engine

import (
	"fmt"

	"github.com/piwi3910/WallSplit/internal/model"
)

// Session is the single owner of the mutable screen list and the
// GlobalParameters. All operations are synchronous and validate their input
// before mutating anything: an invalid update leaves the prior valid state
// fully intact.
type Session struct {
	params  model.GlobalParameters
	screens []*model.ScreenConfig
}

// NewSession creates an empty session with the given parameters.
func NewSession(params model.GlobalParameters) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Session{params: params}, nil
}

// Params returns the current global parameters.
func (s *Session) Params() model.GlobalParameters {
	return s.params
}

// Screens returns the screen list in display order. Index equals screen ID.
func (s *Session) Screens() []*model.ScreenConfig {
	return s.screens
}

// Count returns the number of configured screens.
func (s *Session) Count() int {
	return len(s.screens)
}

// Screen looks a screen up by its ID.
func (s *Session) Screen(id int) (*model.ScreenConfig, bool) {
	if id < 0 || id >= len(s.screens) {
		return nil, false
	}
	return s.screens[id], true
}

// AddScreen appends a screen with the next dense ID and default ratio, and
// computes its resolution from the current parameters.
func (s *Session) AddScreen() (*model.ScreenConfig, error) {
	sc := model.NewScreenConfig(len(s.screens))
	if err := sc.ApplyResolution(s.params); err != nil {
		return nil, err
	}
	s.screens = append(s.screens, sc)
	return sc, nil
}

// AddScreenConfig appends a screen with an explicit ratio and position,
// used by layout import. The ratio is validated before the list is touched.
func (s *Session) AddScreenConfig(ratioW, ratioH, x, y int) (*model.ScreenConfig, error) {
	w, h, err := model.ComputeResolution(ratioW, ratioH, s.params)
	if err != nil {
		return nil, err
	}
	sc := model.NewScreenConfig(len(s.screens))
	sc.RatioW, sc.RatioH = ratioW, ratioH
	sc.X, sc.Y = x, y
	sc.Width, sc.Height = w, h
	s.screens = append(s.screens, sc)
	return sc, nil
}

// UpdateScreen applies a new ratio and position to the screen with the given
// ID and recomputes its resolution. An invalid ratio is rejected without
// mutating the screen.
func (s *Session) UpdateScreen(id, ratioW, ratioH, x, y int) error {
	sc, ok := s.Screen(id)
	if !ok {
		return fmt.Errorf("no screen with id %d", id)
	}
	w, h, err := model.ComputeResolution(ratioW, ratioH, s.params)
	if err != nil {
		return err
	}
	sc.RatioW, sc.RatioH = ratioW, ratioH
	sc.X, sc.Y = x, y
	sc.Width, sc.Height = w, h
	return nil
}

// DeleteScreen removes the screen with the given ID, compacts the list so
// IDs stay dense and zero-based, and recomputes all surviving screens.
func (s *Session) DeleteScreen(id int) error {
	if _, ok := s.Screen(id); !ok {
		return fmt.Errorf("no screen with id %d", id)
	}
	s.screens = append(s.screens[:id], s.screens[id+1:]...)
	for i, sc := range s.screens {
		sc.ID = i
	}
	return s.RecalculateAll()
}

// Clear removes every screen.
func (s *Session) Clear() {
	s.screens = nil
}

// SetReference applies a new reference resolution and recomputes every
// screen. Non-positive dimensions are rejected and the prior parameters
// retained.
func (s *Session) SetReference(width, height int) error {
	next := s.params
	next.ReferenceWidth, next.ReferenceHeight = width, height
	return s.setParams(next)
}

// SetScale applies a new scale percentage and recomputes every screen.
func (s *Session) SetScale(percent int) error {
	next := s.params
	next.ScalePercent = percent
	return s.setParams(next)
}

func (s *Session) setParams(next model.GlobalParameters) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.params = next
	return s.RecalculateAll()
}

// RecalculateAll recomputes the derived resolution of every screen in list
// order. All screens in the session hold validated ratios, so this cannot
// partially apply under valid parameters.
func (s *Session) RecalculateAll() error {
	for _, sc := range s.screens {
		if err := sc.ApplyResolution(s.params); err != nil {
			return fmt.Errorf("screen %d: %w", sc.ID, err)
		}
	}
	return nil
}
