package surface

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

var ErrUnknownControl = errors.New("unknown window control")

// Chrome handles presses on title bar buttons
type Chrome struct {
	store *desktop.Store
}

// NewChrome creates the window chrome surface
func NewChrome(store *desktop.Store) *Chrome {
	return &Chrome{store: desktop.MustStore(store, "window chrome")}
}

// PressControl issues the intent behind a title bar button. It reports
// whether the press changed anything; presses on unknown windows do not.
func (c *Chrome) PressControl(windowID string, control Control) (desktop.State, bool, error) {
	in, err := ControlIntent(windowID, control)
	if err != nil {
		return c.store.Snapshot(), false, err
	}
	s, changed := c.store.DispatchChanged(in)
	return s, changed, nil
}

// ControlIntent maps a button to its intent
func ControlIntent(windowID string, control Control) (desktop.Intent, error) {
	switch control {
	case ControlMinimize:
		return desktop.Minimize{ID: windowID}, nil
	case ControlMaximize:
		return desktop.Maximize{ID: windowID}, nil
	case ControlClose:
		return desktop.Close{ID: windowID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownControl, control)
}
