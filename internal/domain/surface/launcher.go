package surface

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/skydesk/internal/domain/catalog"
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// ErrNotLaunched is returned when the store did not open a window, which
// happens once it has been closed
var ErrNotLaunched = errors.New("window not opened")

// Group is one section of the app grid
type Group struct {
	Category catalog.Category `json:"category"`
	Apps     []catalog.App    `json:"apps"`
}

// Launcher is the app grid
type Launcher struct {
	store   *desktop.Store
	catalog *catalog.Catalog
}

// NewLauncher creates a launcher over cat
func NewLauncher(store *desktop.Store, cat *catalog.Catalog) *Launcher {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Launcher{
		store:   desktop.MustStore(store, "launcher"),
		catalog: cat,
	}
}

// Catalog returns the launcher's catalog
func (l *Launcher) Catalog() *catalog.Catalog {
	return l.catalog
}

// Apps lists launchable apps, optionally limited to one category
func (l *Launcher) Apps(category *catalog.Category) []catalog.App {
	return l.catalog.List(category)
}

// Grid groups apps by category. Empty categories are left out.
func (l *Launcher) Grid() []Group {
	var groups []Group
	for _, cat := range catalog.Categories() {
		cat := cat
		if apps := l.catalog.List(&cat); len(apps) > 0 {
			groups = append(groups, Group{Category: cat, Apps: apps})
		}
	}
	return groups
}

// Launch opens a window for appID and returns it
func (l *Launcher) Launch(appID string, overrides *desktop.Overrides) (desktop.Window, error) {
	app, err := l.catalog.Lookup(appID)
	if err != nil {
		return desktop.Window{}, err
	}

	s, changed := l.store.DispatchChanged(desktop.Open{App: app.Descriptor(), Overrides: overrides})
	if !changed {
		return desktop.Window{}, fmt.Errorf("%w: %s", ErrNotLaunched, appID)
	}
	// Open always takes the next stack order, so the new window is the one
	// holding the counter in the state this dispatch produced.
	for _, w := range s.Windows {
		if w.StackOrder == s.StackCounter {
			return w, nil
		}
	}
	return desktop.Window{}, fmt.Errorf("%w: %s", ErrNotLaunched, appID)
}
