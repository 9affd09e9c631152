package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

var (
	ErrUnknownApp      = errors.New("unknown app")
	ErrDuplicateApp    = errors.New("duplicate app id")
	ErrInvalidApp      = errors.New("invalid app entry")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category groups apps in the launcher grid
type Category string

const (
	CategorySystem       Category = "system"
	CategoryProductivity Category = "productivity"
	CategoryDeveloper    Category = "developer"
	CategoryMedia        Category = "media"
	CategoryGames        Category = "games"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{CategorySystem, CategoryProductivity, CategoryDeveloper, CategoryMedia, CategoryGames}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// App is one launchable entry
type App struct {
	ID       string                 `json:"id" yaml:"id" toml:"id"`
	Name     string                 `json:"name" yaml:"name" toml:"name"`
	Icon     string                 `json:"icon" yaml:"icon" toml:"icon"`
	View     string                 `json:"view" yaml:"view" toml:"view"`
	Category Category               `json:"category" yaml:"category" toml:"category"`
	Props    map[string]interface{} `json:"props,omitempty" yaml:"props,omitempty" toml:"props,omitempty"`
}

// Validate checks that the entry is usable
func (a App) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidApp)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidApp, a.ID)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: %s has category %q", ErrUnknownCategory, a.ID, a.Category)
	}
	return nil
}

// Descriptor produces the argument for desktop.Open
func (a App) Descriptor() desktop.AppDescriptor {
	view := a.View
	if view == "" {
		view = a.ID
	}
	return desktop.AppDescriptor{
		ID:    a.ID,
		Name:  a.Name,
		View:  view,
		Props: a.Props,
	}
}

// Catalog is an immutable, ordered set of apps
type Catalog struct {
	apps  []App
	index map[string]int
}

// New builds a catalog, rejecting invalid and duplicate entries
func New(apps ...App) (*Catalog, error) {
	c := &Catalog{
		apps:  make([]App, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for _, a := range apps {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateApp, a.ID)
		}
		if a.View == "" {
			a.View = a.ID
		}
		c.index[a.ID] = len(c.apps)
		c.apps = append(c.apps, a)
	}
	return c, nil
}

// With returns a new catalog holding c's apps followed by extra
func (c *Catalog) With(extra ...App) (*Catalog, error) {
	all := make([]App, 0, len(c.apps)+len(extra))
	all = append(all, c.apps...)
	all = append(all, extra...)
	return New(all...)
}

// Get returns the app with the given id
func (c *Catalog) Get(appID string) (App, bool) {
	i, ok := c.index[appID]
	if !ok {
		return App{}, false
	}
	return c.apps[i], true
}

// Lookup is Get with an error for unknown ids
func (c *Catalog) Lookup(appID string) (App, error) {
	a, ok := c.Get(appID)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", ErrUnknownApp, appID)
	}
	return a, nil
}

// List returns apps in catalog order, optionally filtered by category
func (c *Catalog) List(category *Category) []App {
	out := make([]App, 0, len(c.apps))
	for _, a := range c.apps {
		if category == nil || a.Category == *category {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of apps
func (c *Catalog) Len() int {
	return len(c.apps)
}

// Stats counts apps per category
func (c *Catalog) Stats() map[Category]int {
	stats := make(map[Category]int)
	for _, a := range c.apps {
		stats[a.Category]++
	}
	return stats
}

// IDs returns every app id, sorted
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.apps))
	for _, a := range c.apps {
		ids = append(ids, a.ID)
	}
	sort.Strings(ids)
	return ids
}
