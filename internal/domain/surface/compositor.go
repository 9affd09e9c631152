package surface

import (
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Compositor renders desktop state into scenes
type Compositor struct {
	mounter *Mounter
}

// NewCompositor creates a compositor. A nil mounter gets a fresh one.
func NewCompositor(mounter *Mounter) *Compositor {
	if mounter == nil {
		mounter = NewMounter()
	}
	return &Compositor{mounter: mounter}
}

// Mounter returns the content mounter behind this compositor
func (c *Compositor) Mounter() *Mounter {
	return c.mounter
}

// Compose builds the scene for s. Minimized windows stay mounted but are not
// drawn; maximized windows fill the work area while their stored geometry
// is left alone.
func (c *Compositor) Compose(s desktop.State, vp Viewport) Scene {
	c.mounter.Sync(s)

	stacked := s.Stacked()
	views := make([]WindowView, 0, len(stacked))
	for _, w := range stacked {
		if w.Minimized {
			continue
		}
		views = append(views, c.window(s, w, vp))
	}

	notes := s.Notifications
	if notes == nil {
		notes = []desktop.Notification{}
	}
	return Scene{
		Version:       s.Version,
		Theme:         s.Theme,
		Viewport:      vp,
		Windows:       views,
		Taskbar:       Bar(s),
		Notifications: notes,
	}
}

func (c *Compositor) window(s desktop.State, w desktop.Window, vp Viewport) WindowView {
	frame := Rect{X: w.Position.X, Y: w.Position.Y, Width: w.Size.Width, Height: w.Size.Height}
	if w.Maximized {
		frame = vp.Work()
	}

	v := WindowView{
		ID:         w.ID,
		AppID:      w.AppID,
		Title:      w.Title,
		View:       w.Content.View,
		Props:      w.Content.Props,
		Frame:      frame,
		StackOrder: w.StackOrder,
		Active:     s.ActiveWindowID == w.ID,
		Maximized:  w.Maximized,
		Resizable:  !w.Maximized,
		Controls:   Controls(),
	}
	if mt, ok := c.mounter.Get(w.ID); ok {
		v.Instance = mt.Instance
	}
	return v
}
