package surface

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Mount is a live content instance inside a window
type Mount struct {
	WindowID  string    `json:"window_id"`
	View      string    `json:"view"`
	Instance  string    `json:"instance"`
	MountedAt time.Time `json:"mounted_at"`
}

// Changes reports what a Sync mounted and unmounted
type Changes struct {
	Mounted   []Mount
	Unmounted []Mount
}

// Empty reports whether nothing changed
func (c Changes) Empty() bool {
	return len(c.Mounted) == 0 && len(c.Unmounted) == 0
}

// Mounter keeps exactly one content instance per registered window.
// Minimizing a window leaves its content mounted.
type Mounter struct {
	mu      sync.Mutex
	mounts  map[string]Mount
	version uint64
	now     func() time.Time
}

// NewMounter creates an empty mounter
func NewMounter() *Mounter {
	return &Mounter{
		mounts: make(map[string]Mount),
		now:    time.Now,
	}
}

// Sync mounts content for new windows and unmounts content for windows that
// are no longer registered. States older than the last one synced are
// ignored, so a caller holding a stale snapshot cannot unmount a live window.
func (m *Mounter) Sync(s desktop.State) Changes {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ch Changes
	if s.Version < m.version {
		return ch
	}
	m.version = s.Version
	for wid, w := range s.Windows {
		if _, ok := m.mounts[wid]; ok {
			continue
		}
		mt := Mount{
			WindowID:  wid,
			View:      w.Content.View,
			Instance:  uuid.New().String(),
			MountedAt: m.now(),
		}
		m.mounts[wid] = mt
		ch.Mounted = append(ch.Mounted, mt)
	}
	for wid, mt := range m.mounts {
		if _, ok := s.Windows[wid]; !ok {
			delete(m.mounts, wid)
			ch.Unmounted = append(ch.Unmounted, mt)
		}
	}
	return ch
}

// Get returns the mount for a window
func (m *Mounter) Get(windowID string) (Mount, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.mounts[windowID]
	return mt, ok
}

// Len returns the number of live mounts
func (m *Mounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mounts)
}
