// Package id provides centralized ID generation for the desktop.
//
// Every identifier handed out by the desktop is a ULID behind a short,
// readable prefix:
//   - Windows: <app id>_<ULID>, e.g. calculator_01HV6...
//   - Notifications: note_<ULID>
//   - Requests: req_<ULID>
//
// A Generator draws from monotonic entropy, so two IDs produced within the
// same millisecond still sort and never collide.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Type-Safe ID Wrappers
// ============================================================================

// WindowID identifies an open desktop window
type WindowID string

// NotificationID identifies a desktop notification
type NotificationID string

// RequestID identifies an API request
type RequestID string

// ============================================================================
// ID Prefixes
// ============================================================================

const (
	WindowPrefix       = "win"
	NotificationPrefix = "note"
	RequestPrefix      = "req"
)

// ============================================================================
// ULID Generator
// ============================================================================

// Generator generates ULIDs with optional prefixes
type Generator struct {
	mu      sync.Mutex // Protects entropy and now
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
// and clock. Useful for testing with deterministic IDs.
func NewGeneratorWithEntropy(entropy io.Reader, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		entropy: entropy,
		now:     now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewWindowID generates a window ID scoped to the app that opened it.
// An empty app id falls back to the generic window prefix.
func (g *Generator) NewWindowID(appID string) WindowID {
	if appID == "" {
		appID = WindowPrefix
	}
	return WindowID(g.GenerateWithPrefix(appID))
}

// NewNotificationID generates a notification ID
func (g *Generator) NewNotificationID() NotificationID {
	return NotificationID(g.GenerateWithPrefix(NotificationPrefix))
}

// NewRequestID generates a new request ID from the default generator
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// ============================================================================
// Conversion and Validation
// ============================================================================

func (id WindowID) String() string       { return string(id) }
func (id NotificationID) String() string { return string(id) }
func (id RequestID) String() string      { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Split separates a prefixed ID into its prefix and ULID parts. App ids may
// themselves contain underscores, so the split happens at the last one.
func Split(prefixed string) (prefix string, raw string, ok bool) {
	i := strings.LastIndexByte(prefixed, '_')
	if i <= 0 || i == len(prefixed)-1 {
		return "", "", false
	}
	return prefixed[:i], prefixed[i+1:], IsValid(prefixed[i+1:])
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
