package desktop

// Kind names an intent for logs, metrics and the wire protocol
type Kind string

const (
	KindOpen        Kind = "open"
	KindClose       Kind = "close"
	KindMinimize    Kind = "minimize"
	KindMaximize    Kind = "maximize"
	KindFocus       Kind = "focus"
	KindMove        Kind = "move"
	KindResize      Kind = "resize"
	KindToggleTheme Kind = "toggle_theme"
	KindTick        Kind = "tick"
	KindNotify      Kind = "notify"
	KindDismiss     Kind = "dismiss"
)

// Kinds lists every intent kind
func Kinds() []Kind {
	return []Kind{
		KindOpen, KindClose, KindMinimize, KindMaximize, KindFocus,
		KindMove, KindResize, KindToggleTheme, KindTick, KindNotify, KindDismiss,
	}
}

// Intent is a request to change the registry. The set is closed: the
// unexported marker keeps other packages from adding variants.
type Intent interface {
	Kind() Kind
	intent()
}

// AppDescriptor is what a launcher hands to Open
type AppDescriptor struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	View  string                 `json:"view"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Overrides pins fields of a window being opened. Nil fields keep the
// derived value. The id and stack order are never overridable.
type Overrides struct {
	Title     *string                `json:"title,omitempty"`
	Position  *Point                 `json:"position,omitempty"`
	Size      *Size                  `json:"size,omitempty"`
	Minimized *bool                  `json:"minimized,omitempty"`
	Maximized *bool                  `json:"maximized,omitempty"`
	Props     map[string]interface{} `json:"props,omitempty"`
}

// Open creates a window for App and makes it active
type Open struct {
	App       AppDescriptor
	Overrides *Overrides
}

// Close removes a window
type Close struct{ ID string }

// Minimize toggles a window's minimized flag
type Minimize struct{ ID string }

// Maximize toggles a window's maximized flag
type Maximize struct{ ID string }

// Focus activates a window and raises it to the top
type Focus struct{ ID string }

// Move sets a window's origin
type Move struct {
	ID   string
	X, Y int
}

// Resize sets a window's size
type Resize struct {
	ID            string
	Width, Height int
}

// ToggleTheme flips between light and dark
type ToggleTheme struct{}

// Tick refreshes the clock display
type Tick struct{ Display string }

// Notify posts a notification
type Notify struct {
	Message string
	Level   Level
}

// Dismiss removes a notification
type Dismiss struct{ ID string }

func (Open) Kind() Kind        { return KindOpen }
func (Close) Kind() Kind       { return KindClose }
func (Minimize) Kind() Kind    { return KindMinimize }
func (Maximize) Kind() Kind    { return KindMaximize }
func (Focus) Kind() Kind       { return KindFocus }
func (Move) Kind() Kind        { return KindMove }
func (Resize) Kind() Kind      { return KindResize }
func (ToggleTheme) Kind() Kind { return KindToggleTheme }
func (Tick) Kind() Kind        { return KindTick }
func (Notify) Kind() Kind      { return KindNotify }
func (Dismiss) Kind() Kind     { return KindDismiss }

func (Open) intent()        {}
func (Close) intent()       {}
func (Minimize) intent()    {}
func (Maximize) intent()    {}
func (Focus) intent()       {}
func (Move) intent()        {}
func (Resize) intent()      {}
func (ToggleTheme) intent() {}
func (Tick) intent()        {}
func (Notify) intent()      {}
func (Dismiss) intent()     {}

// Target returns the window id an intent addresses, or "" for
// desktop-wide intents
func Target(in Intent) string {
	switch v := in.(type) {
	case Close:
		return v.ID
	case Minimize:
		return v.ID
	case Maximize:
		return v.ID
	case Focus:
		return v.ID
	case Move:
		return v.ID
	case Resize:
		return v.ID
	}
	return ""
}
