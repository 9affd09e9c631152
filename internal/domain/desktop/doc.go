// Package desktop holds the window registry and the dispatch protocol that
// mutates it.
//
// State is a value: the Reducer turns (State, Intent) into a new State and
// never touches the old one. Intents form a closed set; the only way to add
// one is inside this package, so the transition switch stays exhaustive.
//
// A Store wraps one State for the lifetime of the process and serializes
// every Dispatch through a single mutex. Surfaces receive the Store by
// reference when they are constructed; there is no package-level instance.
//
// Example Usage:
//
//	store := desktop.NewStore(desktop.NewReducer(desktop.DefaultSettings()))
//	st := store.Dispatch(desktop.Open{App: desktop.AppDescriptor{ID: "notepad", Name: "Notepad"}})
//	store.Dispatch(desktop.Move{ID: st.ActiveWindowID, X: -50, Y: -10}) // y clamps to 0
package desktop
