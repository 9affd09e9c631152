// Package surface turns desktop state into what a renderer draws and turns
// presses on chrome, the launcher grid and the taskbar into intents.
//
// A Compositor builds a Scene for a viewport. It never writes to the store;
// the Chrome, Launcher and Taskbar surfaces are the only writers here and
// they go through desktop.Store.Dispatch like everything else.
//
// Example:
//
//	store := desktop.NewStore(desktop.NewReducer(desktop.DefaultSettings()))
//	launcher := surface.NewLauncher(store, catalog.Default())
//	compositor := surface.NewCompositor(surface.NewMounter())
//
//	launcher.Launch("terminal", nil)
//	scene := compositor.Compose(store.Snapshot(), surface.DefaultViewport())
package surface
