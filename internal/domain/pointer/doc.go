/*
Package pointer turns raw pointer events into move and resize intents.

# Overview

A Bus stands for one pointing device. Listeners attach to it only while a
window is being dragged or resized and are released when the interaction
ends, whichever way it ends: pointer-up anywhere on the desktop, Cancel,
the window closing, or the device going away.

Each window gets its own Controller, a small state machine:

	Idle --title bar down--> Dragging --up/cancel--> Idle
	Idle --resize handle down--> Resizing --up/cancel--> Idle

A Tracker owns the controllers for one device and routes events to them.

# Usage

	bus := pointer.NewBus()
	tracker := pointer.NewTracker(store, bus, pointer.DefaultOptions())
	tracker.Down(windowID, pointer.RegionTitleBar, pointer.Point{X: 410, Y: 130})
	tracker.Move(pointer.Point{X: 520, Y: 160}) // dispatches desktop.Move
	tracker.Up(pointer.Point{X: 520, Y: 160})   // detaches the listener
*/
package pointer
