// Command deskctl drives a running SkyDesk server over its REST API.
//
// Usage:
//
//	deskctl apps --category games
//	deskctl open calculator --x 40 --y 40
//	deskctl ls
//	deskctl move <window-id> 300 200
//	deskctl minimize <window-id>
//	deskctl theme toggle
//	deskctl notify "Build finished" --level info
//
// The server address comes from --server or DESKCTL_SERVER.
package main
