// Package utils holds input validation shared by the HTTP and WebSocket
// handlers: ids, titles, notification text, geometry and props bags.
package utils
