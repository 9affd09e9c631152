// Package catalog describes the apps a launcher can open.
//
// The built-in catalog carries the stock desktop apps. Additional entries
// can be dropped into a directory as YAML or TOML files:
//
//	apps:
//	  - id: chess
//	    name: Chess
//	    icon: shield
//	    view: chess
//	    category: games
//
// Every entry's view key names the content the browser mounts inside the
// window; the catalog never looks at what that content does.
package catalog
