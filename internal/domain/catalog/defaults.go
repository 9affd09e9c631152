package catalog

// builtin is the stock app grid
var builtin = []App{
	{ID: "explorer", Name: "Explorer", Icon: "search", Category: CategorySystem},
	{ID: "terminal", Name: "Terminal", Icon: "terminal", Category: CategorySystem},
	{ID: "settings", Name: "Settings", Icon: "settings", Category: CategorySystem},
	{ID: "notepad", Name: "Notepad", Icon: "file-text", Category: CategoryProductivity},
	{ID: "calculator", Name: "Calculator", Icon: "calculator", Category: CategoryProductivity},
	{ID: "webcam", Name: "Webcam", Icon: "camera", Category: CategoryMedia},
	{ID: "photos", Name: "Photos", Icon: "image", Category: CategoryMedia},
	{ID: "social", Name: "Social", Icon: "message-circle", Category: CategoryProductivity},
	{ID: "updater", Name: "Updater", Icon: "arrow-up", Category: CategorySystem},
	{ID: "packages", Name: "Packages", Icon: "package", Category: CategorySystem},
	{ID: "calendar", Name: "Calendar", Icon: "calendar", Category: CategoryProductivity},
	{ID: "mail", Name: "Mail", Icon: "mail", Category: CategoryProductivity},
	{ID: "slides", Name: "Slides", Icon: "presentation", Category: CategoryProductivity},
	{ID: "notes", Name: "Notes", Icon: "sticky-note", Category: CategoryProductivity},
	{ID: "code-editor", Name: "Code Editor", Icon: "code", Category: CategoryDeveloper},
	{ID: "api-tester", Name: "API Tester", Icon: "wrench", Category: CategoryDeveloper},
	{ID: "db-viewer", Name: "DB Viewer", Icon: "database", Category: CategoryDeveloper},
	{ID: "network-tools", Name: "Network Tools", Icon: "globe", Category: CategoryDeveloper},
	{ID: "browser", Name: "Browser", Icon: "globe", Category: CategoryProductivity},
	{ID: "music", Name: "Music", Icon: "music", Category: CategoryMedia},
	{ID: "video", Name: "Video", Icon: "video", Category: CategoryMedia},
	{ID: "tetris", Name: "Tetris", Icon: "gamepad-2", Category: CategoryGames},
	{ID: "chess", Name: "Chess", Icon: "shield", Category: CategoryGames},
	{ID: "minesweeper", Name: "Minesweeper", Icon: "help-circle", Category: CategoryGames},
	{ID: "clipboard", Name: "Clipboard", Icon: "clipboard", Category: CategorySystem},
	{ID: "backup", Name: "Backup", Icon: "share", Category: CategorySystem},
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtin...)
	if err != nil {
		panic("catalog: built-in catalog is invalid: " + err.Error())
	}
	return c
}
