package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/skydesk/internal/client"
	"github.com/GriffinCanCode/skydesk/internal/domain/catalog"
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// CLI holds the client and output settings for command handlers
type CLI struct {
	out     io.Writer
	server  string
	timeout time.Duration
	asJSON  bool
	client  *client.Client
}

// NewCLI creates a CLI writing to out
func NewCLI(out io.Writer) *CLI {
	return &CLI{out: out}
}

// CreateCommands creates all CLI commands
func (c *CLI) CreateCommands() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "deskctl",
		Short:         "deskctl - SkyDesk window manager client",
		Long:          `deskctl drives a running SkyDesk server: launch apps, arrange windows and post notifications.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := client.DefaultConfig()
			cfg.BaseURL = c.server
			cfg.Timeout = c.timeout
			c.client = client.New(cfg)
		},
	}

	server := os.Getenv("DESKCTL_SERVER")
	if server == "" {
		server = client.DefaultConfig().BaseURL
	}
	rootCmd.PersistentFlags().StringVarP(&c.server, "server", "s", server, "SkyDesk server URL")
	rootCmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print raw JSON")

	// Add subcommands
	rootCmd.AddCommand(c.createAppsCmd())
	rootCmd.AddCommand(c.createOpenCmd())
	rootCmd.AddCommand(c.createListCmd())
	rootCmd.AddCommand(c.createWindowCmd("focus", "Bring a window to the front", c.focus))
	rootCmd.AddCommand(c.createWindowCmd("minimize", "Toggle a window's minimized state", c.minimize))
	rootCmd.AddCommand(c.createWindowCmd("maximize", "Toggle a window's maximized state", c.maximize))
	rootCmd.AddCommand(c.createWindowCmd("close", "Close a window", c.close))
	rootCmd.AddCommand(c.createWindowCmd("activate", "Press a window's taskbar entry", c.activate))
	rootCmd.AddCommand(c.createMoveCmd())
	rootCmd.AddCommand(c.createResizeCmd())
	rootCmd.AddCommand(c.createThemeCmd())
	rootCmd.AddCommand(c.createNotifyCmd())
	rootCmd.AddCommand(c.createDismissCmd())
	rootCmd.AddCommand(c.createStatusCmd())

	return rootCmd
}

func (c *CLI) ctx(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

func (c *CLI) createStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.client.Health(c.ctx(cmd))
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(h)
			}
			fmt.Fprintf(c.out, "%s: %d windows (%d minimized), theme %s, version %d\n",
				h.Status, h.Desktop.TotalWindows, h.Desktop.MinimizedWindows, h.Desktop.Theme, h.Desktop.Version)
			return nil
		},
	}
}

func (c *CLI) createAppsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List launchable apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := c.client.Apps(c.ctx(cmd), catalog.Category(category))
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(apps)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
			for _, app := range apps {
				fmt.Fprintf(tw, "%s\t%s %s\t%s\n", app.ID, app.Icon, app.Name, app.Category)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	return cmd
}

func (c *CLI) createOpenCmd() *cobra.Command {
	var (
		title     string
		x, y      int
		width     int
		height    int
		minimized bool
		maximized bool
	)

	cmd := &cobra.Command{
		Use:   "open <app-id>",
		Short: "Launch an app in a new window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var o desktop.Overrides
			pinned := false
			if cmd.Flags().Changed("title") {
				o.Title, pinned = &title, true
			}
			if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
				o.Position, pinned = &desktop.Point{X: x, Y: y}, true
			}
			if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
				o.Size, pinned = &desktop.Size{Width: width, Height: height}, true
			}
			if minimized {
				o.Minimized, pinned = &minimized, true
			}
			if maximized {
				o.Maximized, pinned = &maximized, true
			}

			var overrides *desktop.Overrides
			if pinned {
				overrides = &o
			}
			w, err := c.client.Launch(c.ctx(cmd), args[0], overrides)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(w)
			}
			fmt.Fprintln(c.out, w.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Window title")
	cmd.Flags().IntVar(&x, "x", 0, "Left edge")
	cmd.Flags().IntVar(&y, "y", 0, "Top edge")
	cmd.Flags().IntVar(&width, "width", 800, "Window width")
	cmd.Flags().IntVar(&height, "height", 600, "Window height")
	cmd.Flags().BoolVar(&minimized, "minimized", false, "Open minimized")
	cmd.Flags().BoolVar(&maximized, "maximized", false, "Open maximized")
	return cmd
}

func (c *CLI) createListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"windows"},
		Short:   "List windows back to front",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, active, err := c.client.Windows(c.ctx(cmd))
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(windows)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPOSITION\tSIZE\tSTACK\tSTATE")
			for _, w := range windows {
				fmt.Fprintf(tw, "%s\t%s\t%d,%d\t%dx%d\t%d\t%s\n",
					w.ID, w.Title, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height, w.StackOrder, windowState(w, active))
			}
			return tw.Flush()
		},
	}
}

func windowState(w desktop.Window, active string) string {
	state := "normal"
	switch {
	case w.Minimized:
		state = "minimized"
	case w.Maximized:
		state = "maximized"
	}
	if w.ID == active {
		state += ",active"
	}
	return state
}

type windowOp func(ctx context.Context, id string) (client.Result, error)

func (c *CLI) focus(ctx context.Context, id string) (client.Result, error) {
	return c.client.Focus(ctx, id)
}

func (c *CLI) minimize(ctx context.Context, id string) (client.Result, error) {
	return c.client.Minimize(ctx, id)
}

func (c *CLI) maximize(ctx context.Context, id string) (client.Result, error) {
	return c.client.Maximize(ctx, id)
}

func (c *CLI) close(ctx context.Context, id string) (client.Result, error) {
	return c.client.Close(ctx, id)
}

func (c *CLI) activate(ctx context.Context, id string) (client.Result, error) {
	return c.client.Activate(ctx, id)
}

func (c *CLI) createWindowCmd(use, short string, op windowOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <window-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := op(c.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			return c.printResult(res)
		},
	}
}

func (c *CLI) createMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <window-id> <x> <y>",
		Short: "Move a window",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			res, err := c.client.Move(c.ctx(cmd), args[0], x, y)
			if err != nil {
				return err
			}
			return c.printResult(res)
		},
	}
}

func (c *CLI) createResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <window-id> <width> <height>",
		Short: "Resize a window",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			res, err := c.client.Resize(c.ctx(cmd), args[0], w, h)
			if err != nil {
				return err
			}
			return c.printResult(res)
		},
	}
}

func parsePair(a, b string) (int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return first, second, nil
}

func (c *CLI) createThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Theme commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := c.client.ToggleTheme(c.ctx(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, theme)
			return nil
		},
	})

	return cmd
}

func (c *CLI) createNotifyCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Post a desktop notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.client.Notify(c.ctx(cmd), args[0], desktop.Level(level))
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(n)
			}
			fmt.Fprintln(c.out, n.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", string(desktop.LevelInfo), "info, warning or error")
	return cmd
}

func (c *CLI) createDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <notification-id>",
		Short: "Dismiss a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := c.client.Dismiss(c.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(c.out, "no notification %s\n", args[0])
			}
			return nil
		},
	}
}

func (c *CLI) printResult(res client.Result) error {
	if c.asJSON {
		return c.printJSON(res)
	}
	if !res.Success {
		fmt.Fprintf(c.out, "no window %s\n", res.WindowID)
		return nil
	}
	if res.Window == nil {
		fmt.Fprintf(c.out, "%s closed\n", res.WindowID)
		return nil
	}
	w := *res.Window
	fmt.Fprintf(c.out, "%s at %d,%d size %dx%d stack %d\n",
		w.ID, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height, w.StackOrder)
	return nil
}

func (c *CLI) printJSON(v interface{}) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}
