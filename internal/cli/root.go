package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/quill/internal/app"
	"github.com/samvad-hq/quill/internal/router"
)

// routeAnnotation holds the router path a command navigates to before it runs.
// ":slug" is filled from the first argument and ":page" from the --page flag.
const routeAnnotation = "quill/route"

// ErrReported signals a failure that was already shown to the user.
var ErrReported = errors.New("request failed")

// Builder creates the App a command invocation runs against.
type Builder func() (*app.App, error)

// CLI holds the lazily built App shared by all commands of one invocation.
type CLI struct {
	build  Builder
	app    *app.App
	output string
}

// New returns a CLI that builds its App on first use.
func New(build Builder) *CLI {
	return &CLI{build: build}
}

// Close releases the App, if one was built.
func (c *CLI) Close() error {
	if c == nil || c.app == nil {
		return nil
	}
	return c.app.Close()
}

// Command builds the root command tree.
func (c *CLI) Command(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "quill - article publishing client",
		Long: `quill talks to an article backend over its JSON API.

Sign in once with a bearer token, then list, read, create, update and delete
articles. Commands that change or read articles require a stored token.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.beforeRun,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", "", "output format: json or yaml (defaults to config)")

	rootCmd.AddCommand(newLoginCommand(c))
	rootCmd.AddCommand(newLogoutCommand(c))
	rootCmd.AddCommand(newArticlesCommand(c))

	return rootCmd
}

// beforeRun builds the App and runs route guards for the command.
func (c *CLI) beforeRun(cmd *cobra.Command, args []string) error {
	a, err := c.ensureApp()
	if err != nil {
		return err
	}

	if c.output != "" {
		switch strings.ToLower(c.output) {
		case "json", "yaml":
			c.output = strings.ToLower(c.output)
		default:
			return fmt.Errorf("invalid --output %q (expected json or yaml)", c.output)
		}
	}

	tmpl := cmd.Annotations[routeAnnotation]
	if tmpl == "" {
		return nil
	}
	path := expandRoute(tmpl, cmd, args)
	m, err := a.Router.Navigate(path)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", path, err)
	}
	if m.Route.Name == router.RouteLogin && m.RedirectedFrom != "" {
		return fmt.Errorf("%s requires authentication: run `quill login --token <token>` first", path)
	}
	a.Log.DebugObj("route entered", "route", map[string]any{
		"path":   m.Path,
		"name":   m.Route.Name,
		"params": m.Params,
	})
	return nil
}

func (c *CLI) ensureApp() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	if c.build == nil {
		return nil, errors.New("cli has no app builder")
	}
	a, err := c.build()
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	c.app = a
	return a, nil
}

func (c *CLI) outputFormat() string {
	if c.output != "" {
		return c.output
	}
	if c.app != nil && c.app.Config != nil && c.app.Config.OutputFormat != "" {
		return c.app.Config.OutputFormat
	}
	return "json"
}

func expandRoute(tmpl string, cmd *cobra.Command, args []string) string {
	path := tmpl
	if strings.Contains(path, ":slug") && len(args) > 0 {
		path = strings.ReplaceAll(path, ":slug", url.PathEscape(args[0]))
	}
	if strings.Contains(path, ":page") {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			page = 1
		}
		path = strings.ReplaceAll(path, ":page", strconv.Itoa(page))
	}
	return path
}

func routed(path string) map[string]string {
	return map[string]string{routeAnnotation: path}
}
