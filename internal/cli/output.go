package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/quill/internal/datefmt"
	"github.com/samvad-hq/quill/internal/ui"
	"github.com/samvad-hq/quill/pkg/httpclient"
)

// dateFields are rendered through datefmt before printing.
var dateFields = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
}

// render prints a successful payload to stdout and every pending notification
// to stderr. A failed result becomes an error notification and ErrReported.
func (c *CLI) render(cmd *cobra.Command, res httpclient.Result, success string) error {
	if !res.OK() {
		c.app.Notifier.Notify(ui.Notification{Message: res.Error, Type: ui.TypeError})
		c.flushNotifications(cmd.ErrOrStderr())
		return ErrReported
	}

	if len(res.Data) > 0 {
		if err := writePayload(cmd.OutOrStdout(), res.Data, c.outputFormat(), c.app.Dates); err != nil {
			return err
		}
	}
	if success != "" {
		c.app.Notifier.Notify(ui.Notification{Message: success, Type: ui.TypeSuccess})
	}
	c.flushNotifications(cmd.ErrOrStderr())
	return nil
}

// flushNotifications prints queued notifications oldest first and dismisses them.
func (c *CLI) flushNotifications(w io.Writer) {
	for _, n := range c.app.Notifier.List() {
		fmt.Fprintf(w, "[%s] %s\n", n.Type, n.Message)
		c.app.Notifier.Dismiss(n.ID)
	}
}

func writePayload(w io.Writer, data json.RawMessage, format string, dates datefmt.Formatter) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	v = formatDates(v, dates)

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func formatDates(v any, dates datefmt.Formatter) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if s, ok := item.(string); ok {
				if _, isDate := dateFields[k]; isDate {
					val[k] = dates.Format(s)
					continue
				}
			}
			val[k] = formatDates(item, dates)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = formatDates(item, dates)
		}
		return val
	default:
		return v
	}
}
