package cmd

import (
	"encoding/json"
	"os"
	"text/tabwriter"

	"github.com/s0up4200/bubblehearth/blizzard"
)

func wantJSON() bool {
	return cfg != nil && cfg.Output.Format == "json"
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// text renders a localized field in the configured locale.
func text(s blizzard.LocalizedString) string {
	if bnetClient == nil {
		return s.String()
	}
	return s.In(bnetClient.Locale())
}
