package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// render writes value as json or yaml, or as a two-column table built from
// rows.
func render(w io.Writer, format string, value interface{}, rows [][2]string) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	case constants.FormatTable, "":
		table := tablewriter.NewTable(w, tablewriter.WithRowAutoWrap(tw.WrapNone))
		table.Header("Property", "Value")

		for _, row := range rows {
			_ = table.Append(row[0], row[1])
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

func isTable(format string) bool {
	return format == constants.FormatTable || format == ""
}
