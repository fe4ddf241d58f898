package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = "  "
	NotAvailable      = "N/A"
)

// EnvKeyReplacer maps flag names to FLEXVM_* environment variable names.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_")
}

// AddGlobalFlags registers the persistent flags and binds them to viper.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is $HOME/.flexvm/config.yml)")
	flags.StringP("username", "u", "", "API username (or FORTIFLEX_ACCESS_USERNAME)")
	flags.StringP("password", "p", "", "API password (or FORTIFLEX_ACCESS_PASSWORD)")
	flags.StringP("output", "o", OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("persist-session", false, "reuse the access token across invocations")
	flags.String("session-backend", flexvm.SessionBackendFile, "session store backend (file, bolt, nats)")
	flags.String("session-path", "", "session file or bbolt database path")
	flags.String("nats-url", "", "NATS server URL for the nats session backend")
	flags.String("log-path", "", "append request and response traces to this file (or FORTIFLEX_LOG_PATH)")
	flags.String("auth-url", "", "OAuth token endpoint")
	flags.String("api-url", "", "API base URL")

	flags.VisitAll(func(flag *pflag.Flag) {
		_ = viper.BindPFlag(flag.Name, flag)
	})
}

// column renders one table cell from an item.
type column struct {
	header string
	value  func(item map[string]interface{}) string
}

// field reads a gjson path from the item's JSON encoding.
func field(header, path string) column {
	return column{
		header: header,
		value: func(item map[string]interface{}) string {
			data, err := json.Marshal(item)
			if err != nil {
				return NotAvailable
			}

			result := gjson.GetBytes(data, path)
			if !result.Exists() || result.Type == gjson.Null {
				return ""
			}

			return result.String()
		},
	}
}

// productColumn shows which catalog product an untranslated item carries.
func productColumn(products *catalog.Catalog) column {
	return column{
		header: "Product",
		value: func(item map[string]interface{}) string {
			for _, name := range products.ProductNames() {
				if _, ok := item[name]; ok {
					return name
				}
			}

			return NotAvailable
		},
	}
}

// parametersColumn renders the product parameters as sorted key=value pairs.
func parametersColumn(products *catalog.Catalog) column {
	return column{
		header: "Parameters",
		value: func(item map[string]interface{}) string {
			for _, name := range products.ProductNames() {
				params, ok := item[name].(map[string]interface{})
				if !ok {
					continue
				}

				pairs := make([]string, 0, len(params))
				for key, value := range params {
					pairs = append(pairs, fmt.Sprintf("%s=%v", key, value))
				}

				sort.Strings(pairs)

				return strings.Join(pairs, " ")
			}

			return ""
		},
	}
}

// writeValue encodes value as JSON or YAML, or calls table for the table
// format.
func writeValue(out io.Writer, value interface{}, table func(io.Writer) error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", defaultJSONIndent)

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode output as YAML: %w", err)
		}

		return nil
	default:
		return table(out)
	}
}

// writeResponse prints resp[key] as a table, or the whole response as JSON
// or YAML.
func writeResponse(out io.Writer, resp flexvm.Response, key string, columns []column) error {
	return writeValue(out, resp, func(w io.Writer) error {
		return renderItems(w, key, resp.Items(key), columns)
	})
}

func renderItems(out io.Writer, noun string, items []map[string]interface{}, columns []column) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", noun)

		return nil
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.header
	}

	table := tablewriter.NewWriter(out)
	table.Header(headers...)

	for _, item := range items {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = col.value(item)
		}

		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
