package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProductsCommand creates the products command group. It reads the
// built-in catalog and needs no credentials.
func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Show the supported products and their parameters",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsShowCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := catalog.Default().Products()

			return writeValue(cmd.OutOrStdout(), products, func(out io.Writer) error {
				table := tablewriter.NewWriter(out)
				table.Header("Name", "Type ID", "Parameters")

				for _, product := range products {
					names := make([]string, 0, len(product.Parameters))
					for _, param := range product.Parameters {
						names = append(names, param.Name)
					}

					_ = table.Append(product.Name, strconv.Itoa(product.ID), strings.Join(names, ", "))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}

func newProductsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show PRODUCT",
		Short: "Show the parameters of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products := catalog.Default()

			product, ok := products.Product(args[0])
			if !ok {
				return &flexvm.UnknownProductError{Product: args[0], Known: products.ProductNames()}
			}

			return writeValue(cmd.OutOrStdout(), product, func(out io.Writer) error {
				table := tablewriter.NewWriter(out)
				table.Header("ID", "Name", "Type", "Required", "Default", "Allowed")

				for _, param := range product.Parameters {
					_ = table.Append(
						strconv.Itoa(param.ID),
						param.Name,
						string(param.Type),
						strconv.FormatBool(param.Required),
						formatDefault(param),
						formatAllowed(param),
					)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}

func formatDefault(param catalog.ParameterDefinition) string {
	if param.Default == nil {
		return ""
	}

	return fmt.Sprint(param.Default)
}

func formatAllowed(param catalog.ParameterDefinition) string {
	switch {
	case param.ReadOnly:
		return "read-only"
	case len(param.Choices) > 0:
		return strings.Join(param.Choices, ", ")
	case param.HasRange():
		lower, upper := "-inf", "inf"
		if param.Min != nil {
			lower = strconv.FormatInt(*param.Min, 10)
		}

		if param.Max != nil {
			upper = strconv.FormatInt(*param.Max, 10)
		}

		return lower + " ~ " + upper
	default:
		return ""
	}
}
