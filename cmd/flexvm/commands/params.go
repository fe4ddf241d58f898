package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// productFlags holds the flags that select a product and its parameters.
type productFlags struct {
	product    string
	params     []string
	paramsFile string
	skipCheck  bool
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.product, "product", "", "product name, see 'flexvm products list'")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "product parameter as key=value; lists are comma separated, key= is an empty list")
	cmd.Flags().StringVar(&f.paramsFile, "params-file", "", "YAML file mapping one product name to its parameters")
	cmd.Flags().BoolVar(&f.skipCheck, "bypass-validation", false, "send parameters without range and choice checks")
}

// given reports whether any product flag was set.
func (f *productFlags) given() bool {
	return f.product != "" || len(f.params) > 0 || f.paramsFile != ""
}

// selection builds the product selection from the flags.
func (f *productFlags) selection(products *catalog.Catalog) (flexvm.ProductSelection, error) {
	if f.paramsFile != "" {
		return loadParamsFile(f.paramsFile)
	}

	if f.product == "" {
		return nil, constants.ErrProductRequired
	}

	return parseParams(products, f.product, f.params)
}

// parseParams turns key=value pairs into a selection of product. Values of
// list-typed parameters are split on commas; "key=" gives an empty list.
// Other values stay strings and are coerced by the translator.
func parseParams(products *catalog.Catalog, product string, pairs []string) (flexvm.ProductSelection, error) {
	definition, known := products.Product(product)
	fields := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParamFlag, pair)
		}

		if known && isListParameter(products, definition, key) {
			fields[key] = splitList(value)
		} else {
			fields[key] = strings.TrimSpace(value)
		}
	}

	return flexvm.ProductSelection{product: fields}, nil
}

func isListParameter(products *catalog.Catalog, definition catalog.ProductDefinition, key string) bool {
	if param, ok := definition.Parameter(key); ok {
		return param.Type == catalog.TypeList
	}

	id, err := strconv.Atoi(key)

	return err == nil && products.IsMultiValued(id)
}

func splitList(value string) []interface{} {
	items := []interface{}{}

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// loadParamsFile reads a YAML mapping of product names to parameter maps.
// Selection rules (exactly one product) are enforced by the translator.
func loadParamsFile(path string) (flexvm.ProductSelection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var selection flexvm.ProductSelection

	if err := yaml.Unmarshal(data, &selection); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}

	return selection, nil
}
