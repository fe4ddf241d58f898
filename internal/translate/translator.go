// Package translate converts product parameters between the human schema
// (product and parameter names) and the API's wire schema (numeric product
// type id and a flat list of {id, value} pairs).
package translate

import (
	"fmt"
	"sort"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// Translator implements flexvm.Translator over a Catalog.
type Translator struct {
	catalog *catalog.Catalog
}

// New creates a translator. A nil catalog selects the built-in one.
func New(c *catalog.Catalog) *Translator {
	if c == nil {
		c = catalog.Default()
	}

	return &Translator{catalog: c}
}

// Catalog returns the catalog backing the translator.
func (t *Translator) Catalog() *catalog.Catalog {
	return t.catalog
}

// Translate picks the single selected product and converts its parameters.
func (t *Translator) Translate(selection flexvm.ProductSelection, validate bool) (*flexvm.WirePayload, error) {
	product, params, err := t.selectProduct(selection)
	if err != nil {
		return nil, err
	}

	parameters, productTypeID, err := t.ToWire(product, params, validate)
	if err != nil {
		return nil, err
	}

	return &flexvm.WirePayload{
		ProductTypeID: productTypeID,
		Parameters:    parameters,
	}, nil
}

func (t *Translator) selectProduct(selection flexvm.ProductSelection) (string, map[string]interface{}, error) {
	var unknown []string

	for name, params := range selection {
		if params == nil {
			continue
		}

		if _, ok := t.catalog.Product(name); !ok {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return "", nil, &flexvm.UnknownProductError{Product: unknown[0], Known: t.catalog.ProductNames()}
	}

	var selected []string

	for _, name := range t.catalog.ProductNames() {
		if selection[name] != nil {
			selected = append(selected, name)
		}
	}

	switch len(selected) {
	case 0:
		return "", nil, &flexvm.NoProductSelectedError{}
	case 1:
		return selected[0], selection[selected[0]], nil
	default:
		return "", nil, &flexvm.MultipleProductsSelectedError{Products: selected}
	}
}

// ToWire converts the named parameters of productName into wire parameters
// and returns them with the product type id. Declared parameters are emitted
// in catalog order; raw numeric keys follow, ordered by id.
func (t *Translator) ToWire(productName string, params map[string]interface{}, validate bool) ([]flexvm.WireParameter, int, error) {
	product, ok := t.catalog.Product(productName)
	if !ok {
		return nil, 0, &flexvm.UnknownProductError{Product: productName, Known: t.catalog.ProductNames()}
	}

	named := make(map[string]interface{}, len(params))
	raw := make(map[int]interface{})

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]

		parsed, ok := ParseKey(product, key)
		if !ok {
			return nil, 0, &flexvm.UnknownParameterError{Product: productName, Parameter: key}
		}

		if parsed.IsRaw() {
			raw[parsed.ID()] = value
		} else {
			named[parsed.Name()] = value
		}
	}

	parameters := make([]flexvm.WireParameter, 0, len(params))

	for _, def := range product.Parameters {
		value, present := named[def.Name]
		if !present || isAbsent(value) || def.ReadOnly {
			continue
		}

		converted, err := convertParameter(def, value, validate)
		if err != nil {
			return nil, 0, err
		}

		parameters = append(parameters, converted...)
	}

	rawIDs := make([]int, 0, len(raw))
	for id := range raw {
		rawIDs = append(rawIDs, id)
	}

	sort.Ints(rawIDs)

	for _, id := range rawIDs {
		parameters = append(parameters, expandRaw(id, raw[id])...)
	}

	return parameters, product.ID, nil
}

func convertParameter(def catalog.ParameterDefinition, value interface{}, validate bool) ([]flexvm.WireParameter, error) {
	if def.Type == catalog.TypeList {
		return convertList(def, value, validate)
	}

	scalar, err := convertScalar(def, value, validate)
	if err != nil {
		return nil, err
	}

	return []flexvm.WireParameter{{ID: def.ID, Value: scalar}}, nil
}

func convertList(def catalog.ParameterDefinition, value interface{}, validate bool) ([]flexvm.WireParameter, error) {
	items, ok := toList(value)
	if !ok {
		if validate {
			return nil, &flexvm.InvalidTypeError{Value: value, Parameter: def.Name, Expected: "list"}
		}

		return []flexvm.WireParameter{{ID: def.ID, Value: value}}, nil
	}

	if len(items) == 0 {
		return []flexvm.WireParameter{{ID: def.ID, Value: constants.EmptyListSentinel}}, nil
	}

	out := make([]flexvm.WireParameter, 0, len(items))

	for _, item := range items {
		element := item
		if s, ok := toString(item); ok {
			element = s
		}

		if validate && len(def.Choices) > 0 {
			s, ok := element.(string)
			if !ok || !def.Allows(s) {
				return nil, &flexvm.InvalidChoiceError{Value: item, Parameter: def.Name, Choices: def.Choices}
			}
		}

		out = append(out, flexvm.WireParameter{ID: def.ID, Value: element})
	}

	return out, nil
}

func convertScalar(def catalog.ParameterDefinition, value interface{}, validate bool) (interface{}, error) {
	switch def.Type {
	case catalog.TypeInt:
		n, ok := toInt64(value)
		if !ok {
			if validate {
				return nil, &flexvm.InvalidTypeError{Value: value, Parameter: def.Name, Expected: "int"}
			}

			return value, nil
		}

		if validate && def.HasRange() && !inRange(def, n) {
			return nil, &flexvm.InvalidRangeError{Value: n, Parameter: def.Name, Min: def.Min, Max: def.Max}
		}

		return int(n), nil
	default:
		s, ok := toString(value)
		if !ok {
			if validate {
				return nil, &flexvm.InvalidTypeError{Value: value, Parameter: def.Name, Expected: "string"}
			}

			return value, nil
		}

		if validate && !def.Allows(s) {
			return nil, &flexvm.InvalidChoiceError{Value: s, Parameter: def.Name, Choices: def.Choices}
		}

		return s, nil
	}
}

func inRange(def catalog.ParameterDefinition, n int64) bool {
	if def.Min != nil && n < *def.Min {
		return false
	}

	if def.Max != nil && n > *def.Max {
		return false
	}

	return true
}

func expandRaw(id int, value interface{}) []flexvm.WireParameter {
	if isAbsent(value) {
		return nil
	}

	items, ok := toList(value)
	if !ok {
		return []flexvm.WireParameter{{ID: id, Value: value}}
	}

	if len(items) == 0 {
		return []flexvm.WireParameter{{ID: id, Value: constants.EmptyListSentinel}}
	}

	out := make([]flexvm.WireParameter, 0, len(items))
	for _, item := range items {
		out = append(out, flexvm.WireParameter{ID: id, Value: item})
	}

	return out
}

// Untranslate implements flexvm.Translator.Untranslate.
func (t *Translator) Untranslate(item map[string]interface{}) (map[string]interface{}, error) {
	return t.FromWire(item)
}

// FromWire converts a configuration returned by the API into
// {productName: {paramName: value}} plus its other top-level fields.
func (t *Translator) FromWire(item map[string]interface{}) (map[string]interface{}, error) {
	productType, _ := item["productType"].(map[string]interface{})

	productID, ok := toInt64(productType["id"])
	if !ok {
		return nil, constants.ErrMissingProductType
	}

	wire, err := wireParameters(item["parameters"])
	if err != nil {
		return nil, err
	}

	productName := t.catalog.ProductNameByID(int(productID))
	fields := make(map[string]interface{}, len(wire))

	for _, param := range wire {
		name := t.catalog.ParameterNameByID(param.ID)
		MergeParameterValue(fields, name, param.Value, t.catalog.IsMultiValued(param.ID))
	}

	human := map[string]interface{}{productName: fields}

	for key, value := range item {
		if key == "productType" || key == "parameters" {
			continue
		}

		human[key] = value
	}

	return human, nil
}

// MergeParameterValue adds one wire value to the parameter fields.
// Multi-valued parameters are always lists and never contain the empty-list
// sentinel. Any other parameter is a scalar on first occurrence, becomes a
// two-element list on the second, and is appended to afterwards.
func MergeParameterValue(fields map[string]interface{}, name string, value interface{}, multiValued bool) {
	existing, present := fields[name]

	if multiValued {
		list, _ := existing.([]interface{})
		if list == nil {
			list = []interface{}{}
		}

		if value != constants.EmptyListSentinel {
			list = append(list, value)
		}

		fields[name] = list

		return
	}

	if !present {
		fields[name] = value

		return
	}

	if list, isList := existing.([]interface{}); isList {
		fields[name] = append(list, value)

		return
	}

	fields[name] = []interface{}{existing, value}
}

func wireParameters(value interface{}) ([]flexvm.WireParameter, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []flexvm.WireParameter:
		return v, nil
	case []interface{}:
		out := make([]flexvm.WireParameter, 0, len(v))

		for _, entry := range v {
			m, ok := entry.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: %v", constants.ErrInvalidParameters, entry)
			}

			id, ok := toInt64(m["id"])
			if !ok {
				return nil, fmt.Errorf("%w: id %v", constants.ErrInvalidParameters, m["id"])
			}

			out = append(out, flexvm.WireParameter{ID: int(id), Value: m["value"]})
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", constants.ErrInvalidParameters, value)
	}
}
