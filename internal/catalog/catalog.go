// Package catalog holds the static table of FortiFlex products and their
// parameters, and the id/name lookups built from it.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/flexvm/internal/constants"
)

// NotFound is returned by ParameterID for unknown names. It is never a valid id.
const NotFound = -1

// ValueType is the type of a parameter value.
type ValueType string

const (
	TypeInt    ValueType = "int"
	TypeString ValueType = "str"
	TypeList   ValueType = "list"
)

// ParameterDefinition describes one configurable parameter of a product.
type ParameterDefinition struct {
	ID       int         `json:"id"                 yaml:"id"`
	Name     string      `json:"name"               yaml:"name"`
	Type     ValueType   `json:"type"               yaml:"type"`
	Min      *int64      `json:"min,omitempty"      yaml:"min,omitempty"`
	Max      *int64      `json:"max,omitempty"      yaml:"max,omitempty"`
	Choices  []string    `json:"choices,omitempty"  yaml:"choices,omitempty"`
	Required bool        `json:"required"           yaml:"required"`
	Default  interface{} `json:"default,omitempty"  yaml:"default,omitempty"`
	ReadOnly bool        `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// HasRange reports whether an integer parameter declares any bound.
func (p ParameterDefinition) HasRange() bool {
	return p.Type == TypeInt && (p.Min != nil || p.Max != nil)
}

// Allows reports whether value is one of the declared choices. Parameters
// without choices allow anything.
func (p ParameterDefinition) Allows(value string) bool {
	if len(p.Choices) == 0 {
		return true
	}

	for _, choice := range p.Choices {
		if choice == value {
			return true
		}
	}

	return false
}

// ProductDefinition describes a product type and its parameters.
type ProductDefinition struct {
	ID         int                   `json:"id"         yaml:"id"`
	Name       string                `json:"name"       yaml:"name"`
	Parameters []ParameterDefinition `json:"parameters" yaml:"parameters"`
}

// Parameter returns the parameter named name.
func (p ProductDefinition) Parameter(name string) (ParameterDefinition, bool) {
	for _, param := range p.Parameters {
		if param.Name == name {
			return param, true
		}
	}

	return ParameterDefinition{}, false
}

// Catalog is an immutable product table with precomputed lookups.
type Catalog struct {
	products     []ProductDefinition
	byName       map[string]ProductDefinition
	productNames map[int]string
	paramNames   map[int]string
	paramIDs     map[string]map[string]int
	multiValued  map[int]struct{}
	orderedNames []string
}

// New validates products and builds the lookup maps.
func New(products []ProductDefinition) (*Catalog, error) {
	c := &Catalog{
		products:     make([]ProductDefinition, 0, len(products)),
		byName:       make(map[string]ProductDefinition, len(products)),
		productNames: make(map[int]string, len(products)),
		paramNames:   make(map[int]string),
		paramIDs:     make(map[string]map[string]int, len(products)),
		multiValued:  make(map[int]struct{}),
		orderedNames: make([]string, 0, len(products)),
	}

	for _, product := range products {
		if _, exists := c.byName[product.Name]; exists {
			return nil, fmt.Errorf("%w: %s", constants.ErrDuplicateProduct, product.Name)
		}

		if _, exists := c.productNames[product.ID]; exists {
			return nil, fmt.Errorf("%w: id %d", constants.ErrDuplicateProduct, product.ID)
		}

		ids := make(map[string]int, len(product.Parameters))

		for _, param := range product.Parameters {
			if _, exists := c.paramNames[param.ID]; exists {
				return nil, fmt.Errorf("%w: %d", constants.ErrDuplicateParameterID, param.ID)
			}

			if _, exists := ids[param.Name]; exists {
				return nil, fmt.Errorf("%w: %s.%s", constants.ErrDuplicateParameterName, product.Name, param.Name)
			}

			ids[param.Name] = param.ID
			c.paramNames[param.ID] = param.Name

			if param.Type == TypeList {
				c.multiValued[param.ID] = struct{}{}
			}
		}

		c.products = append(c.products, product)
		c.byName[product.Name] = product
		c.productNames[product.ID] = product.Name
		c.paramIDs[product.Name] = ids
		c.orderedNames = append(c.orderedNames, product.Name)
	}

	return c, nil
}

var defaultCatalog = mustNew(builtinProducts())

func mustNew(products []ProductDefinition) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}

	return c
}

// Default returns the built-in product table.
func Default() *Catalog {
	return defaultCatalog
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []ProductDefinition {
	out := make([]ProductDefinition, len(c.products))
	copy(out, c.products)

	return out
}

// ProductsByName returns the products keyed by name.
func (c *Catalog) ProductsByName() map[string]ProductDefinition {
	out := make(map[string]ProductDefinition, len(c.byName))
	for name, product := range c.byName {
		out[name] = product
	}

	return out
}

// ProductNames returns the product names in catalog order.
func (c *Catalog) ProductNames() []string {
	out := make([]string, len(c.orderedNames))
	copy(out, c.orderedNames)

	return out
}

// Product looks up a product by name.
func (c *Catalog) Product(name string) (ProductDefinition, bool) {
	product, ok := c.byName[name]

	return product, ok
}

// ParameterID returns the id of productName's paramName, or NotFound.
func (c *Catalog) ParameterID(productName, paramName string) int {
	ids, ok := c.paramIDs[productName]
	if !ok {
		return NotFound
	}

	id, ok := ids[paramName]
	if !ok {
		return NotFound
	}

	return id
}

// ParameterNameByID returns the parameter name for id. Unknown ids, which
// newer servers may send, are returned as their decimal string.
func (c *Catalog) ParameterNameByID(id int) string {
	if name, ok := c.paramNames[id]; ok {
		return name
	}

	return strconv.Itoa(id)
}

// ProductNameByID returns the product name for id, falling back to the
// decimal string like ParameterNameByID.
func (c *Catalog) ProductNameByID(id int) string {
	if name, ok := c.productNames[id]; ok {
		return name
	}

	return strconv.Itoa(id)
}

// IsMultiValued reports whether id belongs to a list-typed parameter.
func (c *Catalog) IsMultiValued(id int) bool {
	_, ok := c.multiValued[id]

	return ok
}

// MultiValuedIDs returns the ids of all list-typed parameters.
func (c *Catalog) MultiValuedIDs() map[int]struct{} {
	out := make(map[int]struct{}, len(c.multiValued))
	for id := range c.multiValued {
		out[id] = struct{}{}
	}

	return out
}
