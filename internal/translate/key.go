package translate

import (
	"strconv"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
)

// ParameterKey identifies a parameter either by catalog name or by raw wire
// id. Raw keys bypass the catalog and are forwarded without validation.
type ParameterKey struct {
	name string
	id   int
	raw  bool
}

// Named returns a key for a catalog parameter name.
func Named(name string) ParameterKey {
	return ParameterKey{name: name}
}

// Raw returns a key for a wire id not known to the catalog.
func Raw(id int) ParameterKey {
	return ParameterKey{id: id, raw: true}
}

// IsRaw reports whether the key bypasses the catalog.
func (k ParameterKey) IsRaw() bool {
	return k.raw
}

// Name returns the parameter name of a named key.
func (k ParameterKey) Name() string {
	return k.name
}

// ID returns the wire id of a raw key.
func (k ParameterKey) ID() int {
	return k.id
}

func (k ParameterKey) String() string {
	if k.raw {
		return strconv.Itoa(k.id)
	}

	return k.name
}

// ParseKey resolves key against product. Names win over numbers, so a
// parameter literally named "1" stays named. ok is false when key is neither.
func ParseKey(product catalog.ProductDefinition, key string) (ParameterKey, bool) {
	if _, found := product.Parameter(key); found {
		return Named(key), true
	}

	id, err := strconv.Atoi(key)
	if err != nil {
		return ParameterKey{}, false
	}

	return Raw(id), true
}
