package translate

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_ToWire(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	t.Run("catalog order and product id", func(t *testing.T) {
		t.Parallel()

		params, productID, err := tr.ToWire("fortiGateBundle", map[string]interface{}{
			"service":            "UTP",
			"cpu":                4,
			"fortiGuardServices": []string{"FGTAVDB", "FGTFAIS"},
			"vdom":               nil,
		}, true)
		require.NoError(t, err)
		assert.Equal(t, 1, productID)
		assert.Equal(t, []flexvm.WireParameter{
			{ID: 1, Value: 4},
			{ID: 2, Value: "UTP"},
			{ID: 43, Value: "FGTAVDB"},
			{ID: 43, Value: "FGTFAIS"},
		}, params)
	})

	t.Run("empty list becomes the sentinel", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiGateBundle", map[string]interface{}{
			"cloudServices": []interface{}{},
		}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{{ID: 44, Value: constants.EmptyListSentinel}}, params)
	})

	t.Run("nil slice is skipped", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiGateBundle", map[string]interface{}{
			"cpu":                2,
			"service":            "FC",
			"fortiGuardServices": []string(nil),
			"cloudServices":      []interface{}(nil),
			"44":                 []int(nil),
			"9001":               []string(nil),
		}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{
			{ID: 1, Value: 2},
			{ID: 2, Value: "FC"},
		}, params)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		_, _, err := tr.ToWire("fortiToaster", map[string]interface{}{}, true)

		var target *flexvm.UnknownProductError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "fortiToaster", target.Product)
	})

	t.Run("unknown parameter name", func(t *testing.T) {
		t.Parallel()

		_, _, err := tr.ToWire("fortiManager", map[string]interface{}{"cpu": 1}, true)

		var target *flexvm.UnknownParameterError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "cpu", target.Parameter)
	})

	t.Run("first unknown key in sorted order is reported", func(t *testing.T) {
		t.Parallel()

		for i := 0; i < 20; i++ {
			_, _, err := tr.ToWire("fortiManager", map[string]interface{}{
				"zeta":   1,
				"device": 10,
				"alpha":  2,
				"mu":     3,
			}, true)

			var target *flexvm.UnknownParameterError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, "alpha", target.Parameter)
		}
	})

	t.Run("raw numeric keys pass through unvalidated", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiManager", map[string]interface{}{
			"device": 10,
			"adom":   2,
			"9001":   "anything",
			"120":    []string{},
		}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{
			{ID: 30, Value: 10},
			{ID: 9, Value: 2},
			{ID: 120, Value: constants.EmptyListSentinel},
			{ID: 9001, Value: "anything"},
		}, params)
	})

	t.Run("read-only parameters are not sent", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiEDR", map[string]interface{}{
			"service":   "FEDRPDR",
			"endpoints": 100,
		}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{{ID: 46, Value: "FEDRPDR"}}, params)
	})

	t.Run("ints are coerced from json and strings", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiManager", map[string]interface{}{
			"device": float64(5),
			"adom":   "7",
		}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{{ID: 30, Value: 5}, {ID: 9, Value: 7}}, params)
	})

	t.Run("string choices accept numbers", func(t *testing.T) {
		t.Parallel()

		params, _, err := tr.ToWire("fortiWeb", map[string]interface{}{"cpu": 4, "service": "FWBSTD"}, true)
		require.NoError(t, err)
		assert.Equal(t, []flexvm.WireParameter{{ID: 4, Value: "4"}, {ID: 5, Value: "FWBSTD"}}, params)
	})
}

func TestTranslator_ToWire_RangeValidation(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	tests := []struct {
		cpu   int
		valid bool
	}{
		{cpu: 0, valid: false},
		{cpu: 1, valid: true},
		{cpu: 96, valid: true},
		{cpu: 97, valid: false},
	}

	for _, tt := range tests {
		params := map[string]interface{}{"cpu": tt.cpu}

		_, _, err := tr.ToWire("fortiGateBundle", params, true)
		if tt.valid {
			require.NoError(t, err, "cpu=%d", tt.cpu)

			continue
		}

		var target *flexvm.InvalidRangeError
		require.ErrorAs(t, err, &target, "cpu=%d", tt.cpu)
		assert.Equal(t, int64(tt.cpu), target.Value)
		assert.Equal(t, "cpu", target.Parameter)
		assert.Equal(t, int64(1), *target.Min)
		assert.Equal(t, int64(96), *target.Max)

		_, _, err = tr.ToWire("fortiGateBundle", params, false)
		require.NoError(t, err, "validation disabled, cpu=%d", tt.cpu)
	}
}

func TestTranslator_ToWire_ChoiceValidation(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	_, _, err := tr.ToWire("fortiGateBundle", map[string]interface{}{"service": "FC"}, true)
	require.NoError(t, err)

	_, _, err = tr.ToWire("fortiGateBundle", map[string]interface{}{"service": "XYZ"}, true)

	var target *flexvm.InvalidChoiceError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "XYZ", target.Value)
	assert.Equal(t, []string{"FC", "UTP", "ENT", "ATP"}, target.Choices)
	assert.Contains(t, err.Error(), "FC, UTP, ENT, ATP")

	_, _, err = tr.ToWire("fortiGateBundle", map[string]interface{}{
		"fortiGuardServices": []string{"FGTAVDB", "BOGUS"},
	}, true)
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "BOGUS", target.Value)
	assert.Equal(t, "fortiGuardServices", target.Parameter)
}

func TestTranslator_ToWire_TypeValidation(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	_, _, err := tr.ToWire("fortiGateBundle", map[string]interface{}{"cpu": "many"}, true)

	var target *flexvm.InvalidTypeError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "int", target.Expected)

	params, _, err := tr.ToWire("fortiGateBundle", map[string]interface{}{"cpu": "many"}, false)
	require.NoError(t, err)
	assert.Equal(t, []flexvm.WireParameter{{ID: 1, Value: "many"}}, params)
}

func TestTranslator_Translate_ProductSelection(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	t.Run("none selected", func(t *testing.T) {
		t.Parallel()

		_, err := tr.Translate(flexvm.ProductSelection{"fortiGateBundle": nil}, true)

		var target *flexvm.NoProductSelectedError
		require.ErrorAs(t, err, &target)
	})

	t.Run("two selected", func(t *testing.T) {
		t.Parallel()

		_, err := tr.Translate(flexvm.ProductSelection{
			"fortiWeb":        {"cpu": "2"},
			"fortiGateBundle": {"cpu": 2},
		}, true)

		var target *flexvm.MultipleProductsSelectedError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, []string{"fortiGateBundle", "fortiWeb"}, target.Products)
		assert.Contains(t, err.Error(), "fortiGateBundle")
		assert.Contains(t, err.Error(), "fortiWeb")
	})

	t.Run("unknown selected", func(t *testing.T) {
		t.Parallel()

		_, err := tr.Translate(flexvm.ProductSelection{"fortiToaster": {}}, true)

		var target *flexvm.UnknownProductError
		require.ErrorAs(t, err, &target)
	})

	t.Run("one selected", func(t *testing.T) {
		t.Parallel()

		payload, err := tr.Translate(flexvm.ProductSelection{
			"fortiGateBundle": nil,
			"fortiPortal":     {"device": 3},
		}, true)
		require.NoError(t, err)
		assert.Equal(t, 8, payload.ProductTypeID)
		assert.Equal(t, []flexvm.WireParameter{{ID: 24, Value: 3}}, payload.Parameters)
	})
}

func TestTranslator_FromWire(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	var item map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 42,
		"name": "edge",
		"status": "ACTIVE",
		"programSerialNumber": "ELAVMS0000003536",
		"productType": {"id": 1, "name": "FortiGate Virtual Machine - Service Bundle"},
		"parameters": [
			{"id": 1, "value": "4"},
			{"id": 2, "value": "UTP"},
			{"id": 43, "value": "FGTAVDB"},
			{"id": 43, "value": "FGTFAIS"},
			{"id": 44, "value": "NONE"},
			{"id": 99999, "value": "x"},
			{"id": 99999, "value": "y"},
			{"id": 99999, "value": "z"}
		]
	}`), &item))

	human, err := tr.FromWire(item)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"cpu":                "4",
		"service":            "UTP",
		"fortiGuardServices": []interface{}{"FGTAVDB", "FGTFAIS"},
		"cloudServices":      []interface{}{},
		"99999":              []interface{}{"x", "y", "z"},
	}, human["fortiGateBundle"])
	assert.InDelta(t, 42, human["id"], 0)
	assert.Equal(t, "edge", human["name"])
	assert.Equal(t, "ACTIVE", human["status"])
	assert.NotContains(t, human, "productType")
	assert.NotContains(t, human, "parameters")
}

func TestTranslator_FromWire_Errors(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	_, err := tr.FromWire(map[string]interface{}{"parameters": []interface{}{}})
	require.ErrorIs(t, err, constants.ErrMissingProductType)

	_, err = tr.FromWire(map[string]interface{}{
		"productType": map[string]interface{}{"id": 1},
		"parameters":  []interface{}{"garbage"},
	})
	require.ErrorIs(t, err, constants.ErrInvalidParameters)
}

func TestTranslator_FromWire_UnknownProduct(t *testing.T) {
	t.Parallel()

	human, err := New(nil).FromWire(map[string]interface{}{
		"productType": map[string]interface{}{"id": float64(999)},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, human["999"])
}

func TestMergeParameterValue(t *testing.T) {
	t.Parallel()

	t.Run("scalar is promoted on second occurrence", func(t *testing.T) {
		t.Parallel()

		fields := map[string]interface{}{}
		MergeParameterValue(fields, "p", "a", false)
		assert.Equal(t, "a", fields["p"])

		MergeParameterValue(fields, "p", "b", false)
		assert.Equal(t, []interface{}{"a", "b"}, fields["p"])

		MergeParameterValue(fields, "p", "c", false)
		assert.Equal(t, []interface{}{"a", "b", "c"}, fields["p"])
	})

	t.Run("multi-valued is a list from the first value", func(t *testing.T) {
		t.Parallel()

		fields := map[string]interface{}{}
		MergeParameterValue(fields, "p", "a", true)
		assert.Equal(t, []interface{}{"a"}, fields["p"])
	})

	t.Run("sentinel yields an empty list", func(t *testing.T) {
		t.Parallel()

		fields := map[string]interface{}{}
		MergeParameterValue(fields, "p", constants.EmptyListSentinel, true)
		assert.Equal(t, []interface{}{}, fields["p"])
	})

	t.Run("sentinel is a plain value for scalar parameters", func(t *testing.T) {
		t.Parallel()

		fields := map[string]interface{}{}
		MergeParameterValue(fields, "supportService", constants.EmptyListSentinel, false)
		assert.Equal(t, constants.EmptyListSentinel, fields["supportService"])
	})
}

func TestTranslator_RoundTrip(t *testing.T) {
	t.Parallel()

	tr := New(nil)

	for _, product := range catalog.Default().Products() {
		product := product
		t.Run(product.Name, func(t *testing.T) {
			t.Parallel()

			params := validParams(product)

			payload, err := tr.Translate(flexvm.ProductSelection{product.Name: params}, true)
			require.NoError(t, err)

			// Simulate the server echoing the configuration back as JSON.
			body, err := json.Marshal(map[string]interface{}{
				"id":          1,
				"productType": map[string]interface{}{"id": payload.ProductTypeID},
				"parameters":  payload.Parameters,
			})
			require.NoError(t, err)

			var item map[string]interface{}

			require.NoError(t, json.Unmarshal(body, &item))

			human, err := tr.FromWire(item)
			require.NoError(t, err)

			restored, ok := human[product.Name].(map[string]interface{})
			require.True(t, ok)
			require.Len(t, restored, len(params))

			for name, want := range params {
				def, _ := product.Parameter(name)

				switch def.Type {
				case catalog.TypeList:
					got, isList := restored[name].([]interface{})
					require.True(t, isList, name)
					assert.ElementsMatch(t, want, got, name)
				case catalog.TypeInt:
					assert.InDelta(t, want, restored[name], 0, name)
				default:
					assert.Equal(t, want, restored[name], name)
				}
			}
		})
	}
}

// validParams picks a valid value for every writable parameter: the lower
// bound for ranges, the first choice for enums, and alternating empty and
// two-element lists.
func validParams(product catalog.ProductDefinition) map[string]interface{} {
	params := map[string]interface{}{}

	for i, def := range product.Parameters {
		if def.ReadOnly {
			continue
		}

		switch def.Type {
		case catalog.TypeList:
			if i%2 == 0 || len(def.Choices) < 2 {
				params[def.Name] = []interface{}{}
			} else {
				params[def.Name] = []interface{}{def.Choices[0], def.Choices[1]}
			}
		case catalog.TypeInt:
			n := 1
			if def.Min != nil {
				n = int(*def.Min)
			}

			params[def.Name] = n
		default:
			params[def.Name] = def.Choices[0]
		}
	}

	return params
}
