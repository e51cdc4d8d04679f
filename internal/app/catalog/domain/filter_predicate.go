package domain

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// FilterPredicate is one filter entry as submitted by a caller:
// {"operand1": "discount", "operator": ">", "operand2": "30"}.
type FilterPredicate struct {
	Operand1 string `json:"operand1"`
	Operator string `json:"operator"`
	Operand2 string `json:"operand2"`
}

// NewFilterPredicate creates a FilterPredicate from its three parts.
func NewFilterPredicate(operand1, operator, operand2 string) FilterPredicate {
	return FilterPredicate{
		Operand1: operand1,
		Operator: operator,
		Operand2: operand2,
	}
}

// UnmarshalJSON requires an object with all three keys. operand1 and operator
// must be strings; operand2 may be a string or a number, numbers keep their
// literal text. Any other shape is ErrMalformedPredicate.
func (f *FilterPredicate) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return fmt.Errorf("%w: filter must be an object", ErrMalformedPredicate)
	}

	operand1, err := stringField(fields, "operand1", false)
	if err != nil {
		return err
	}
	operator, err := stringField(fields, "operator", false)
	if err != nil {
		return err
	}
	operand2, err := stringField(fields, "operand2", true)
	if err != nil {
		return err
	}

	*f = NewFilterPredicate(operand1, operator, operand2)
	return nil
}

// stringField extracts a required string member, optionally accepting a number.
func stringField(fields map[string]json.RawMessage, key string, allowNumber bool) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedPredicate, key)
	}

	res := gjson.ParseBytes(raw)
	switch {
	case res.Type == gjson.String:
		return res.String(), nil
	case res.Type == gjson.Number && allowNumber:
		return res.Raw, nil
	default:
		return "", fmt.Errorf("%w: %q must be a string", ErrMalformedPredicate, key)
	}
}
