package slot

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a decoded record has an unrecognized kind tag
var ErrUnknownKind = errors.New("unknown slot kind")

// Decode reads one tagged record. Instants decode to the current time, see Instant.
func Decode(data []byte) (Value, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode slot kind: %w", err)
	}

	switch head.Kind {
	case KindNumber:
		return decodeAs[NumberValue](data)
	case KindOrdinal:
		return decodeAs[OrdinalValue](data)
	case KindPercentage:
		return decodeAs[PercentageValue](data)
	case KindInstantTime:
		return decodeAs[InstantTimeValue](data)
	case KindTimeInterval:
		return decodeAs[TimeIntervalValue](data)
	case KindAmountOfMoney:
		return decodeAs[AmountOfMoneyValue](data)
	case KindTemperature:
		return decodeAs[TemperatureValue](data)
	case KindDuration:
		return decodeAs[DurationValue](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, head.Kind)
	}
}

func decodeAs[T Value](data []byte) (Value, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", v.Kind(), err)
	}
	return v, nil
}

// List is an ordered sequence of values that can be decoded generically
type List []Value

// UnmarshalJSON decodes each element by its kind tag
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode slot list: %w", err)
	}
	out := make(List, 0, len(raw))
	for i, r := range raw {
		v, err := Decode(r)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Equal compares two lists element by element
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
