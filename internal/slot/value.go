// Package slot defines the normalized value taxonomy produced from raw
// extraction results, and the conversion from one to the other.
//
// Every Value serializes to a JSON object carrying a "kind" discriminator so
// a heterogeneous list can be decoded without knowing its contents upfront.
package slot

import (
	"encoding/json"
	"fmt"
)

// Kind is the discriminator written to the "kind" field
type Kind string

const (
	KindNumber        Kind = "Number"
	KindOrdinal       Kind = "Ordinal"
	KindPercentage    Kind = "Percentage"
	KindInstantTime   Kind = "InstantTime"
	KindTimeInterval  Kind = "TimeInterval"
	KindAmountOfMoney Kind = "AmountOfMoney"
	KindTemperature   Kind = "Temperature"
	KindDuration      Kind = "Duration"
)

// Value is a normalized slot value. The set of implementations is closed.
type Value interface {
	Kind() Kind

	// Equal compares two values semantically. Number and Percentage magnitudes
	// use NearlyEqual; everything else is exact.
	Equal(other Value) bool

	isValue()
}

// TimeGrain is the granularity attached to an instant
type TimeGrain int

const (
	GrainYear TimeGrain = iota
	GrainQuarter
	GrainMonth
	GrainWeek
	GrainDay
	GrainHour
	GrainMinute
	GrainSecond
)

var grainNames = [...]string{"Year", "Quarter", "Month", "Week", "Day", "Hour", "Minute", "Second"}

func (g TimeGrain) String() string {
	if g < GrainYear || g > GrainSecond {
		return fmt.Sprintf("TimeGrain(%d)", int(g))
	}
	return grainNames[g]
}

func (g TimeGrain) MarshalJSON() ([]byte, error) {
	if g < GrainYear || g > GrainSecond {
		return nil, fmt.Errorf("invalid time grain %d", int(g))
	}
	return json.Marshal(grainNames[g])
}

func (g *TimeGrain) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range grainNames {
		if n == name {
			*g = TimeGrain(i)
			return nil
		}
	}
	return fmt.Errorf("unknown time grain %q", name)
}

// Precision mirrors the engine's confidence classification
type Precision int

const (
	Approximate Precision = iota
	Exact
)

func (p Precision) String() string {
	switch p {
	case Approximate:
		return "Approximate"
	case Exact:
		return "Exact"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

func (p Precision) MarshalJSON() ([]byte, error) {
	if p != Approximate && p != Exact {
		return nil, fmt.Errorf("invalid precision %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *Precision) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Approximate":
		*p = Approximate
	case "Exact":
		*p = Exact
	default:
		return fmt.Errorf("unknown precision %q", name)
	}
	return nil
}

// NumberValue is an integer or decimal number
type NumberValue struct {
	Value float64 `json:"value"`
}

// OrdinalValue is a rank
type OrdinalValue struct {
	Value int64 `json:"value"`
}

// PercentageValue is a percentage magnitude (50 for "50%")
type PercentageValue struct {
	Value float64 `json:"value"`
}

// InstantTimeValue is a point in time with its grain
type InstantTimeValue struct {
	Value     Instant   `json:"value"`
	Grain     TimeGrain `json:"grain"`
	Precision Precision `json:"precision"`
}

// TimeIntervalValue is a time range. A nil bound means the range is open on that side.
type TimeIntervalValue struct {
	From *Instant `json:"from"`
	To   *Instant `json:"to"`
}

// AmountOfMoneyValue is a monetary amount; Unit is nil for an unrecognized currency
type AmountOfMoneyValue struct {
	Value     float64   `json:"value"`
	Precision Precision `json:"precision"`
	Unit      *string   `json:"unit"`
}

// TemperatureValue is a temperature reading
type TemperatureValue struct {
	Value float64 `json:"value"`
	Unit  *string `json:"unit"`
}

// DurationValue is an amount of time split per grain
type DurationValue struct {
	Years     int64     `json:"years"`
	Quarters  int64     `json:"quarters"`
	Months    int64     `json:"months"`
	Weeks     int64     `json:"weeks"`
	Days      int64     `json:"days"`
	Hours     int64     `json:"hours"`
	Minutes   int64     `json:"minutes"`
	Seconds   int64     `json:"seconds"`
	Precision Precision `json:"precision"`
}

func (NumberValue) Kind() Kind        { return KindNumber }
func (OrdinalValue) Kind() Kind       { return KindOrdinal }
func (PercentageValue) Kind() Kind    { return KindPercentage }
func (InstantTimeValue) Kind() Kind   { return KindInstantTime }
func (TimeIntervalValue) Kind() Kind  { return KindTimeInterval }
func (AmountOfMoneyValue) Kind() Kind { return KindAmountOfMoney }
func (TemperatureValue) Kind() Kind   { return KindTemperature }
func (DurationValue) Kind() Kind      { return KindDuration }

func (NumberValue) isValue()        {}
func (OrdinalValue) isValue()       {}
func (PercentageValue) isValue()    {}
func (InstantTimeValue) isValue()   {}
func (TimeIntervalValue) isValue()  {}
func (AmountOfMoneyValue) isValue() {}
func (TemperatureValue) isValue()   {}
func (DurationValue) isValue()      {}

func (v NumberValue) Equal(other Value) bool {
	o, ok := other.(NumberValue)
	return ok && NearlyEqual(v.Value, o.Value)
}

func (v OrdinalValue) Equal(other Value) bool {
	o, ok := other.(OrdinalValue)
	return ok && v == o
}

func (v PercentageValue) Equal(other Value) bool {
	o, ok := other.(PercentageValue)
	return ok && NearlyEqual(v.Value, o.Value)
}

func (v InstantTimeValue) Equal(other Value) bool {
	o, ok := other.(InstantTimeValue)
	return ok && v.Value.Equal(o.Value.Time) && v.Grain == o.Grain && v.Precision == o.Precision
}

func (v TimeIntervalValue) Equal(other Value) bool {
	o, ok := other.(TimeIntervalValue)
	return ok && sameInstant(v.From, o.From) && sameInstant(v.To, o.To)
}

func (v AmountOfMoneyValue) Equal(other Value) bool {
	o, ok := other.(AmountOfMoneyValue)
	return ok && v.Value == o.Value && v.Precision == o.Precision && sameText(v.Unit, o.Unit)
}

func (v TemperatureValue) Equal(other Value) bool {
	o, ok := other.(TemperatureValue)
	return ok && v.Value == o.Value && sameText(v.Unit, o.Unit)
}

func (v DurationValue) Equal(other Value) bool {
	o, ok := other.(DurationValue)
	return ok && v == o
}

func sameInstant(a, b *Instant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b.Time)
}

func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Each variant serializes its own fields next to the kind tag. The local
// payload types drop the methods, so json.Marshal does not recurse.

func withKind(kind Kind, payload any) ([]byte, error) {
	fields, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(fields)+len(tag)+10)
	out = append(out, `{"kind":`...)
	out = append(out, tag...)
	if len(fields) > 2 {
		out = append(out, ',')
		out = append(out, fields[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

func (v NumberValue) MarshalJSON() ([]byte, error) {
	type payload NumberValue
	return withKind(KindNumber, payload(v))
}

func (v OrdinalValue) MarshalJSON() ([]byte, error) {
	type payload OrdinalValue
	return withKind(KindOrdinal, payload(v))
}

func (v PercentageValue) MarshalJSON() ([]byte, error) {
	type payload PercentageValue
	return withKind(KindPercentage, payload(v))
}

func (v InstantTimeValue) MarshalJSON() ([]byte, error) {
	type payload InstantTimeValue
	return withKind(KindInstantTime, payload(v))
}

func (v TimeIntervalValue) MarshalJSON() ([]byte, error) {
	type payload TimeIntervalValue
	return withKind(KindTimeInterval, payload(v))
}

func (v AmountOfMoneyValue) MarshalJSON() ([]byte, error) {
	type payload AmountOfMoneyValue
	return withKind(KindAmountOfMoney, payload(v))
}

func (v TemperatureValue) MarshalJSON() ([]byte, error) {
	type payload TemperatureValue
	return withKind(KindTemperature, payload(v))
}

func (v DurationValue) MarshalJSON() ([]byte, error) {
	type payload DurationValue
	return withKind(KindDuration, payload(v))
}
