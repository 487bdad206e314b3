package ontology

import (
	"fmt"
	"strings"
)

// OutputKind names a class of extraction the caller can ask for
type OutputKind string

const (
	KindNumber           OutputKind = "number"
	KindOrdinal          OutputKind = "ordinal"
	KindPercentage       OutputKind = "percentage"
	KindDatetime         OutputKind = "datetime"
	KindDatetimeInterval OutputKind = "datetime-interval"
	KindAmountOfMoney    OutputKind = "amount-of-money"
	KindTemperature      OutputKind = "temperature"
	KindDuration         OutputKind = "duration"

	// Refinements of datetime and datetime-interval by grain
	KindDate       OutputKind = "date"
	KindTime       OutputKind = "time"
	KindDatePeriod OutputKind = "date-period"
	KindTimePeriod OutputKind = "time-period"
)

// AllKinds lists every kind in the default priority order
func AllKinds() []OutputKind {
	return []OutputKind{
		KindNumber,
		KindOrdinal,
		KindDatetime,
		KindDatetimeInterval,
		KindAmountOfMoney,
		KindTemperature,
		KindDuration,
		KindPercentage,
		KindDate,
		KindTime,
		KindDatePeriod,
		KindTimePeriod,
	}
}

// foldKind normalizes "AmountOfMoney", "amount_of_money" and
// "amount-of-money" to the same key
func foldKind(name string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

var kindsByFold = func() map[string]OutputKind {
	m := make(map[string]OutputKind)
	for _, k := range AllKinds() {
		m[foldKind(string(k))] = k
	}
	return m
}()

// ParseOutputKind resolves a kind identifier. Both the canonical names
// ("amount-of-money") and the PascalCase names ("AmountOfMoney") are accepted.
func ParseOutputKind(name string) (OutputKind, error) {
	if k, ok := kindsByFold[foldKind(name)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Matches reports whether an output satisfies this kind
func (k OutputKind) Matches(o Output) bool {
	switch v := o.(type) {
	case IntegerOutput, FloatOutput:
		return k == KindNumber
	case OrdinalOutput:
		return k == KindOrdinal
	case PercentageOutput:
		return k == KindPercentage
	case AmountOfMoneyOutput:
		return k == KindAmountOfMoney
	case TemperatureOutput:
		return k == KindTemperature
	case DurationOutput:
		return k == KindDuration
	case DatetimeOutput:
		switch k {
		case KindDatetime:
			return true
		case KindDate:
			return v.Grain.IsDateGrain()
		case KindTime:
			return !v.Grain.IsDateGrain()
		}
	case DatetimeIntervalOutput:
		switch k {
		case KindDatetimeInterval:
			return true
		case KindDatePeriod:
			return v.Interval.Grain().IsDateGrain()
		case KindTimePeriod:
			return !v.Interval.Grain().IsDateGrain()
		}
	}
	return false
}
