package ontology

import "time"

// Output is the raw extraction result. The variant set is closed: only types
// in this package implement it, and each one dispatches to a dedicated
// Visitor method.
type Output interface {
	// Kind returns the primary output kind of the variant
	Kind() OutputKind

	// Accept calls the visitor method matching the variant
	Accept(v Visitor)

	isOutput()
}

// Visitor has one method per Output variant. Adding a variant adds a method
// here, which breaks every implementation until it handles the new case.
type Visitor interface {
	VisitInteger(IntegerOutput)
	VisitFloat(FloatOutput)
	VisitOrdinal(OrdinalOutput)
	VisitPercentage(PercentageOutput)
	VisitDatetime(DatetimeOutput)
	VisitDatetimeInterval(DatetimeIntervalOutput)
	VisitAmountOfMoney(AmountOfMoneyOutput)
	VisitTemperature(TemperatureOutput)
	VisitDuration(DurationOutput)
}

// IntegerOutput is a whole number
type IntegerOutput struct {
	Value int64
}

// FloatOutput is a number with a fractional part
type FloatOutput struct {
	Value float64
}

// OrdinalOutput is a rank such as "3rd"
type OrdinalOutput struct {
	Value int64
}

// PercentageOutput is a percentage magnitude, e.g. 12.5 for "12.5%"
type PercentageOutput struct {
	Value float64
}

// DatetimeOutput is a resolved point in time
type DatetimeOutput struct {
	Moment    time.Time
	Grain     Grain
	Precision Precision
	Latent    bool
}

// DatetimeIntervalOutput is an open or closed time range
type DatetimeIntervalOutput struct {
	Interval IntervalKind
}

// AmountOfMoneyOutput is a monetary amount. Unit is nil when no currency was recognized.
type AmountOfMoneyOutput struct {
	Value     float64
	Precision Precision
	Unit      *string
}

// TemperatureOutput is a temperature reading
type TemperatureOutput struct {
	Value  float64
	Unit   *string
	Latent bool
}

// DurationOutput is an amount of time expressed per grain
type DurationOutput struct {
	Period    Period
	Precision Precision
}

func (IntegerOutput) Kind() OutputKind          { return KindNumber }
func (FloatOutput) Kind() OutputKind            { return KindNumber }
func (OrdinalOutput) Kind() OutputKind          { return KindOrdinal }
func (PercentageOutput) Kind() OutputKind       { return KindPercentage }
func (DatetimeOutput) Kind() OutputKind         { return KindDatetime }
func (DatetimeIntervalOutput) Kind() OutputKind { return KindDatetimeInterval }
func (AmountOfMoneyOutput) Kind() OutputKind    { return KindAmountOfMoney }
func (TemperatureOutput) Kind() OutputKind      { return KindTemperature }
func (DurationOutput) Kind() OutputKind         { return KindDuration }

func (o IntegerOutput) Accept(v Visitor)          { v.VisitInteger(o) }
func (o FloatOutput) Accept(v Visitor)            { v.VisitFloat(o) }
func (o OrdinalOutput) Accept(v Visitor)          { v.VisitOrdinal(o) }
func (o PercentageOutput) Accept(v Visitor)       { v.VisitPercentage(o) }
func (o DatetimeOutput) Accept(v Visitor)         { v.VisitDatetime(o) }
func (o DatetimeIntervalOutput) Accept(v Visitor) { v.VisitDatetimeInterval(o) }
func (o AmountOfMoneyOutput) Accept(v Visitor)    { v.VisitAmountOfMoney(o) }
func (o TemperatureOutput) Accept(v Visitor)      { v.VisitTemperature(o) }
func (o DurationOutput) Accept(v Visitor)         { v.VisitDuration(o) }

func (IntegerOutput) isOutput()          {}
func (FloatOutput) isOutput()            {}
func (OrdinalOutput) isOutput()          {}
func (PercentageOutput) isOutput()       {}
func (DatetimeOutput) isOutput()         {}
func (DatetimeIntervalOutput) isOutput() {}
func (AmountOfMoneyOutput) isOutput()    {}
func (TemperatureOutput) isOutput()      {}
func (DurationOutput) isOutput()         {}

// IntervalKind distinguishes open and closed intervals. Closed set, like Output.
type IntervalKind interface {
	AcceptInterval(v IntervalVisitor)

	// Grain is the granularity of the interval bounds
	Grain() Grain

	isIntervalKind()
}

// IntervalVisitor has one method per IntervalKind variant
type IntervalVisitor interface {
	VisitAfter(After)
	VisitBefore(Before)
	VisitBetween(Between)
}

// After is an interval open towards the future
type After struct {
	Datetime DatetimeOutput
}

// Before is an interval open towards the past
type Before struct {
	Datetime DatetimeOutput
}

// Between is a bounded interval
type Between struct {
	Start     time.Time
	End       time.Time
	Bound     Grain
	Precision Precision
	Latent    bool
}

func (k After) AcceptInterval(v IntervalVisitor)   { v.VisitAfter(k) }
func (k Before) AcceptInterval(v IntervalVisitor)  { v.VisitBefore(k) }
func (k Between) AcceptInterval(v IntervalVisitor) { v.VisitBetween(k) }

func (k After) Grain() Grain   { return k.Datetime.Grain }
func (k Before) Grain() Grain  { return k.Datetime.Grain }
func (k Between) Grain() Grain { return k.Bound }

func (After) isIntervalKind()   {}
func (Before) isIntervalKind()  {}
func (Between) isIntervalKind() {}
