package slot

import "github.com/ppiankov/slotparse/internal/ontology"

var grainTable = [ontology.GrainCount]TimeGrain{
	ontology.GrainYear:    GrainYear,
	ontology.GrainQuarter: GrainQuarter,
	ontology.GrainMonth:   GrainMonth,
	ontology.GrainWeek:    GrainWeek,
	ontology.GrainDay:     GrainDay,
	ontology.GrainHour:    GrainHour,
	ontology.GrainMinute:  GrainMinute,
	ontology.GrainSecond:  GrainSecond,
}

var precisionTable = map[ontology.Precision]Precision{
	ontology.PrecisionApproximate: Approximate,
	ontology.PrecisionExact:       Exact,
}

func translateGrain(g ontology.Grain) TimeGrain {
	return grainTable[g]
}

func translatePrecision(p ontology.Precision) Precision {
	return precisionTable[p]
}

// converter maps each raw output variant to its slot value
type converter struct {
	out Value
}

var (
	_ ontology.Visitor         = (*converter)(nil)
	_ ontology.IntervalVisitor = (*converter)(nil)
)

// FromOutput converts one raw extraction result. It is total over the
// ontology.Output variants.
func FromOutput(o ontology.Output) Value {
	c := &converter{}
	o.Accept(c)
	return c.out
}

// FromEntities converts parser entities, keeping their order
func FromEntities(entities []ontology.Entity) []Value {
	values := make([]Value, 0, len(entities))
	for _, e := range entities {
		values = append(values, FromOutput(e.Value))
	}
	return values
}

func (c *converter) VisitInteger(o ontology.IntegerOutput) {
	c.out = NumberValue{Value: float64(o.Value)}
}

func (c *converter) VisitFloat(o ontology.FloatOutput) {
	c.out = NumberValue{Value: o.Value}
}

func (c *converter) VisitOrdinal(o ontology.OrdinalOutput) {
	c.out = OrdinalValue{Value: o.Value}
}

func (c *converter) VisitPercentage(o ontology.PercentageOutput) {
	c.out = PercentageValue{Value: o.Value}
}

func (c *converter) VisitDatetime(o ontology.DatetimeOutput) {
	c.out = InstantTimeValue{
		Value:     NewInstant(o.Moment),
		Grain:     translateGrain(o.Grain),
		Precision: translatePrecision(o.Precision),
	}
}

func (c *converter) VisitDatetimeInterval(o ontology.DatetimeIntervalOutput) {
	o.Interval.AcceptInterval(c)
}

func (c *converter) VisitAfter(k ontology.After) {
	from := NewInstant(k.Datetime.Moment)
	c.out = TimeIntervalValue{From: &from}
}

func (c *converter) VisitBefore(k ontology.Before) {
	to := NewInstant(k.Datetime.Moment)
	c.out = TimeIntervalValue{To: &to}
}

// VisitBetween keeps only the bounds; grain, precision and latency of the
// interval are not part of the slot value.
func (c *converter) VisitBetween(k ontology.Between) {
	from := NewInstant(k.Start)
	to := NewInstant(k.End)
	c.out = TimeIntervalValue{From: &from, To: &to}
}

func (c *converter) VisitAmountOfMoney(o ontology.AmountOfMoneyOutput) {
	c.out = AmountOfMoneyValue{
		Value:     o.Value,
		Precision: translatePrecision(o.Precision),
		Unit:      copyText(o.Unit),
	}
}

func (c *converter) VisitTemperature(o ontology.TemperatureOutput) {
	c.out = TemperatureValue{
		Value: o.Value,
		Unit:  copyText(o.Unit),
	}
}

func (c *converter) VisitDuration(o ontology.DurationOutput) {
	p := o.Period
	c.out = DurationValue{
		Years:     p.Get(ontology.GrainYear),
		Quarters:  p.Get(ontology.GrainQuarter),
		Months:    p.Get(ontology.GrainMonth),
		Weeks:     p.Get(ontology.GrainWeek),
		Days:      p.Get(ontology.GrainDay),
		Hours:     p.Get(ontology.GrainHour),
		Minutes:   p.Get(ontology.GrainMinute),
		Seconds:   p.Get(ontology.GrainSecond),
		Precision: translatePrecision(o.Precision),
	}
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
