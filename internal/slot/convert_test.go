package slot

import (
	"testing"
	"time"

	"github.com/ppiankov/slotparse/internal/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestFromOutput_Numbers(t *testing.T) {
	assert.Equal(t, NumberValue{Value: 42}, FromOutput(ontology.IntegerOutput{Value: 42}))
	assert.Equal(t, NumberValue{Value: -3.25}, FromOutput(ontology.FloatOutput{Value: -3.25}))
	assert.Equal(t, OrdinalValue{Value: 3}, FromOutput(ontology.OrdinalOutput{Value: 3}))
	assert.Equal(t, PercentageValue{Value: 12.5}, FromOutput(ontology.PercentageOutput{Value: 12.5}))
}

func TestFromOutput_Datetime(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	moment := time.Date(2024, 5, 1, 17, 30, 0, 0, paris)

	got := FromOutput(ontology.DatetimeOutput{
		Moment:    moment,
		Grain:     ontology.GrainMinute,
		Precision: ontology.PrecisionApproximate,
	})

	v, ok := got.(InstantTimeValue)
	require.True(t, ok)
	assert.True(t, v.Value.Equal(moment))
	assert.Equal(t, paris, v.Value.Location())
	assert.Equal(t, GrainMinute, v.Grain)
	assert.Equal(t, Approximate, v.Precision)
}

func TestFromOutput_GrainTable(t *testing.T) {
	want := []TimeGrain{GrainYear, GrainQuarter, GrainMonth, GrainWeek, GrainDay, GrainHour, GrainMinute, GrainSecond}
	for g := ontology.GrainYear; g <= ontology.GrainSecond; g++ {
		v := FromOutput(ontology.DatetimeOutput{Moment: time.Now(), Grain: g}).(InstantTimeValue)
		assert.Equal(t, want[g], v.Grain, g.String())
		assert.Equal(t, Exact, v.Precision)
	}
}

func TestFromOutput_Intervals(t *testing.T) {
	s := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)
	dt := ontology.DatetimeOutput{Moment: s, Grain: ontology.GrainHour}

	after := FromOutput(ontology.DatetimeIntervalOutput{Interval: ontology.After{Datetime: dt}}).(TimeIntervalValue)
	require.NotNil(t, after.From)
	assert.Nil(t, after.To)
	assert.True(t, after.From.Equal(s))

	before := FromOutput(ontology.DatetimeIntervalOutput{Interval: ontology.Before{Datetime: dt}}).(TimeIntervalValue)
	assert.Nil(t, before.From)
	require.NotNil(t, before.To)
	assert.True(t, before.To.Equal(s))

	between := FromOutput(ontology.DatetimeIntervalOutput{Interval: ontology.Between{
		Start:     s,
		End:       e,
		Bound:     ontology.GrainHour,
		Precision: ontology.PrecisionApproximate,
		Latent:    true,
	}}).(TimeIntervalValue)
	require.NotNil(t, between.From)
	require.NotNil(t, between.To)
	assert.True(t, between.From.Equal(s))
	assert.True(t, between.To.Equal(e))
}

func TestFromOutput_MoneyAndTemperature(t *testing.T) {
	unit := ptr("EUR")
	got := FromOutput(ontology.AmountOfMoneyOutput{Value: 10.5, Precision: ontology.PrecisionApproximate, Unit: unit})
	assert.Equal(t, AmountOfMoneyValue{Value: 10.5, Precision: Approximate, Unit: ptr("EUR")}, got)

	// the slot owns its unit text
	*unit = "USD"
	assert.Equal(t, "EUR", *got.(AmountOfMoneyValue).Unit)

	noUnit := FromOutput(ontology.AmountOfMoneyOutput{Value: 3})
	assert.Nil(t, noUnit.(AmountOfMoneyValue).Unit)
	assert.Equal(t, Exact, noUnit.(AmountOfMoneyValue).Precision)

	temp := FromOutput(ontology.TemperatureOutput{Value: -4, Unit: ptr("celsius"), Latent: true})
	assert.Equal(t, TemperatureValue{Value: -4, Unit: ptr("celsius")}, temp)
}

func TestFromOutput_DurationShortPeriod(t *testing.T) {
	period := make(ontology.Period, ontology.GrainDay+1)
	period[ontology.GrainMonth] = 2
	period[ontology.GrainDay] = 5

	got := FromOutput(ontology.DurationOutput{Period: period, Precision: ontology.PrecisionApproximate})
	assert.Equal(t, DurationValue{Months: 2, Days: 5, Precision: Approximate}, got)
}

func TestFromOutput_DurationFullAndEmpty(t *testing.T) {
	full := FromOutput(ontology.DurationOutput{Period: ontology.Period{1, 2, 3, 4, 5, 6, 7, 8}})
	assert.Equal(t, DurationValue{
		Years: 1, Quarters: 2, Months: 3, Weeks: 4, Days: 5, Hours: 6, Minutes: 7, Seconds: 8,
		Precision: Exact,
	}, full)

	empty := FromOutput(ontology.DurationOutput{})
	assert.Equal(t, DurationValue{Precision: Exact}, empty)
}

func TestFromOutput_Deterministic(t *testing.T) {
	outputs := []ontology.Output{
		ontology.IntegerOutput{Value: 7},
		ontology.DatetimeOutput{Moment: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), Grain: ontology.GrainSecond},
		ontology.AmountOfMoneyOutput{Value: 1, Unit: ptr("$")},
		ontology.DurationOutput{Period: ontology.Period{0, 0, 0, 1}},
		ontology.DatetimeIntervalOutput{Interval: ontology.Between{Start: time.Unix(0, 0), End: time.Unix(60, 0)}},
	}
	for _, o := range outputs {
		a, b := FromOutput(o), FromOutput(o)
		assert.Equal(t, a, b)
		assert.True(t, a.Equal(b))
		assert.Equal(t, string(a.Kind()), string(b.Kind()))
	}
}

func TestFromEntities_KeepsOrder(t *testing.T) {
	entities := []ontology.Entity{
		{Start: 10, End: 12, Value: ontology.OrdinalOutput{Value: 2}},
		{Start: 0, End: 2, Value: ontology.IntegerOutput{Value: 1}},
	}
	got := FromEntities(entities)
	require.Len(t, got, 2)
	assert.Equal(t, KindOrdinal, got[0].Kind())
	assert.Equal(t, KindNumber, got[1].Kind())

	assert.Empty(t, FromEntities(nil))
}
