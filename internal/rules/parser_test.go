package rules

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/slotparse/internal/ontology"
)

// Tuesday
var refTime = time.Date(2013, 2, 12, 4, 30, 0, 0, time.UTC)

func parse(t *testing.T, lang ontology.Lang, text string, kinds ...ontology.OutputKind) []ontology.Entity {
	t.Helper()
	p, err := Build(lang)
	require.NoError(t, err)
	ctx := ontology.ResolverContext{ReferenceTime: refTime}
	var entities []ontology.Entity
	if len(kinds) == 0 {
		entities, err = p.Parse(text, ctx)
	} else {
		entities, err = p.ParseWithKindOrder(text, ctx, kinds)
	}
	require.NoError(t, err)
	return entities
}

func single(t *testing.T, lang ontology.Lang, text string) ontology.Output {
	t.Helper()
	entities := parse(t, lang, text)
	require.Len(t, entities, 1, "entities: %+v", entities)
	return entities[0].Value
}

func TestBuild_UnknownLanguage(t *testing.T) {
	_, err := Build(ontology.Lang("xx"))
	assert.ErrorIs(t, err, ontology.ErrUnknownLanguage)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		lang ontology.Lang
		text string
		want ontology.Output
	}{
		{"digits", ontology.LangEN, "42", ontology.IntegerOutput{Value: 42}},
		{"english words", ontology.LangEN, "forty two", ontology.IntegerOutput{Value: 42}},
		{"english hundred and", ontology.LangEN, "one hundred and five", ontology.IntegerOutput{Value: 105}},
		{"english thousands separator", ontology.LangEN, "1,500", ontology.IntegerOutput{Value: 1500}},
		{"english decimal", ontology.LangEN, "3.25", ontology.FloatOutput{Value: 3.25}},
		{"negative", ontology.LangEN, "-7", ontology.IntegerOutput{Value: -7}},
		{"french words", ontology.LangFR, "quarante deux", ontology.IntegerOutput{Value: 42}},
		{"french quatre-vingt-dix", ontology.LangFR, "quatre-vingt-dix", ontology.IntegerOutput{Value: 90}},
		{"french et un", ontology.LangFR, "vingt et un", ontology.IntegerOutput{Value: 21}},
		{"french decimal comma", ontology.LangFR, "3,5", ontology.FloatOutput{Value: 3.5}},
		{"japanese digits", ontology.LangJA, "42", ontology.IntegerOutput{Value: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, single(t, tt.lang, tt.text))
		})
	}
}

func TestNumbers_EveryLanguage(t *testing.T) {
	for _, lang := range ontology.AllLangs() {
		t.Run(string(lang), func(t *testing.T) {
			assert.Equal(t, ontology.IntegerOutput{Value: 42}, single(t, lang, "42"))
			assert.Equal(t, ontology.PercentageOutput{Value: 42}, single(t, lang, "42%"))
		})
	}
}

func TestDigitRules_PerLanguage(t *testing.T) {
	unit := func(s string) *string { return &s }
	tests := []struct {
		name string
		lang ontology.Lang
		text string
		want ontology.Output
	}{
		{"german decimal comma", ontology.LangDE, "3,5", ontology.FloatOutput{Value: 3.5}},
		{"german thousands dot", ontology.LangDE, "1.500", ontology.IntegerOutput{Value: 1500}},
		{"german percent", ontology.LangDE, "12,5 %", ontology.PercentageOutput{Value: 12.5}},
		{"german euros", ontology.LangDE, "12,50 €", ontology.AmountOfMoneyOutput{Value: 12.5, Unit: unit("EUR")}},
		{"italian decimal comma", ontology.LangIT, "7,25", ontology.FloatOutput{Value: 7.25}},
		{"spanish ordinal", ontology.LangES, "3º", ontology.OrdinalOutput{Value: 3}},
		{"portuguese ordinal", ontology.LangPT, "2ª", ontology.OrdinalOutput{Value: 2}},
		{"portuguese money", ontology.LangPT, "$20", ontology.AmountOfMoneyOutput{Value: 20, Unit: unit("$")}},
		{"japanese celsius", ontology.LangJA, "25°C", ontology.TemperatureOutput{Value: 25, Unit: unit("celsius")}},
		{"chinese yen prefix", ontology.LangZH, "¥100", ontology.AmountOfMoneyOutput{Value: 100, Unit: unit("JPY")}},
		{"chinese decimal", ontology.LangZH, "3.5", ontology.FloatOutput{Value: 3.5}},
		{"korean percent", ontology.LangKO, "12.5%", ontology.PercentageOutput{Value: 12.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, single(t, tt.lang, tt.text))
		})
	}
}

func TestDigitRules_AdjacentToCJK(t *testing.T) {
	for _, tt := range []struct {
		lang ontology.Lang
		text string
	}{
		{ontology.LangZH, "价格42元"},
		{ontology.LangJA, "りんごが42個"},
		{ontology.LangKO, "사과 42개"},
	} {
		entities := parse(t, tt.lang, tt.text)
		require.Len(t, entities, 1, "%s: %+v", tt.text, entities)
		assert.Equal(t, "42", entities[0].Text)
		assert.Equal(t, ontology.IntegerOutput{Value: 42}, entities[0].Value)
	}
}

func TestDigitRules_DatesWithoutWords(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		lang ontology.Lang
		text string
		want time.Time
	}{
		{ontology.LangDE, "15/03/2013", day(2013, 3, 15)},
		{ontology.LangZH, "2013-03-01", day(2013, 3, 1)},
		{ontology.LangKO, "2013-03-01", day(2013, 3, 1)},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.text, func(t *testing.T) {
			dt, ok := single(t, tt.lang, tt.text).(ontology.DatetimeOutput)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(dt.Moment), "want %s, got %s", tt.want, dt.Moment)
			assert.Equal(t, ontology.GrainDay, dt.Grain)
		})
	}
}

func TestNumbers_Int64Range(t *testing.T) {
	assert.Equal(t, ontology.IntegerOutput{Value: math.MaxInt64}, single(t, ontology.LangEN, "9223372036854775807"))
	assert.Equal(t, ontology.IntegerOutput{Value: math.MinInt64}, single(t, ontology.LangEN, "-9223372036854775808"))
	assert.Equal(t, ontology.FloatOutput{Value: 9223372036854775808}, single(t, ontology.LangEN, "9223372036854775808"))
	assert.Equal(t, ontology.FloatOutput{Value: -9223372036854775809}, single(t, ontology.LangEN, "-9223372036854775809"))
	assert.Equal(t, ontology.FloatOutput{Value: 1e20}, single(t, ontology.LangDE, "100.000.000.000.000.000.000"))
}

func TestOrdinals_OutOfRangeDropped(t *testing.T) {
	assert.Empty(t, parse(t, ontology.LangES, "99999999999999999999º", ontology.KindOrdinal))
	assert.Equal(t, ontology.OrdinalOutput{Value: math.MaxInt64}, single(t, ontology.LangES, "9223372036854775807º"))
}

func TestDurations_OutOfRangeDropped(t *testing.T) {
	assert.Empty(t, parse(t, ontology.LangEN, "99999999999999999999 years", ontology.KindDuration))
	// the fractional day carries 12 hours into an hour total already at the limit
	assert.Empty(t, parse(t, ontology.LangEN, "9223372036854775807 hours and 1.5 days", ontology.KindDuration))

	got := single(t, ontology.LangEN, "9223372036854775807 seconds")
	assert.Equal(t, ontology.DurationOutput{Period: ontology.Period{0, 0, 0, 0, 0, 0, 0, math.MaxInt64}}, got)
}

func TestNumbers_LoneWeakWordIsNotANumber(t *testing.T) {
	assert.Empty(t, parse(t, ontology.LangFR, "un chat"))
}

func TestOrdinals(t *testing.T) {
	assert.Equal(t, ontology.OrdinalOutput{Value: 3}, single(t, ontology.LangEN, "3rd"))
	assert.Equal(t, ontology.OrdinalOutput{Value: 1}, single(t, ontology.LangEN, "first"))
	assert.Equal(t, ontology.OrdinalOutput{Value: 1}, single(t, ontology.LangFR, "premier"))
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, ontology.PercentageOutput{Value: 50}, single(t, ontology.LangEN, "50%"))
	assert.Equal(t, ontology.PercentageOutput{Value: 12.5}, single(t, ontology.LangEN, "12.5 percent"))
	assert.Equal(t, ontology.PercentageOutput{Value: 50}, single(t, ontology.LangFR, "50 pour cent"))
	assert.Equal(t, ontology.PercentageOutput{Value: 42}, single(t, ontology.LangJA, "42%"))
}

func TestAmountOfMoney(t *testing.T) {
	got := single(t, ontology.LangEN, "$42.50")
	require.IsType(t, ontology.AmountOfMoneyOutput{}, got)
	money := got.(ontology.AmountOfMoneyOutput)
	assert.Equal(t, 42.5, money.Value)
	assert.Equal(t, ontology.PrecisionExact, money.Precision)
	require.NotNil(t, money.Unit)
	assert.Equal(t, "$", *money.Unit)

	got = single(t, ontology.LangEN, "about 20 euros")
	money = got.(ontology.AmountOfMoneyOutput)
	assert.Equal(t, 20.0, money.Value)
	assert.Equal(t, ontology.PrecisionApproximate, money.Precision)
	require.NotNil(t, money.Unit)
	assert.Equal(t, "EUR", *money.Unit)
}

func TestTemperature(t *testing.T) {
	tests := []struct {
		text  string
		value float64
		unit  string
	}{
		{"20°C", 20, "celsius"},
		{"-5 degrees", -5, "degree"},
		{"minus 10 degrees fahrenheit", -10, "fahrenheit"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := single(t, ontology.LangEN, tt.text)
			temp, ok := got.(ontology.TemperatureOutput)
			require.True(t, ok, "got %T", got)
			assert.Equal(t, tt.value, temp.Value)
			require.NotNil(t, temp.Unit)
			assert.Equal(t, tt.unit, *temp.Unit)
		})
	}
}

func TestDurations(t *testing.T) {
	tests := []struct {
		lang   ontology.Lang
		text   string
		period ontology.Period
	}{
		{ontology.LangEN, "3 hours", ontology.Period{0, 0, 0, 0, 0, 3}},
		{ontology.LangEN, "2 months and 5 days", ontology.Period{0, 0, 2, 0, 5}},
		{ontology.LangEN, "an hour", ontology.Period{0, 0, 0, 0, 0, 1}},
		{ontology.LangEN, "1.5 hours", ontology.Period{0, 0, 0, 0, 0, 1, 30}},
		{ontology.LangFR, "deux semaines", ontology.Period{0, 0, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := single(t, tt.lang, tt.text)
			assert.Equal(t, ontology.DurationOutput{Period: tt.period}, got)
		})
	}
}

func TestDatetimes(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		lang  ontology.Lang
		text  string
		want  time.Time
		grain ontology.Grain
	}{
		{ontology.LangEN, "tomorrow", day(2013, 2, 13), ontology.GrainDay},
		{ontology.LangEN, "yesterday", day(2013, 2, 11), ontology.GrainDay},
		{ontology.LangEN, "tuesday", day(2013, 2, 12), ontology.GrainDay},
		{ontology.LangEN, "next tuesday", day(2013, 2, 19), ontology.GrainDay},
		{ontology.LangEN, "2013-03-01", day(2013, 3, 1), ontology.GrainDay},
		{ontology.LangEN, "3/15/2013", day(2013, 3, 15), ontology.GrainDay},
		{ontology.LangEN, "may 5th", day(2013, 5, 5), ontology.GrainDay},
		{ontology.LangEN, "january 5", day(2014, 1, 5), ontology.GrainDay},
		{ontology.LangEN, "in 3 days", day(2013, 2, 15), ontology.GrainDay},
		{ontology.LangEN, "3 days ago", day(2013, 2, 9), ontology.GrainDay},
		{ontology.LangEN, "next month", day(2013, 3, 1), ontology.GrainMonth},
		{ontology.LangEN, "in 2014", day(2014, 1, 1), ontology.GrainYear},
		{ontology.LangEN, "5pm", time.Date(2013, 2, 12, 17, 0, 0, 0, time.UTC), ontology.GrainHour},
		{ontology.LangEN, "3am", time.Date(2013, 2, 13, 3, 0, 0, 0, time.UTC), ontology.GrainHour},
		{ontology.LangEN, "tomorrow at 5pm", time.Date(2013, 2, 13, 17, 0, 0, 0, time.UTC), ontology.GrainHour},
		{ontology.LangEN, "14:15", time.Date(2013, 2, 12, 14, 15, 0, 0, time.UTC), ontology.GrainMinute},
		{ontology.LangEN, "now", refTime, ontology.GrainSecond},
		{ontology.LangFR, "demain", day(2013, 2, 13), ontology.GrainDay},
		{ontology.LangFR, "demain à 17h", time.Date(2013, 2, 13, 17, 0, 0, 0, time.UTC), ontology.GrainHour},
		{ontology.LangFR, "le 5 mai", day(2013, 5, 5), ontology.GrainDay},
		{ontology.LangFR, "il y a 3 jours", day(2013, 2, 9), ontology.GrainDay},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.text, func(t *testing.T) {
			got := single(t, tt.lang, tt.text)
			dt, ok := got.(ontology.DatetimeOutput)
			require.True(t, ok, "got %T", got)
			assert.True(t, tt.want.Equal(dt.Moment), "want %s, got %s", tt.want, dt.Moment)
			assert.Equal(t, tt.grain, dt.Grain)
		})
	}
}

func TestDatetime_InvalidCalendarDateIgnored(t *testing.T) {
	for _, e := range parse(t, ontology.LangEN, "2013-02-30") {
		assert.NotEqual(t, ontology.KindDatetime, e.Value.Kind())
	}
}

func TestIntervals(t *testing.T) {
	t.Run("between", func(t *testing.T) {
		got := single(t, ontology.LangEN, "between 9am and 11am")
		iv, ok := got.(ontology.DatetimeIntervalOutput)
		require.True(t, ok, "got %T", got)
		between, ok := iv.Interval.(ontology.Between)
		require.True(t, ok)
		assert.True(t, between.Start.Equal(time.Date(2013, 2, 12, 9, 0, 0, 0, time.UTC)))
		assert.True(t, between.End.Equal(time.Date(2013, 2, 12, 11, 0, 0, 0, time.UTC)))
		assert.Equal(t, ontology.GrainHour, between.Bound)
	})

	t.Run("after", func(t *testing.T) {
		got := single(t, ontology.LangEN, "after 5pm")
		iv := got.(ontology.DatetimeIntervalOutput)
		after, ok := iv.Interval.(ontology.After)
		require.True(t, ok)
		assert.True(t, after.Datetime.Moment.Equal(time.Date(2013, 2, 12, 17, 0, 0, 0, time.UTC)))
	})

	t.Run("before", func(t *testing.T) {
		got := single(t, ontology.LangEN, "before tomorrow")
		iv := got.(ontology.DatetimeIntervalOutput)
		_, ok := iv.Interval.(ontology.Before)
		assert.True(t, ok)
	})

	t.Run("dash between clock times wraps midnight", func(t *testing.T) {
		got := single(t, ontology.LangEN, "10pm-2am")
		iv := got.(ontology.DatetimeIntervalOutput)
		between := iv.Interval.(ontology.Between)
		assert.True(t, between.Start.Equal(time.Date(2013, 2, 12, 22, 0, 0, 0, time.UTC)))
		assert.True(t, between.End.Equal(time.Date(2013, 2, 13, 2, 0, 0, 0, time.UTC)))
	})
}

func TestParse_DefaultOrderMixedEntities(t *testing.T) {
	entities := parse(t, ontology.LangEN, "tomorrow I will work for 3 hours")
	require.Len(t, entities, 2)
	assert.Equal(t, ontology.KindDatetime, entities[0].Value.Kind())
	assert.Equal(t, "tomorrow", entities[0].Text)
	assert.Equal(t, ontology.KindDuration, entities[1].Value.Kind())
	assert.Equal(t, "3 hours", entities[1].Text)
}

func TestParseWithKindOrder(t *testing.T) {
	t.Run("restricts to requested kinds", func(t *testing.T) {
		entities := parse(t, ontology.LangEN, "tomorrow I will work for 3 hours", ontology.KindDuration)
		require.Len(t, entities, 1)
		assert.Equal(t, ontology.KindDuration, entities[0].Value.Kind())
	})

	t.Run("earlier kind wins on overlap", func(t *testing.T) {
		entities := parse(t, ontology.LangEN, "3 hours", ontology.KindNumber, ontology.KindDuration)
		require.Len(t, entities, 1)
		assert.Equal(t, ontology.IntegerOutput{Value: 3}, entities[0].Value)

		entities = parse(t, ontology.LangEN, "3 hours", ontology.KindDuration, ontology.KindNumber)
		require.Len(t, entities, 1)
		assert.Equal(t, ontology.KindDuration, entities[0].Value.Kind())
	})

	t.Run("results stay in input order", func(t *testing.T) {
		entities := parse(t, ontology.LangEN, "42 and 7%", ontology.KindPercentage, ontology.KindNumber)
		require.Len(t, entities, 2)
		assert.Equal(t, ontology.IntegerOutput{Value: 42}, entities[0].Value)
		assert.Equal(t, ontology.PercentageOutput{Value: 7}, entities[1].Value)
	})

	t.Run("date refinement", func(t *testing.T) {
		entities := parse(t, ontology.LangEN, "tomorrow at 5pm or friday", ontology.KindDate)
		require.Len(t, entities, 2)
		assert.Equal(t, "tomorrow", entities[0].Text)
		assert.Equal(t, "friday", entities[1].Text)
	})
}

func TestParse_MalformedQuery(t *testing.T) {
	p, err := Build(ontology.LangEN, MaxQueryBytes(8))
	require.NoError(t, err)
	ctx := ontology.ResolverContext{ReferenceTime: refTime}

	_, err = p.Parse("\xff\xfe", ctx)
	assert.ErrorIs(t, err, ErrMalformedQuery)

	_, err = p.Parse(strings.Repeat("1 ", 10), ctx)
	assert.ErrorIs(t, err, ErrMalformedQuery)

	_, err = p.ParseWithKindOrder("\xff", ctx, []ontology.OutputKind{ontology.KindNumber})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestParse_Deterministic(t *testing.T) {
	text := "between 9am and 11am tomorrow I pay $20 for 2 hours"
	first := parse(t, ontology.LangEN, text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, parse(t, ontology.LangEN, text))
	}
}
