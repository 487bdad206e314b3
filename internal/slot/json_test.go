package slot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_KindTagged(t *testing.T) {
	moment := time.Date(2024, 2, 29, 8, 5, 9, 0, time.UTC)
	from := NewInstant(moment)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"number", NumberValue{Value: 42}, `{"kind":"Number","value":42}`},
		{"ordinal", OrdinalValue{Value: 2}, `{"kind":"Ordinal","value":2}`},
		{"percentage", PercentageValue{Value: 12.5}, `{"kind":"Percentage","value":12.5}`},
		{
			"instant",
			InstantTimeValue{Value: from, Grain: GrainDay, Precision: Exact},
			`{"kind":"InstantTime","value":"2024-02-29 08:05:09","grain":"Day","precision":"Exact"}`,
		},
		{"open interval", TimeIntervalValue{From: &from}, `{"kind":"TimeInterval","from":"2024-02-29 08:05:09","to":null}`},
		{
			"money without unit",
			AmountOfMoneyValue{Value: 3, Precision: Approximate},
			`{"kind":"AmountOfMoney","value":3,"precision":"Approximate","unit":null}`,
		},
		{"temperature", TemperatureValue{Value: -2, Unit: ptr("celsius")}, `{"kind":"Temperature","value":-2,"unit":"celsius"}`},
		{
			"duration",
			DurationValue{Months: 2, Days: 5, Precision: Exact},
			`{"kind":"Duration","years":0,"quarters":0,"months":2,"weeks":0,"days":5,"hours":0,"minutes":0,"seconds":0,"precision":"Exact"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestInstant_SerializeUsesLocalComponents(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	moment := time.Date(2021, 12, 31, 23, 59, 58, 0, tokyo)

	data, err := json.Marshal(NewInstant(moment))
	require.NoError(t, err)
	assert.Equal(t, `"2021-12-31 23:59:58"`, string(data))
	assert.Equal(t, "2021-12-31 23:59:58", NewInstant(moment).String())
}

// Decoding ignores the encoded text and yields the current time. This is the
// documented behaviour, not a round trip.
func TestInstant_DeserializeYieldsNow(t *testing.T) {
	encoded := NewInstant(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(encoded)
	require.NoError(t, err)

	before := time.Now()
	var decoded Instant
	require.NoError(t, json.Unmarshal(data, &decoded))
	after := time.Now()

	assert.False(t, decoded.Equal(encoded.Time))
	assert.False(t, decoded.Before(before))
	assert.False(t, decoded.After(after))

	var garbage Instant
	require.NoError(t, json.Unmarshal([]byte(`"not a date"`), &garbage))
	assert.WithinDuration(t, time.Now(), garbage.Time, time.Minute)
}

func TestTimeInterval_DeserializeYieldsNowForBothBounds(t *testing.T) {
	fixed := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	var v TimeIntervalValue
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"TimeInterval","from":null,"to":"2001-01-01 00:00:00"}`), &v))
	require.NotNil(t, v.From)
	require.NotNil(t, v.To)
	assert.True(t, v.From.Equal(fixed))
	assert.True(t, v.To.Equal(fixed))
}

func TestParseInstant_RoundTrips(t *testing.T) {
	loc := time.FixedZone("X", -3*60*60)
	moment := time.Date(2024, 7, 14, 6, 7, 8, 0, loc)

	got, err := ParseInstant(NewInstant(moment).String(), loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(moment))

	_, err = ParseInstant("14/07/2024", loc)
	assert.Error(t, err)
}

func TestList_DecodesHeterogeneousSequence(t *testing.T) {
	in := List{
		NumberValue{Value: 1.5},
		OrdinalValue{Value: 1},
		DurationValue{Hours: 2, Precision: Approximate},
		AmountOfMoneyValue{Value: 5, Precision: Exact, Unit: ptr("EUR")},
		TemperatureValue{Value: 20},
		PercentageValue{Value: 3},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out List
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, len(in))
	assert.True(t, in.Equal(out))
	for i := range in {
		assert.Equal(t, in[i].Kind(), out[i].Kind())
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"Mystery","value":1}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Decode([]byte(`{"kind":"Duration","precision":"Sometimes"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`[1,2]`))
	assert.Error(t, err)

	var l List
	assert.Error(t, json.Unmarshal([]byte(`[{"kind":"Number","value":1},{"kind":"Nope"}]`), &l))
}

func TestDecode_InstantTimeKeepsGrain(t *testing.T) {
	v, err := Decode([]byte(`{"kind":"InstantTime","value":"2010-10-10 10:10:10","grain":"Week","precision":"Approximate"}`))
	require.NoError(t, err)
	it, ok := v.(InstantTimeValue)
	require.True(t, ok)
	assert.Equal(t, GrainWeek, it.Grain)
	assert.Equal(t, Approximate, it.Precision)
}
