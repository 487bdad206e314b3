package rules

import (
	"strings"

	"github.com/ppiankov/slotparse/internal/ontology"
	"github.com/shopspring/decimal"
)

// approxBefore extends a span over a leading "about"/"environ" qualifier
func (p *Parser) approxBefore(text string, start int) (int, bool) {
	if loc := matchBefore(p.re.approx, text, start); loc != nil {
		return loc[0], true
	}
	return start, false
}

func precisionOf(approx bool) ontology.Precision {
	if approx {
		return ontology.PrecisionApproximate
	}
	return ontology.PrecisionExact
}

func (p *Parser) percentageCandidates(text string, nums []number) []candidate {
	var out []candidate
	for _, n := range nums {
		loc := matchAfter(p.re.percent, text, n.end)
		if loc == nil {
			continue
		}
		out = append(out, candidate{
			start:  n.start,
			end:    loc[1],
			output: ontology.PercentageOutput{Value: n.value.InexactFloat64()},
		})
	}
	return out
}

func (p *Parser) moneyCandidates(text string, nums []number) []candidate {
	var out []candidate
	for _, n := range nums {
		start, end := n.start, n.end
		var unit string

		if loc := matchBefore(p.re.currencyPrefix, text, n.start); loc != nil {
			unit = symbolCurrencies[strings.ToLower(group(text, loc, 1))]
			start = loc[0]
		} else if loc := matchAfter(p.re.currencySymbol, text, n.end); loc != nil {
			unit = symbolCurrencies[strings.ToLower(group(text, loc, 1))]
			end = loc[1]
		} else if loc := matchAfter(p.re.currencyWord, text, n.end); loc != nil {
			word := strings.Join(strings.Fields(strings.ToLower(group(text, loc, 1))), " ")
			unit = p.lex.currencyWords[word]
			end = loc[1]
		} else {
			continue
		}

		start, approx := p.approxBefore(text, start)
		out = append(out, candidate{
			start: start,
			end:   end,
			output: ontology.AmountOfMoneyOutput{
				Value:     n.value.InexactFloat64(),
				Precision: precisionOf(approx),
				Unit:      textPtr(unit),
			},
		})
	}
	return out
}

func (p *Parser) temperatureCandidates(text string, nums []number) []candidate {
	var out []candidate
	for _, n := range nums {
		var unit string
		end := n.end

		if loc := matchAfter(p.re.degreeSymbol, text, n.end); loc != nil {
			switch strings.ToLower(group(text, loc, 1)) {
			case "c":
				unit = "celsius"
			case "f":
				unit = "fahrenheit"
			case "k":
				unit = "kelvin"
			default:
				unit = "degree"
			}
			end = loc[1]
		} else if loc := matchAfter(p.re.temperatureWord, text, n.end); loc != nil {
			unit = p.lex.temperatureWords[strings.ToLower(group(text, loc, 1))]
			if scaleWord := group(text, loc, 2); scaleWord != "" {
				unit = p.lex.temperatureWords[strings.ToLower(scaleWord)]
			}
			end = loc[1]
		} else {
			continue
		}

		start := n.start
		value := n.value
		if loc := matchBefore(p.re.minus, text, n.start); loc != nil && value.IsPositive() {
			start = loc[0]
			value = value.Neg()
		}

		out = append(out, candidate{
			start:  start,
			end:    end,
			output: ontology.TemperatureOutput{Value: value.InexactFloat64(), Unit: textPtr(unit)},
		})
	}
	return out
}

// durationPart is one "<quantity> <unit>" segment of a duration
type durationPart struct {
	start, end int
	grain      ontology.Grain
	value      decimal.Decimal
}

// subunits splits a fractional amount of a grain into the next finer one
var subunits = map[ontology.Grain]struct {
	grain  ontology.Grain
	factor int64
}{
	ontology.GrainDay:    {ontology.GrainHour, 24},
	ontology.GrainHour:   {ontology.GrainMinute, 60},
	ontology.GrainMinute: {ontology.GrainSecond, 60},
}

func (p *Parser) durationParts(text string, nums []number) []durationPart {
	quantities := make([]number, 0, len(nums))
	for _, n := range nums {
		if !n.value.IsNegative() && fitsInt64(n.value) {
			quantities = append(quantities, n)
		}
	}
	for _, loc := range findAll(p.re.article, text) {
		quantities = append(quantities, number{start: loc[0], end: loc[1], value: decimal.NewFromInt(1), integral: true})
	}

	var parts []durationPart
	for _, q := range quantities {
		loc := matchAfter(p.re.durationUnit, text, q.end)
		if loc == nil {
			continue
		}
		grain := p.lex.durationUnits[strings.ToLower(group(text, loc, 1))]
		if !q.integral {
			if _, ok := subunits[grain]; !ok {
				continue
			}
		}
		parts = append(parts, durationPart{start: q.start, end: loc[1], grain: grain, value: q.value})
	}
	sortByStart(parts, func(d durationPart) int { return d.start })
	return parts
}

// duration is a chain of parts such as "2 months and 5 days"
type duration struct {
	start, end int
	period     ontology.Period
	finest     ontology.Grain
	approx     bool
}

func (p *Parser) durations(text string, nums []number) []duration {
	parts := p.durationParts(text, nums)

	var out []duration
	for i := 0; i < len(parts); {
		var amounts [ontology.GrainCount]int64
		seen := map[ontology.Grain]bool{}
		finest := parts[i].grain
		end := parts[i].end

		overflow := false
		j := i
		for ; j < len(parts); j++ {
			part := parts[j]
			if j > i && (part.start < end || !p.re.durationJoin.MatchString(text[end:part.start])) {
				break
			}
			if seen[part.grain] {
				break
			}
			seen[part.grain] = true
			if !addAmount(&amounts, part.grain, part.value) {
				overflow = true
			}
			if part.grain > finest {
				finest = part.grain
			}
			if sub, ok := subunits[part.grain]; ok && !part.value.Equal(part.value.Floor()) && sub.grain > finest {
				finest = sub.grain
			}
			end = part.end
		}

		if overflow {
			i = j
			continue
		}
		start, approx := p.approxBefore(text, parts[i].start)
		out = append(out, duration{
			start:  start,
			end:    end,
			period: append(ontology.Period(nil), amounts[:finest+1]...),
			finest: finest,
			approx: approx,
		})
		i = j
	}
	return out
}

// addAmount adds value to its grain, carrying a fraction into the next finer
// grain. It reports false when a total would leave the int64 range.
func addAmount(amounts *[ontology.GrainCount]int64, grain ontology.Grain, value decimal.Decimal) bool {
	whole := value.Floor()
	if !addInt64(&amounts[grain], whole) {
		return false
	}
	if frac := value.Sub(whole); !frac.IsZero() {
		if sub, ok := subunits[grain]; ok {
			return addInt64(&amounts[sub.grain], frac.Mul(decimal.NewFromInt(sub.factor)).Round(0))
		}
	}
	return true
}

func addInt64(total *int64, d decimal.Decimal) bool {
	sum := decimal.NewFromInt(*total).Add(d)
	if !fitsInt64(sum) {
		return false
	}
	*total = sum.IntPart()
	return true
}

func (p *Parser) durationCandidates(durations []duration) []candidate {
	out := make([]candidate, 0, len(durations))
	for _, d := range durations {
		out = append(out, candidate{
			start: d.start,
			end:   d.end,
			output: ontology.DurationOutput{
				Period:    d.period,
				Precision: precisionOf(d.approx),
			},
		})
	}
	return out
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
