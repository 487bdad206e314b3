package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/slotparse/internal/ontology"
)

// moment is a datetime candidate together with what it was built from, so
// the composition and interval rules know how to combine it
type moment struct {
	start, end int
	out        ontology.DatetimeOutput
	day        bool // a calendar day: "tomorrow", "monday", "may 5"
	clock      bool // a time of day: "5pm"
	weekday    bool
	h, m, s    int
}

func startOfGrain(t time.Time, g ontology.Grain) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch g {
	case ontology.GrainYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case ontology.GrainQuarter:
		return time.Date(y, ((mo-1)/3)*3+1, 1, 0, 0, 0, 0, loc)
	case ontology.GrainMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case ontology.GrainWeek:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, mo, d-back, 0, 0, 0, 0, loc)
	case ontology.GrainDay:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case ontology.GrainHour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case ontology.GrainMinute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	default:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	}
}

func shiftGrain(t time.Time, g ontology.Grain, n int) time.Time {
	switch g {
	case ontology.GrainYear:
		return t.AddDate(n, 0, 0)
	case ontology.GrainQuarter:
		return t.AddDate(0, 3*n, 0)
	case ontology.GrainMonth:
		return t.AddDate(0, n, 0)
	case ontology.GrainWeek:
		return t.AddDate(0, 0, 7*n)
	case ontology.GrainDay:
		return t.AddDate(0, 0, n)
	case ontology.GrainHour:
		return t.Add(time.Duration(n) * time.Hour)
	case ontology.GrainMinute:
		return t.Add(time.Duration(n) * time.Minute)
	default:
		return t.Add(time.Duration(n) * time.Second)
	}
}

func dayMoment(start, end int, t time.Time) moment {
	return moment{
		start: start,
		end:   end,
		out:   ontology.DatetimeOutput{Moment: startOfGrain(t, ontology.GrainDay), Grain: ontology.GrainDay},
		day:   true,
	}
}

// calendarDate validates y-m-d; time.Date would silently normalize Feb 30
func calendarDate(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return t, t.Year() == y && t.Month() == m && t.Day() == d
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// dayMoments finds expressions resolving to a whole calendar day
func (p *Parser) dayMoments(text string, ref time.Time) []moment {
	var out []moment
	today := startOfGrain(ref, ontology.GrainDay)
	loc := ref.Location()

	for _, m := range findAll(p.re.dayWord, text) {
		phrase := strings.Join(strings.Fields(strings.ToLower(text[m[0]:m[1]])), " ")
		if offset, ok := p.lex.dayOffsets[phrase]; ok {
			out = append(out, dayMoment(m[0], m[1], today.AddDate(0, 0, offset)))
		}
	}

	if p.re.weekday != nil {
		wdIdx, nextIdx := p.re.weekday.SubexpIndex("wd"), p.re.weekday.SubexpIndex("next")
		for _, m := range findAll(p.re.weekday, text) {
			wd := p.lex.weekdays[strings.ToLower(group(text, m, wdIdx))]
			ahead := (int(wd) - int(ref.Weekday()) + 7) % 7
			if ahead == 0 && group(text, m, nextIdx) != "" {
				ahead = 7
			}
			dm := dayMoment(m[0], m[1], today.AddDate(0, 0, ahead))
			dm.weekday = true
			out = append(out, dm)
		}
	}

	for _, m := range findAll(isoDate, text) {
		if group(text, m, 4) != "" {
			continue
		}
		if t, ok := calendarDate(atoi(group(text, m, 1)), time.Month(atoi(group(text, m, 2))), atoi(group(text, m, 3)), loc); ok {
			out = append(out, dayMoment(m[0], m[1], t))
		}
	}

	for _, m := range findAll(slashDate, text) {
		a, b := atoi(group(text, m, 1)), atoi(group(text, m, 2))
		month, d := b, a
		if p.lex.monthFirst {
			month, d = a, b
		}
		if t, ok := calendarDate(atoi(group(text, m, 3)), time.Month(month), d, loc); ok {
			out = append(out, dayMoment(m[0], m[1], t))
		}
	}

	for _, re := range []*regexpWithGroups{p.re.monthDay, p.re.dayMonth} {
		if re == nil {
			continue
		}
		for _, m := range findAll(re.Regexp, text) {
			month := p.lex.months[strings.ToLower(group(text, m, re.month))]
			d := atoi(group(text, m, re.day))
			year := ref.Year()
			explicitYear := group(text, m, re.year) != ""
			if explicitYear {
				year = atoi(group(text, m, re.year))
			}
			t, ok := calendarDate(year, month, d, loc)
			if !ok {
				continue
			}
			if !explicitYear && t.Before(today) {
				if t, ok = calendarDate(year+1, month, d, loc); !ok {
					continue
				}
			}
			out = append(out, dayMoment(m[0], m[1], t))
		}
	}

	// "on monday", "le 5 mai"
	for i := range out {
		if loc := matchBefore(p.re.dayPrefix, text, out[i].start); loc != nil {
			out[i].start = loc[0]
		}
	}
	return out
}

// clockMoments finds times of day, resolved to their next occurrence
func (p *Parser) clockMoments(text string, ref time.Time) []moment {
	var out []moment
	add := func(start, end, h, m, s int, grain ontology.Grain) {
		if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
			return
		}
		y, mo, d := ref.Date()
		t := time.Date(y, mo, d, h, m, s, 0, ref.Location())
		if t.Before(startOfGrain(ref, grain)) {
			t = t.AddDate(0, 0, 1)
		}
		start, approx := p.approxBefore(text, start)
		out = append(out, moment{
			start: start,
			end:   end,
			out:   ontology.DatetimeOutput{Moment: t, Grain: grain, Precision: precisionOf(approx)},
			clock: true,
			h:     h, m: m, s: s,
		})
	}

	for _, m := range findAll(p.re.clock12, text) {
		h := atoi(group(text, m, 1))
		if h < 1 || h > 12 {
			continue
		}
		h %= 12
		if strings.EqualFold(group(text, m, 3), "p") {
			h += 12
		}
		grain := ontology.GrainHour
		if group(text, m, 2) != "" {
			grain = ontology.GrainMinute
		}
		add(m[0], m[1], h, atoi(group(text, m, 2)), 0, grain)
	}

	for _, m := range findAll(clock24, text) {
		grain := ontology.GrainMinute
		if group(text, m, 3) != "" {
			grain = ontology.GrainSecond
		}
		add(m[0], m[1], atoi(group(text, m, 1)), atoi(group(text, m, 2)), atoi(group(text, m, 3)), grain)
	}

	for _, m := range findAll(p.re.clockMarker, text) {
		grain := ontology.GrainHour
		if group(text, m, 2) != "" {
			grain = ontology.GrainMinute
		}
		add(m[0], m[1], atoi(group(text, m, 1)), atoi(group(text, m, 2)), 0, grain)
	}

	for _, m := range findAll(p.re.noon, text) {
		add(m[0], m[1], 12, 0, 0, ontology.GrainHour)
	}
	for _, m := range findAll(p.re.midnight, text) {
		add(m[0], m[1], 0, 0, 0, ontology.GrainHour)
	}
	return out
}

// otherMoments finds the expressions that are neither a bare day nor a bare time
func (p *Parser) otherMoments(text string, ref time.Time, durations []duration) []moment {
	var out []moment
	loc := ref.Location()
	other := func(start, end int, t time.Time, g ontology.Grain, prec ontology.Precision) {
		out = append(out, moment{start: start, end: end, out: ontology.DatetimeOutput{Moment: t, Grain: g, Precision: prec}})
	}

	for _, m := range findAll(p.re.now, text) {
		other(m[0], m[1], startOfGrain(ref, ontology.GrainSecond), ontology.GrainSecond, ontology.PrecisionExact)
	}

	for _, m := range findAll(p.re.relative, text) {
		phrase := strings.Join(strings.Fields(strings.ToLower(text[m[0]:m[1]])), " ")
		for _, r := range p.lex.relative {
			if r.phrase == phrase {
				other(m[0], m[1], shiftGrain(startOfGrain(ref, r.grain), r.grain, r.offset), r.grain, ontology.PrecisionExact)
				break
			}
		}
	}

	for _, m := range findAll(isoDate, text) {
		if group(text, m, 4) == "" {
			continue
		}
		d, ok := calendarDate(atoi(group(text, m, 1)), time.Month(atoi(group(text, m, 2))), atoi(group(text, m, 3)), loc)
		h, mi, s := atoi(group(text, m, 4)), atoi(group(text, m, 5)), atoi(group(text, m, 6))
		if !ok || h > 23 || mi > 59 || s > 59 {
			continue
		}
		grain := ontology.GrainMinute
		if group(text, m, 6) != "" {
			grain = ontology.GrainSecond
		}
		other(m[0], m[1], d.Add(time.Duration(h)*time.Hour+time.Duration(mi)*time.Minute+time.Duration(s)*time.Second), grain, ontology.PrecisionExact)
	}

	if re := p.re.monthYear; re != nil {
		for _, m := range findAll(re.Regexp, text) {
			month := p.lex.months[strings.ToLower(group(text, m, re.month))]
			other(m[0], m[1], time.Date(atoi(group(text, m, re.year)), month, 1, 0, 0, 0, 0, loc), ontology.GrainMonth, ontology.PrecisionExact)
		}
	}
	if re := p.re.monthIn; re != nil {
		for _, m := range findAll(re.Regexp, text) {
			month := p.lex.months[strings.ToLower(group(text, m, re.month))]
			t := time.Date(ref.Year(), month, 1, 0, 0, 0, 0, loc)
			if t.Before(startOfGrain(ref, ontology.GrainMonth)) {
				t = t.AddDate(1, 0, 0)
			}
			other(m[0], m[1], t, ontology.GrainMonth, ontology.PrecisionExact)
		}
	}
	for _, m := range findAll(p.re.year, text) {
		other(m[0], m[1], time.Date(atoi(group(text, m, 1)), time.January, 1, 0, 0, 0, 0, loc), ontology.GrainYear, ontology.PrecisionExact)
	}

	// "in 3 days", "2 weeks ago", "il y a 2 semaines"
	for _, d := range durations {
		start, end, sign := d.start, d.end, 0
		if m := matchBefore(p.re.inPrefix, text, d.start); m != nil {
			start, sign = m[0], 1
		} else if m := matchAfter(p.re.agoSuffix, text, d.end); m != nil {
			end, sign = m[1], -1
		} else if m := matchBefore(p.re.agoPrefix, text, d.start); m != nil {
			start, sign = m[0], -1
		}
		if sign == 0 {
			continue
		}
		t := ref
		for g, amount := range d.period {
			t = shiftGrain(t, ontology.Grain(g), sign*int(amount))
		}
		grain := d.finest
		if grain.IsDateGrain() {
			t = startOfGrain(t, grain)
		} else {
			t = startOfGrain(t, ontology.GrainSecond)
		}
		other(start, end, t, grain, precisionOf(d.approx))
	}
	return out
}

// compose joins a day and a time of day: "tomorrow at 5pm", "5pm on monday"
func (p *Parser) compose(text string, days, clocks []moment) []moment {
	var out []moment
	join := func(d, c moment, start, end int) {
		y, mo, dd := d.out.Moment.Date()
		out = append(out, moment{
			start: start,
			end:   end,
			out: ontology.DatetimeOutput{
				Moment:    time.Date(y, mo, dd, c.h, c.m, c.s, 0, d.out.Moment.Location()),
				Grain:     c.out.Grain,
				Precision: c.out.Precision,
			},
			clock:   true,
			weekday: d.weekday,
			h:       c.h, m: c.m, s: c.s,
		})
	}

	for _, d := range days {
		for _, c := range clocks {
			switch {
			case c.start >= d.end && p.re.atGap.MatchString(text[d.end:c.start]):
				join(d, c, d.start, c.end)
			case d.start >= c.end && p.re.atGap.MatchString(text[c.end:d.start]):
				join(d, c, c.start, d.end)
			}
		}
	}
	return out
}

// intervals builds open and closed ranges on top of datetime candidates
func (p *Parser) intervals(text string, moments []moment) []candidate {
	var out []candidate
	interval := func(start, end int, k ontology.IntervalKind) {
		out = append(out, candidate{start: start, end: end, output: ontology.DatetimeIntervalOutput{Interval: k}})
	}

	for _, m := range moments {
		if loc := matchBefore(p.re.after, text, m.start); loc != nil {
			interval(loc[0], m.end, ontology.After{Datetime: m.out})
		}
		if loc := matchBefore(p.re.before, text, m.start); loc != nil {
			interval(loc[0], m.end, ontology.Before{Datetime: m.out})
		}
	}

	for _, a := range moments {
		for _, b := range moments {
			if b.start < a.end {
				continue
			}
			gap := text[a.end:b.start]
			start := a.start
			switch {
			case p.re.betweenJoin != nil && p.re.betweenJoin.MatchString(gap):
				loc := matchBefore(p.re.betweenOpen, text, a.start)
				if loc == nil {
					continue
				}
				start = loc[0]
			case a.clock && b.clock && rangeDash.MatchString(gap):
				if loc := matchBefore(p.re.betweenOpen, text, a.start); loc != nil {
					start = loc[0]
				}
			default:
				continue
			}

			end := b.out.Moment
			for i := 0; end.Before(a.out.Moment) && i < 2; i++ {
				switch {
				case b.weekday:
					end = end.AddDate(0, 0, 7)
				case b.clock:
					end = end.AddDate(0, 0, 1)
				}
			}
			if end.Before(a.out.Moment) {
				continue
			}

			grain := a.out.Grain
			if b.out.Grain > grain {
				grain = b.out.Grain
			}
			prec := ontology.PrecisionExact
			if a.out.Precision == ontology.PrecisionApproximate || b.out.Precision == ontology.PrecisionApproximate {
				prec = ontology.PrecisionApproximate
			}
			interval(start, b.end, ontology.Between{Start: a.out.Moment, End: end, Bound: grain, Precision: prec})
		}
	}
	return out
}

func (p *Parser) datetimeCandidates(text string, ref time.Time, durations []duration) ([]candidate, []candidate) {
	days := p.dayMoments(text, ref)
	clocks := p.clockMoments(text, ref)

	moments := make([]moment, 0, len(days)+len(clocks))
	moments = append(moments, days...)
	moments = append(moments, clocks...)
	moments = append(moments, p.compose(text, days, clocks)...)
	moments = append(moments, p.otherMoments(text, ref, durations)...)

	datetimes := make([]candidate, 0, len(moments))
	for _, m := range moments {
		datetimes = append(datetimes, candidate{start: m.start, end: m.end, output: m.out})
	}
	return datetimes, p.intervals(text, moments)
}
