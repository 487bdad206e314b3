// Package rules is the built-in entity parser: regular expression rules over
// per-language lexicons, resolved into non-overlapping entities.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/slotparse/internal/ontology"
)

// ErrMalformedQuery is returned for input the parser refuses to scan
var ErrMalformedQuery = errors.New("malformed query")

// DefaultMaxQueryBytes bounds a single query
const DefaultMaxQueryBytes = 16 * 1024

var (
	isoDate   = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ](\d{1,2}):(\d{2})(?::(\d{2}))?)?`)
	slashDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	clock24   = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	rangeDash = regexp.MustCompile(`^\s*[-–]\s*$`)
	degree    = regexp.MustCompile(`^\s?°(?:\s?([cfkCFK])\b)?`)
)

// regexpWithGroups remembers where the month/day/year groups are
type regexpWithGroups struct {
	*regexp.Regexp
	month, day, year int
}

func withGroups(re *regexp.Regexp) *regexpWithGroups {
	if re == nil {
		return nil
	}
	return &regexpWithGroups{
		Regexp: re,
		month:  re.SubexpIndex("month"),
		day:    re.SubexpIndex("day"),
		year:   re.SubexpIndex("year"),
	}
}

// patterns are the compiled rules of one language. A nil pattern disables
// its rule.
type patterns struct {
	ordinalDigits   *regexp.Regexp
	ordinalWords    *regexp.Regexp
	percent         *regexp.Regexp
	approx          *regexp.Regexp
	currencyPrefix  *regexp.Regexp
	currencySymbol  *regexp.Regexp
	currencyWord    *regexp.Regexp
	degreeSymbol    *regexp.Regexp
	temperatureWord *regexp.Regexp
	minus           *regexp.Regexp
	article         *regexp.Regexp
	durationUnit    *regexp.Regexp
	durationJoin    *regexp.Regexp

	dayWord     *regexp.Regexp
	weekday     *regexp.Regexp
	dayPrefix   *regexp.Regexp
	monthDay    *regexpWithGroups
	dayMonth    *regexpWithGroups
	monthYear   *regexpWithGroups
	monthIn     *regexpWithGroups
	year        *regexp.Regexp
	now         *regexp.Regexp
	relative    *regexp.Regexp
	clock12     *regexp.Regexp
	clockMarker *regexp.Regexp
	noon        *regexp.Regexp
	midnight    *regexp.Regexp
	atGap       *regexp.Regexp
	inPrefix    *regexp.Regexp
	agoSuffix   *regexp.Regexp
	agoPrefix   *regexp.Regexp
	after       *regexp.Regexp
	before      *regexp.Regexp
	betweenOpen *regexp.Regexp
	betweenJoin *regexp.Regexp
}

func compilePatterns(lex lexicon) patterns {
	currencies := alt(keys(symbolCurrencies))
	months := alt(keys(lex.months))
	temperatures := alt(keys(lex.temperatureWords))

	percent := `^\s?%`
	if len(lex.percentWords) > 0 {
		percent = `^(?:\s?%|\s+(?:` + alt(lex.percentWords) + `))`
	}

	joinWords := ""
	if len(lex.durationJoin) > 0 {
		joinWords = `(?:(?:` + alt(lex.durationJoin) + `)\s+)?`
	}

	atWords := ""
	if len(lex.atWords) > 0 {
		atWords = `(?:(?:` + alt(lex.atWords) + `)\s+)?`
	}

	var weekday *regexp.Regexp
	switch {
	case len(lex.nextWords) == 0:
		weekday = compile(`(?P<wd>`+alt(keys(lex.weekdays))+`)`, alt(keys(lex.weekdays)))
	case lex.nextAfter:
		weekday = compile(`(?P<wd>`+alt(keys(lex.weekdays))+`)(?:\s+(?P<next>`+alt(lex.nextWords)+`))?`, alt(keys(lex.weekdays)))
	default:
		weekday = compile(`(?:(?P<next>`+alt(lex.nextWords)+`)\s+)?(?P<wd>`+alt(keys(lex.weekdays))+`)`, alt(keys(lex.weekdays)))
	}

	ordinalSuffix := ""
	if lex.ordinalSuffix != "" {
		ordinalSuffix = `(?:` + lex.ordinalSuffix + `)?`
	}

	p := patterns{
		ordinalDigits:   compile(`(\d+)(?:`+lex.ordinalSuffix+`)`, lex.ordinalSuffix),
		ordinalWords:    compile(`(?:`+alt(keys(lex.ordinalWords))+`)`, alt(keys(lex.ordinalWords))),
		percent:         compile(percent),
		approx:          compile(`(?:`+alt(lex.approxWords)+`)\s*$`, alt(lex.approxWords)),
		currencyPrefix:  compile(`(`+currencies+`)\s?$`, currencies),
		currencySymbol:  compile(`^\s?(`+currencies+`)`, currencies),
		currencyWord:    compile(`^\s+(`+alt(keys(lex.currencyWords))+`)`, alt(keys(lex.currencyWords))),
		degreeSymbol:    degree,
		temperatureWord: compile(`^\s+(`+temperatures+`)(?:\s+(`+temperatures+`))?`, temperatures),
		minus:           compile(`(?:`+alt(lex.minusWords)+`)\s+$`, alt(lex.minusWords)),
		article:         compile(`(?:`+alt(lex.articles)+`)`, alt(lex.articles)),
		durationUnit:    compile(`^\s*(`+alt(keys(lex.durationUnits))+`)`, alt(keys(lex.durationUnits))),
		durationJoin:    compile(`^\s*(?:,\s*)?` + joinWords + `$`),

		dayWord:     compile(`(?:`+alt(keys(lex.dayOffsets))+`)`, alt(keys(lex.dayOffsets))),
		weekday:     weekday,
		dayPrefix:   compile(`(?:`+alt(lex.dayPrefix)+`)\s+$`, alt(lex.dayPrefix)),
		monthDay:    withGroups(compile(`(?P<month>`+months+`)\.?\s+(?P<day>\d{1,2})`+ordinalSuffix+`(?:,?\s+(?P<year>\d{4}))?`, months)),
		dayMonth:    withGroups(compile(`(?P<day>\d{1,2})`+ordinalSuffix+`\s+(?:of\s+)?(?P<month>`+months+`)(?:,?\s+(?P<year>\d{4}))?`, months)),
		monthYear:   withGroups(compile(`(?P<month>`+months+`)\s+(?P<year>\d{4})`, months)),
		monthIn:     withGroups(compile(`(?:`+alt(lex.yearPrefix)+`)\s+(?P<month>`+months+`)`, alt(lex.yearPrefix), months)),
		year:        compile(`(?:`+alt(lex.yearPrefix)+`)\s+(\d{4})`, alt(lex.yearPrefix)),
		now:         compile(`(?:`+alt(lex.nowWords)+`)`, alt(lex.nowWords)),
		relative:    compile(`(?:`+alt(relativePhrases(lex.relative))+`)`, alt(relativePhrases(lex.relative))),
		noon:        compile(`(?:`+alt(lex.noon)+`)`, alt(lex.noon)),
		midnight:    compile(`(?:`+alt(lex.midnight)+`)`, alt(lex.midnight)),
		atGap:       compile(`^\s*(?:,\s*)?` + atWords + `$`),
		inPrefix:    compile(`(?:`+alt(lex.inPrefix)+`)\s+$`, alt(lex.inPrefix)),
		agoSuffix:   compile(`^\s+(?:`+alt(lex.agoSuffix)+`)`, alt(lex.agoSuffix)),
		agoPrefix:   compile(`(?:`+alt(lex.agoPrefix)+`)\s+$`, alt(lex.agoPrefix)),
		after:       compile(`(?:`+alt(lex.afterWords)+`)\s+$`, alt(lex.afterWords)),
		before:      compile(`(?:`+alt(lex.beforeWords)+`)\s+$`, alt(lex.beforeWords)),
		betweenOpen: compile(`(?:`+alt(lex.betweenOpen)+`)\s+$`, alt(lex.betweenOpen)),
		betweenJoin: compile(`^\s+(?:`+alt(lex.betweenJoin)+`)\s+$`, alt(lex.betweenJoin)),
	}
	if lex.clock12 {
		p.clock12 = compile(`(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?`)
	}
	if lex.hourMarker != "" {
		p.clockMarker = compile(`(\d{1,2})\s?` + regexp.QuoteMeta(lex.hourMarker) + `(?:\s?(\d{2}))?`)
	}
	return p
}

func relativePhrases(periods []relativePeriod) []string {
	out := make([]string, len(periods))
	for i, r := range periods {
		out[i] = r.phrase
	}
	return out
}

// candidate is a span the rules recognized, before overlap resolution
type candidate struct {
	start, end int
	output     ontology.Output
}

func sortByStart[T any](items []T, start func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return start(items[i]) < start(items[j]) })
}

// Option configures a Parser
type Option func(*Parser)

// MaxQueryBytes overrides DefaultMaxQueryBytes; n <= 0 removes the limit
func MaxQueryBytes(n int) Option {
	return func(p *Parser) {
		p.maxBytes = n
	}
}

// Parser implements ontology.Parser for one language. It is immutable after
// Build and safe for concurrent use.
type Parser struct {
	lang     ontology.Lang
	lex      lexicon
	re       patterns
	maxBytes int
}

var _ ontology.Parser = (*Parser)(nil)

// Build creates the parser of a language
func Build(lang ontology.Lang, opts ...Option) (*Parser, error) {
	if _, err := ontology.ParseLang(string(lang)); err != nil {
		return nil, err
	}
	lex := lexiconFor(lang)
	p := &Parser{
		lang:     lang,
		lex:      lex,
		re:       compilePatterns(lex),
		maxBytes: DefaultMaxQueryBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Lang returns the parser language
func (p *Parser) Lang() ontology.Lang {
	return p.lang
}

// Parse returns every recognized entity, resolved with the default kind priority
func (p *Parser) Parse(text string, ctx ontology.ResolverContext) ([]ontology.Entity, error) {
	cands, err := p.candidates(text, ctx)
	if err != nil {
		return nil, err
	}
	return p.entities(text, resolveDefault(cands)), nil
}

// ParseWithKindOrder returns only entities of the requested kinds. Earlier
// kinds win when spans overlap.
func (p *Parser) ParseWithKindOrder(text string, ctx ontology.ResolverContext, order []ontology.OutputKind) ([]ontology.Entity, error) {
	if len(order) == 0 {
		return p.Parse(text, ctx)
	}
	cands, err := p.candidates(text, ctx)
	if err != nil {
		return nil, err
	}
	return p.entities(text, resolveOrdered(cands, order)), nil
}

func (p *Parser) candidates(text string, ctx ontology.ResolverContext) ([]candidate, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid utf-8", ErrMalformedQuery)
	}
	if p.maxBytes > 0 && len(text) > p.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrMalformedQuery, len(text), p.maxBytes)
	}
	ref := ctx.ReferenceTime
	if ref.IsZero() {
		ref = ontology.DefaultContext().ReferenceTime
	}

	nums := p.numbers(text)
	durations := p.durations(text, nums)
	datetimes, intervals := p.datetimeCandidates(text, ref, durations)

	var out []candidate
	out = append(out, p.numberCandidates(nums)...)
	out = append(out, p.ordinalCandidates(text)...)
	out = append(out, p.percentageCandidates(text, nums)...)
	out = append(out, p.moneyCandidates(text, nums)...)
	out = append(out, p.temperatureCandidates(text, nums)...)
	out = append(out, p.durationCandidates(durations)...)
	out = append(out, datetimes...)
	out = append(out, intervals...)
	return out, nil
}

func (p *Parser) entities(text string, picked []candidate) []ontology.Entity {
	out := make([]ontology.Entity, 0, len(picked))
	for _, c := range picked {
		out = append(out, ontology.Entity{
			Start: c.start,
			End:   c.end,
			Text:  strings.TrimSpace(text[c.start:c.end]),
			Value: c.output,
		})
	}
	return out
}

var defaultPriority = map[ontology.OutputKind]int{
	ontology.KindNumber:           0,
	ontology.KindOrdinal:          1,
	ontology.KindDatetime:         2,
	ontology.KindDatetimeInterval: 3,
	ontology.KindAmountOfMoney:    4,
	ontology.KindTemperature:      5,
	ontology.KindDuration:         6,
	ontology.KindPercentage:       7,
}

func resolveDefault(cands []candidate) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if la, lb := a.end-a.start, b.end-b.start; la != lb {
			return la > lb
		}
		if pa, pb := defaultPriority[a.output.Kind()], defaultPriority[b.output.Kind()]; pa != pb {
			return pa < pb
		}
		return a.start < b.start
	})
	return pick(cands)
}

func resolveOrdered(cands []candidate, order []ontology.OutputKind) []candidate {
	type ranked struct {
		candidate
		rank int
	}
	var kept []ranked
	for _, c := range cands {
		for i, k := range order {
			if k.Matches(c.output) {
				kept = append(kept, ranked{c, i})
				break
			}
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if la, lb := a.end-a.start, b.end-b.start; la != lb {
			return la > lb
		}
		return a.start < b.start
	})
	out := make([]candidate, len(kept))
	for i, k := range kept {
		out[i] = k.candidate
	}
	return pick(out)
}

// pick keeps candidates greedily in the given preference order, skipping any
// that overlap one already kept, and returns them by position
func pick(cands []candidate) []candidate {
	var kept []candidate
	for _, c := range cands {
		overlaps := false
		for _, k := range kept {
			if c.start < k.end && k.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}
	sortByStart(kept, func(c candidate) int { return c.start })
	return kept
}
