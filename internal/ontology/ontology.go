package ontology

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownLanguage is returned when a language code is not supported
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrUnknownKind is returned when an output kind name is not recognized
	ErrUnknownKind = errors.New("unknown output kind")
)

// Lang identifies a supported parser language
type Lang string

const (
	LangDE Lang = "de"
	LangEN Lang = "en"
	LangES Lang = "es"
	LangFR Lang = "fr"
	LangIT Lang = "it"
	LangJA Lang = "ja"
	LangKO Lang = "ko"
	LangPT Lang = "pt"
	LangZH Lang = "zh"
)

// AllLangs lists every supported language in a stable order
func AllLangs() []Lang {
	return []Lang{LangDE, LangEN, LangES, LangFR, LangIT, LangJA, LangKO, LangPT, LangZH}
}

// ParseLang resolves a language code, ignoring case and surrounding space
func ParseLang(code string) (Lang, error) {
	normalized := Lang(strings.ToLower(strings.TrimSpace(code)))
	for _, l := range AllLangs() {
		if l == normalized {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// Grain is the calendar granularity of a temporal value.
// Its numeric value is also the index into a duration Period.
type Grain int

const (
	GrainYear Grain = iota
	GrainQuarter
	GrainMonth
	GrainWeek
	GrainDay
	GrainHour
	GrainMinute
	GrainSecond
)

// GrainCount is the number of grains, i.e. the full length of a Period
const GrainCount = 8

func (g Grain) String() string {
	switch g {
	case GrainYear:
		return "year"
	case GrainQuarter:
		return "quarter"
	case GrainMonth:
		return "month"
	case GrainWeek:
		return "week"
	case GrainDay:
		return "day"
	case GrainHour:
		return "hour"
	case GrainMinute:
		return "minute"
	case GrainSecond:
		return "second"
	default:
		return "unknown"
	}
}

// IsDateGrain reports whether the grain is a day or coarser
func (g Grain) IsDateGrain() bool {
	return g <= GrainDay
}

// Precision is the engine's confidence classification for a value
type Precision int

const (
	PrecisionExact Precision = iota
	PrecisionApproximate
)

func (p Precision) String() string {
	if p == PrecisionApproximate {
		return "approximate"
	}
	return "exact"
}

// Period is a duration vector indexed by Grain. It may be shorter than
// GrainCount; missing trailing entries are zero.
type Period []int64

// Get returns the amount for a grain, or 0 when the period is too short
func (p Period) Get(g Grain) int64 {
	if int(g) < 0 || int(g) >= len(p) {
		return 0
	}
	return p[g]
}

// Entity is one raw extraction produced by a Parser
type Entity struct {
	Start int    // byte offset of the match start
	End   int    // byte offset just past the match
	Text  string // matched text
	Value Output
}

// ResolverContext carries the reference time used to resolve relative
// temporal expressions such as "tomorrow"
type ResolverContext struct {
	ReferenceTime time.Time
}

// DefaultContext returns a context anchored at the current local time
func DefaultContext() ResolverContext {
	return ResolverContext{ReferenceTime: time.Now()}
}

// Parser is the extraction engine contract. Implementations must be safe for
// concurrent use and must not mutate their own state while parsing.
type Parser interface {
	// Parse returns every recognized entity in the parser's default priority order
	Parse(text string, ctx ResolverContext) ([]Entity, error)

	// ParseWithKindOrder restricts extraction to the given kinds; earlier kinds
	// win when candidate spans overlap
	ParseWithKindOrder(text string, ctx ResolverContext, order []OutputKind) ([]Entity, error)
}
