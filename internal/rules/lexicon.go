package rules

import (
	"time"

	"github.com/ppiankov/slotparse/internal/ontology"
)

type numberWordKind int

const (
	additive numberWordKind = iota
	hundred
	scale
)

type numberWord struct {
	value int64
	kind  numberWordKind
}

// relativePeriod is a phrase such as "next week": the period of the given
// grain shifted by offset from the reference one
type relativePeriod struct {
	phrase string
	grain  ontology.Grain
	offset int
}

// lexicon holds the words a language contributes to the rules. Languages with
// an empty lexicon still get every digit and symbol based rule.
type lexicon struct {
	decimalComma bool   // "3,5" is three and a half
	monthFirst   bool   // "5/1/2024" is May 1st
	clock12      bool   // am/pm suffixes
	hourMarker   string // "17h30"

	numbers       map[string]numberWord
	weakNumbers   map[string]bool // not a number on their own ("un chat")
	connectors    []string        // "and" in "one hundred and five"
	multTwenty    string          // "quatre-vingt"
	ordinalWords  map[string]int64
	ordinalSuffix string // regexp alternation after digits

	percentWords []string
	articles     []string // "an hour"

	currencyWords map[string]string
	approxWords   []string
	minusWords    []string

	temperatureWords map[string]string
	durationUnits    map[string]ontology.Grain
	durationJoin     []string

	dayOffsets      map[string]int
	nowWords        []string
	relative        []relativePeriod
	months          map[string]time.Month
	weekdays        map[string]time.Weekday
	nextWords       []string // "next monday" / "lundi prochain"
	nextAfter       bool     // qualifier follows the weekday
	noon            []string
	midnight        []string
	inPrefix        []string // "in 3 days"
	agoSuffix       []string // "3 days ago"
	agoPrefix       []string // "il y a 3 jours"
	atWords         []string // "tomorrow at 5pm"
	dayPrefix       []string // "le 5 mai"
	yearPrefix      []string // "in 2024"
	afterWords      []string
	beforeWords     []string
	betweenOpen     []string
	betweenJoin     []string
}

var symbolCurrencies = map[string]string{
	"$":   "$",
	"us$": "USD",
	"usd": "USD",
	"€":   "EUR",
	"eur": "EUR",
	"£":   "GBP",
	"gbp": "GBP",
	"¥":   "JPY",
	"jpy": "JPY",
	"chf": "CHF",
}

var englishLexicon = lexicon{
	monthFirst: true,
	clock12:    true,
	numbers: map[string]numberWord{
		"zero": {0, additive}, "one": {1, additive}, "two": {2, additive}, "three": {3, additive},
		"four": {4, additive}, "five": {5, additive}, "six": {6, additive}, "seven": {7, additive},
		"eight": {8, additive}, "nine": {9, additive}, "ten": {10, additive}, "eleven": {11, additive},
		"twelve": {12, additive}, "thirteen": {13, additive}, "fourteen": {14, additive},
		"fifteen": {15, additive}, "sixteen": {16, additive}, "seventeen": {17, additive},
		"eighteen": {18, additive}, "nineteen": {19, additive}, "twenty": {20, additive},
		"thirty": {30, additive}, "forty": {40, additive}, "fifty": {50, additive},
		"sixty": {60, additive}, "seventy": {70, additive}, "eighty": {80, additive},
		"ninety": {90, additive}, "hundred": {100, hundred}, "thousand": {1000, scale},
		"million": {1000000, scale}, "billion": {1000000000, scale},
	},
	connectors: []string{"and"},
	ordinalWords: map[string]int64{
		"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5, "sixth": 6,
		"seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10, "eleventh": 11, "twelfth": 12,
		"twentieth": 20, "hundredth": 100,
	},
	ordinalSuffix: `st|nd|rd|th`,
	percentWords:  []string{"percent", "per cent", "pct"},
	articles:      []string{"a", "an"},
	currencyWords: map[string]string{
		"dollar": "$", "dollars": "$", "bucks": "$", "euro": "EUR", "euros": "EUR",
		"pound": "GBP", "pounds": "GBP", "yen": "JPY", "cent": "cent", "cents": "cent",
	},
	approxWords: []string{"about", "around", "approximately", "roughly", "nearly", "almost", "~"},
	minusWords:  []string{"minus", "negative"},
	temperatureWords: map[string]string{
		"degree": "degree", "degrees": "degree", "celsius": "celsius", "centigrade": "celsius",
		"fahrenheit": "fahrenheit", "kelvin": "kelvin",
	},
	durationUnits: map[string]ontology.Grain{
		"year": ontology.GrainYear, "years": ontology.GrainYear, "yr": ontology.GrainYear, "yrs": ontology.GrainYear,
		"quarter": ontology.GrainQuarter, "quarters": ontology.GrainQuarter,
		"month": ontology.GrainMonth, "months": ontology.GrainMonth,
		"week": ontology.GrainWeek, "weeks": ontology.GrainWeek, "wk": ontology.GrainWeek, "wks": ontology.GrainWeek,
		"day": ontology.GrainDay, "days": ontology.GrainDay,
		"hour": ontology.GrainHour, "hours": ontology.GrainHour, "hr": ontology.GrainHour, "hrs": ontology.GrainHour,
		"minute": ontology.GrainMinute, "minutes": ontology.GrainMinute, "min": ontology.GrainMinute, "mins": ontology.GrainMinute,
		"second": ontology.GrainSecond, "seconds": ontology.GrainSecond, "sec": ontology.GrainSecond, "secs": ontology.GrainSecond,
	},
	durationJoin: []string{"and"},
	dayOffsets: map[string]int{
		"today": 0, "tomorrow": 1, "yesterday": -1,
		"the day after tomorrow": 2, "the day before yesterday": -2,
	},
	nowWords: []string{"now", "right now"},
	relative: []relativePeriod{
		{"this week", ontology.GrainWeek, 0}, {"next week", ontology.GrainWeek, 1}, {"last week", ontology.GrainWeek, -1},
		{"this month", ontology.GrainMonth, 0}, {"next month", ontology.GrainMonth, 1}, {"last month", ontology.GrainMonth, -1},
		{"this quarter", ontology.GrainQuarter, 0}, {"next quarter", ontology.GrainQuarter, 1}, {"last quarter", ontology.GrainQuarter, -1},
		{"this year", ontology.GrainYear, 0}, {"next year", ontology.GrainYear, 1}, {"last year", ontology.GrainYear, -1},
	},
	months: map[string]time.Month{
		"january": time.January, "jan": time.January, "february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March, "april": time.April, "apr": time.April, "may": time.May,
		"june": time.June, "jun": time.June, "july": time.July, "jul": time.July, "august": time.August,
		"aug": time.August, "september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October, "november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	},
	weekdays: map[string]time.Weekday{
		"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday, "sunday": time.Sunday,
	},
	nextWords:   []string{"next"},
	noon:        []string{"noon", "midday"},
	midnight:    []string{"midnight"},
	inPrefix:    []string{"in"},
	agoSuffix:   []string{"ago"},
	atWords:     []string{"at", "on"},
	dayPrefix:   []string{"on", "on the", "the"},
	yearPrefix:  []string{"in"},
	afterWords:  []string{"after", "since"},
	beforeWords: []string{"before", "until", "till"},
	betweenOpen: []string{"between", "from"},
	betweenJoin: []string{"and", "to", "until", "till", "through"},
}

var frenchLexicon = lexicon{
	decimalComma: true,
	hourMarker:   "h",
	numbers: map[string]numberWord{
		"zéro": {0, additive}, "zero": {0, additive}, "un": {1, additive}, "une": {1, additive},
		"deux": {2, additive}, "trois": {3, additive}, "quatre": {4, additive}, "cinq": {5, additive},
		"six": {6, additive}, "sept": {7, additive}, "huit": {8, additive}, "neuf": {9, additive},
		"dix": {10, additive}, "onze": {11, additive}, "douze": {12, additive}, "treize": {13, additive},
		"quatorze": {14, additive}, "quinze": {15, additive}, "seize": {16, additive},
		"vingt": {20, additive}, "vingts": {20, additive}, "trente": {30, additive},
		"quarante": {40, additive}, "cinquante": {50, additive}, "soixante": {60, additive},
		"cent": {100, hundred}, "cents": {100, hundred}, "mille": {1000, scale},
		"million": {1000000, scale}, "millions": {1000000, scale},
		"milliard": {1000000000, scale}, "milliards": {1000000000, scale},
	},
	weakNumbers: map[string]bool{"un": true, "une": true},
	connectors:  []string{"et"},
	multTwenty:  "quatre",
	ordinalWords: map[string]int64{
		"premier": 1, "première": 1, "deuxième": 2, "second": 2, "seconde": 2, "troisième": 3,
		"quatrième": 4, "cinquième": 5, "sixième": 6, "septième": 7, "huitième": 8,
		"neuvième": 9, "dixième": 10, "vingtième": 20, "centième": 100,
	},
	ordinalSuffix: `ère|ème|eme|er|re|e`,
	percentWords:  []string{"pour cent", "pourcent", "pourcents"},
	articles:      []string{"un", "une"},
	currencyWords: map[string]string{
		"dollar": "$", "dollars": "$", "euro": "EUR", "euros": "EUR", "livre": "GBP",
		"livres": "GBP", "livres sterling": "GBP", "yen": "JPY", "yens": "JPY",
		"centime": "cent", "centimes": "cent",
	},
	approxWords: []string{"environ", "à peu près", "vers", "autour de", "~"},
	minusWords:  []string{"moins"},
	temperatureWords: map[string]string{
		"degré": "degree", "degrés": "degree", "degre": "degree", "degres": "degree",
		"celsius": "celsius", "fahrenheit": "fahrenheit", "kelvin": "kelvin",
	},
	durationUnits: map[string]ontology.Grain{
		"an": ontology.GrainYear, "ans": ontology.GrainYear, "année": ontology.GrainYear, "années": ontology.GrainYear,
		"trimestre": ontology.GrainQuarter, "trimestres": ontology.GrainQuarter,
		"mois": ontology.GrainMonth,
		"semaine": ontology.GrainWeek, "semaines": ontology.GrainWeek,
		"jour": ontology.GrainDay, "jours": ontology.GrainDay,
		"heure": ontology.GrainHour, "heures": ontology.GrainHour,
		"minute": ontology.GrainMinute, "minutes": ontology.GrainMinute,
		"seconde": ontology.GrainSecond, "secondes": ontology.GrainSecond,
	},
	durationJoin: []string{"et"},
	dayOffsets: map[string]int{
		"aujourd'hui": 0, "demain": 1, "hier": -1, "après-demain": 2, "avant-hier": -2,
	},
	nowWords: []string{"maintenant", "tout de suite"},
	relative: []relativePeriod{
		{"cette semaine", ontology.GrainWeek, 0}, {"la semaine prochaine", ontology.GrainWeek, 1}, {"la semaine dernière", ontology.GrainWeek, -1},
		{"ce mois-ci", ontology.GrainMonth, 0}, {"le mois prochain", ontology.GrainMonth, 1}, {"le mois dernier", ontology.GrainMonth, -1},
		{"cette année", ontology.GrainYear, 0}, {"l'année prochaine", ontology.GrainYear, 1}, {"l'année dernière", ontology.GrainYear, -1},
	},
	months: map[string]time.Month{
		"janvier": time.January, "février": time.February, "fevrier": time.February, "mars": time.March,
		"avril": time.April, "mai": time.May, "juin": time.June, "juillet": time.July, "août": time.August,
		"aout": time.August, "septembre": time.September, "octobre": time.October,
		"novembre": time.November, "décembre": time.December, "decembre": time.December,
	},
	weekdays: map[string]time.Weekday{
		"lundi": time.Monday, "mardi": time.Tuesday, "mercredi": time.Wednesday, "jeudi": time.Thursday,
		"vendredi": time.Friday, "samedi": time.Saturday, "dimanche": time.Sunday,
	},
	nextWords:       []string{"prochain"},
	nextAfter:       true,
	noon:            []string{"midi"},
	midnight:        []string{"minuit"},
	inPrefix:        []string{"dans"},
	agoPrefix:       []string{"il y a"},
	atWords:         []string{"à"},
	dayPrefix:       []string{"le"},
	yearPrefix:      []string{"en"},
	afterWords:      []string{"après", "depuis", "à partir de"},
	beforeWords:     []string{"avant", "jusqu'à", "jusqu'au"},
	betweenOpen:     []string{"entre", "du", "de"},
	betweenJoin:     []string{"et", "au", "à", "jusqu'à", "jusqu'au"},
}

// commaLexicon serves languages without word rules that write decimals with a comma
var commaLexicon = lexicon{decimalComma: true, ordinalSuffix: `º|ª`}

var symbolLexicon = lexicon{}

func lexiconFor(lang ontology.Lang) lexicon {
	switch lang {
	case ontology.LangEN:
		return englishLexicon
	case ontology.LangFR:
		return frenchLexicon
	case ontology.LangDE:
		return lexicon{decimalComma: true}
	case ontology.LangES, ontology.LangIT, ontology.LangPT:
		return commaLexicon
	default:
		return symbolLexicon
	}
}

// HasWordRules reports whether a language has number and calendar words, as
// opposed to digit and symbol rules only
func HasWordRules(lang ontology.Lang) bool {
	return len(lexiconFor(lang).numbers) > 0
}
