package rules

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/slotparse/internal/ontology"
	"github.com/shopspring/decimal"
)

var (
	dotDecimal   = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)
	commaDecimal = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d+)?|\d+(?:,\d+)?`)
	letterRun    = regexp.MustCompile(`\p{L}+`)
	runSeparator = regexp.MustCompile(`^[\s-]+$`)
)

// number is a numeric literal found in the text, the building block of most
// other rules
type number struct {
	start, end int
	value      decimal.Decimal
	integral   bool
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// fitsInt64 reports whether the integer part of d is representable as int64
func fitsInt64(d decimal.Decimal) bool {
	whole := d.Truncate(0)
	return whole.GreaterThanOrEqual(minInt64) && whole.LessThanOrEqual(maxInt64)
}

// output is an integer when the literal has no fraction and fits int64,
// a float otherwise
func (n number) output() ontology.Output {
	if n.integral && fitsInt64(n.value) {
		return ontology.IntegerOutput{Value: n.value.IntPart()}
	}
	return ontology.FloatOutput{Value: n.value.InexactFloat64()}
}

// parseLiteral reads a digit literal written with the language separators
func (p *Parser) parseLiteral(lit string) (decimal.Decimal, bool, error) {
	thousands, dec := ",", "."
	if p.lex.decimalComma {
		thousands, dec = ".", ","
	}
	normalized := strings.ReplaceAll(lit, thousands, "")
	normalized = strings.Replace(normalized, dec, ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return d, !strings.Contains(normalized, "."), nil
}

func (p *Parser) digitNumbers(text string) []number {
	re := dotDecimal
	if p.lex.decimalComma {
		re = commaDecimal
	}

	var out []number
	for _, loc := range findAll(re, text) {
		value, integral, err := p.parseLiteral(text[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		start := loc[0]
		if negativeSign(text, start) {
			start--
			value = value.Neg()
		}
		out = append(out, number{start: start, end: loc[1], value: value, integral: integral})
	}
	return out
}

// negativeSign reports a '-' right before pos that is not a range dash ("9-5")
func negativeSign(text string, pos int) bool {
	if pos == 0 || text[pos-1] != '-' {
		return false
	}
	if pos == 1 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:pos-1])
	return !isWordRune(prev)
}

// wordNumbers finds runs of number words such as "forty two" or "quatre-vingt-dix"
func (p *Parser) wordNumbers(text string) []number {
	if len(p.lex.numbers) == 0 {
		return nil
	}

	tokens := letterRun.FindAllStringIndex(text, -1)
	var out []number
	for i := 0; i < len(tokens); {
		n, next, ok := p.numberRun(text, tokens, i)
		if !ok {
			i++
			continue
		}
		out = append(out, n)
		i = next
	}
	return out
}

func (p *Parser) numberRun(text string, tokens [][]int, from int) (number, int, bool) {
	var (
		total, current int64
		prevWord       string
		prevValue      int64
		count          int
		end            = -1
		last           = from
	)

	for k := from; k < len(tokens); k++ {
		word := strings.ToLower(text[tokens[k][0]:tokens[k][1]])
		if k > from && !runSeparator.MatchString(text[tokens[k-1][1]:tokens[k][0]]) {
			break
		}

		if count > 0 && p.isConnector(word) {
			if prevValue < 20 || k+1 >= len(tokens) {
				break
			}
			nextWord := strings.ToLower(text[tokens[k+1][0]:tokens[k+1][1]])
			if _, ok := p.lex.numbers[nextWord]; !ok {
				break
			}
			continue
		}

		w, ok := p.lex.numbers[word]
		if !ok {
			break
		}

		switch w.kind {
		case additive:
			if w.value == 20 && prevWord == p.lex.multTwenty && p.lex.multTwenty != "" {
				current += 80 - 4
			} else {
				current += w.value
			}
		case hundred:
			if current == 0 {
				current = 1
			}
			current *= w.value
		case scale:
			if current == 0 {
				current = 1
			}
			total += current * w.value
			current = 0
		}

		prevWord = word
		prevValue = w.value
		count++
		end = tokens[k][1]
		last = k
	}

	if count == 0 {
		return number{}, 0, false
	}
	if count == 1 && p.lex.weakNumbers[prevWord] {
		return number{}, 0, false
	}
	start := tokens[from][0]
	if !bounded(text, start, end) {
		return number{}, 0, false
	}
	return number{
		start:    start,
		end:      end,
		value:    decimal.NewFromInt(total + current),
		integral: true,
	}, last + 1, true
}

func (p *Parser) isConnector(word string) bool {
	for _, c := range p.lex.connectors {
		if c == word {
			return true
		}
	}
	return false
}

// numbers returns digit and word numbers sorted by position
func (p *Parser) numbers(text string) []number {
	out := append(p.digitNumbers(text), p.wordNumbers(text)...)
	sortByStart(out, func(n number) int { return n.start })
	return out
}

func (p *Parser) numberCandidates(nums []number) []candidate {
	out := make([]candidate, 0, len(nums))
	for _, n := range nums {
		out = append(out, candidate{start: n.start, end: n.end, output: n.output()})
	}
	return out
}

func (p *Parser) ordinalCandidates(text string) []candidate {
	var out []candidate
	for _, loc := range findAll(p.re.ordinalDigits, text) {
		value, integral, err := p.parseLiteral(group(text, loc, 1))
		if err != nil || !integral || !fitsInt64(value) {
			continue
		}
		out = append(out, candidate{start: loc[0], end: loc[1], output: ontology.OrdinalOutput{Value: value.IntPart()}})
	}
	for _, loc := range findAll(p.re.ordinalWords, text) {
		word := strings.ToLower(text[loc[0]:loc[1]])
		if v, ok := p.lex.ordinalWords[word]; ok {
			out = append(out, candidate{start: loc[0], end: loc[1], output: ontology.OrdinalOutput{Value: v}})
		}
	}
	return out
}
