package estimate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Parser extracts priced service line items from free-form inspection
// report text. It is pure with respect to its input: the only side effect
// is fresh ID generation, which is injectable for deterministic tests.
type Parser struct {
	// NewID supplies the identifier for each freshly created item.
	NewID func() uuid.UUID
}

// NewParser creates a Parser backed by random UUIDs.
func NewParser() *Parser {
	return &Parser{NewID: uuid.New}
}

// Parse is a convenience wrapper around a default Parser.
func Parse(reportText string) []ServiceItem {
	return NewParser().Parse(reportText)
}

// lineKind tags the role a report line plays during section-aware scanning.
type lineKind int

const (
	lineUnrecognized lineKind = iota
	lineSectionStart
	lineSectionEnd
	lineRugHeader
	lineSubtotal
	lineServiceCandidate
)

var sectionStartPhrases = []string{
	"rug breakdown",
	"estimate of services",
	"services and costs",
	"itemized list",
}

var sectionEndPhrases = []string{
	"total estimate",
	"total investment",
	"next steps",
	"sincerely",
	"additional protection",
}

// serviceLineRe matches "label: $amount" with an optional leading bullet
// marker. The dollar amount must directly follow the colon; commas are
// allowed as thousands separators and decimals only as exactly two places.
var serviceLineRe = regexp.MustCompile(`^\s*[-*]?\s*(.+?):\s*\$([0-9][0-9,]*(?:\.[0-9]{2})?)`)

// classifyLine tags a single report line. For service candidates it also
// returns the trimmed label and parsed price. Labels shorter than three
// characters are not candidates.
func classifyLine(line string) (kind lineKind, name string, price float64) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineUnrecognized, "", 0
	}
	lower := strings.ToLower(trimmed)

	for _, phrase := range sectionStartPhrases {
		if strings.Contains(lower, phrase) {
			return lineSectionStart, "", 0
		}
	}
	for _, phrase := range sectionEndPhrases {
		if strings.Contains(lower, phrase) {
			return lineSectionEnd, "", 0
		}
	}
	if strings.HasPrefix(lower, "rug #") || strings.HasPrefix(lower, "rug:") {
		return lineRugHeader, "", 0
	}
	if strings.Contains(lower, "subtotal") {
		return lineSubtotal, "", 0
	}

	m := serviceLineRe.FindStringSubmatch(line)
	if m == nil {
		return lineUnrecognized, "", 0
	}
	label := strings.TrimSpace(m[1])
	if len(label) < 3 {
		return lineUnrecognized, "", 0
	}
	return lineServiceCandidate, label, parseAmount(m[2])
}

// Parse converts report text into an ordered sequence of service items.
// The section-aware pass runs first; if it finds nothing, a looser
// section-agnostic pass scans the whole text. Malformed or service-free
// input yields an empty result, never an error.
func (p *Parser) Parse(reportText string) []ServiceItem {
	items := p.parseSections(reportText)
	if len(items) == 0 {
		items = p.parseLoose(reportText)
	}
	return items
}

// parseSections walks the text with a two-state scanner: lines are only
// considered service candidates while inside a recognized services section.
func (p *Parser) parseSections(reportText string) []ServiceItem {
	var items []ServiceItem
	inSection := false

	for _, line := range strings.Split(reportText, "\n") {
		kind, name, price := classifyLine(line)
		switch kind {
		case lineSectionStart:
			inSection = true
		case lineSectionEnd:
			inSection = false
		case lineServiceCandidate:
			if inSection {
				items = p.mergeOrAppend(items, name, price)
			}
		default:
			// Rug headers, subtotal lines, and prose are skipped.
		}
	}
	return items
}

// mergeOrAppend folds a candidate into the accumulated items. A repeated
// name (case-insensitive) bumps the existing item's quantity; its price is
// backfilled only while still zero, so the first non-zero price wins.
func (p *Parser) mergeOrAppend(items []ServiceItem, name string, price float64) []ServiceItem {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			items[i].Quantity++
			if items[i].UnitPrice == 0 && price > 0 {
				items[i].UnitPrice = price
			}
			return items
		}
	}
	return append(items, ServiceItem{
		ID:        p.NewID(),
		Name:      name,
		Quantity:  1,
		UnitPrice: price,
		Priority:  ClassifyPriority(name),
	})
}

// parseLoose scans every line for "label: $amount" regardless of section
// markers. Unlike the section pass it does not merge duplicates: the first
// occurrence of a name wins and later ones are dropped. Downstream relies
// on this asymmetry, so it is kept even though it looks accidental.
func (p *Parser) parseLoose(reportText string) []ServiceItem {
	var items []ServiceItem

	for _, line := range strings.Split(reportText, "\n") {
		m := serviceLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := strings.TrimLeft(m[1], "-* \t")
		name = strings.ReplaceAll(name, "**", "")
		name = strings.TrimSpace(name)
		if len(name) < 3 {
			continue
		}

		lower := strings.ToLower(name)
		if strings.Contains(lower, "subtotal") ||
			strings.Contains(lower, "total") ||
			strings.Contains(lower, "rug #") {
			continue
		}

		if containsName(items, name) {
			continue
		}

		items = append(items, ServiceItem{
			ID:        p.NewID(),
			Name:      name,
			Quantity:  1,
			UnitPrice: parseAmount(m[2]),
			Priority:  ClassifyPriority(name),
		})
	}
	return items
}

func containsName(items []ServiceItem, name string) bool {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			return true
		}
	}
	return false
}

// parseAmount parses a $-numeral captured by serviceLineRe, stripping
// thousands separators. The regex guarantees a parseable numeral.
func parseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}
