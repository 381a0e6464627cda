package services

import (
	"regexp"
	"sort"
	"strings"

	"scamshield/internal/domain/models"
)

var (
	urlPattern   = regexp.MustCompile(`(?i)https?://[^\s<>"'{}|\\^\x60\[\]]+|www\.[^\s<>"'{}|\\^\x60\[\]]+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	digitRun     = regexp.MustCompile(`[0-9]+`)

	// Domestic mobile/landline forms, tolerant of separators.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?886[-\s]?9\d{2}[-\s]?\d{3}[-\s]?\d{3}`),
		regexp.MustCompile(`09\d{2}[-\s]?\d{3}[-\s]?\d{3}`),
		regexp.MustCompile(`\(?0\d{1,2}\)?[-\s]?\d{3,4}[-\s]?\d{4}`),
	}

	nonPhoneRune = regexp.MustCompile(`[^\d+]`)
)

// Trailing punctuation stripped from URL matches.
const urlTrimCutset = ".,;:!?)】」』，。；：！？）"

// ExtractEntities scans the full text for URLs, phone numbers, email
// addresses and long digit runs. Each list is independently de-duplicated
// with first-occurrence order preserved. Malformed input never errors;
// no matches yields empty lists.
func ExtractEntities(text string) models.Entities {
	ents := models.Entities{
		URLs:        []string{},
		Phones:      []string{},
		Emails:      []string{},
		LongNumbers: []string{},
	}
	if text == "" {
		return ents
	}

	seen := make(map[string]bool)
	for _, m := range urlPattern.FindAllString(text, -1) {
		m = strings.TrimRight(m, urlTrimCutset)
		if m == "" || seen["u:"+m] {
			continue
		}
		seen["u:"+m] = true
		ents.URLs = append(ents.URLs, m)
	}

	// Each pattern scans the whole text, so matches are re-ordered by
	// position before dedupe to keep first-occurrence order across forms.
	type phoneMatch struct {
		start   int
		cleaned string
	}
	var phones []phoneMatch
	for _, p := range phonePatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			cleaned := nonPhoneRune.ReplaceAllString(text[loc[0]:loc[1]], "")
			if len(strings.TrimPrefix(cleaned, "+")) < 9 {
				continue
			}
			phones = append(phones, phoneMatch{start: loc[0], cleaned: cleaned})
		}
	}
	sort.Slice(phones, func(i, j int) bool { return phones[i].start < phones[j].start })
	for _, pm := range phones {
		if seen["p:"+pm.cleaned] {
			continue
		}
		seen["p:"+pm.cleaned] = true
		ents.Phones = append(ents.Phones, pm.cleaned)
	}

	for _, m := range emailPattern.FindAllString(text, -1) {
		if seen["e:"+m] {
			continue
		}
		seen["e:"+m] = true
		ents.Emails = append(ents.Emails, m)
	}

	// 10-19 digit runs are a coarse proxy for account/card numbers.
	for _, m := range digitRun.FindAllString(text, -1) {
		if len(m) < 10 || len(m) > 19 || seen["n:"+m] {
			continue
		}
		seen["n:"+m] = true
		ents.LongNumbers = append(ents.LongNumbers, m)
	}

	return ents
}
