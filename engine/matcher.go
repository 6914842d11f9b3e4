package engine

import (
	"fmt"
	"regexp"
	"seva/models"
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// FieldRecord is the best-effort structured output of the document field
// extractor. Any subset of fields may be present.
type FieldRecord struct {
	FullName *string  `json:"full_name,omitempty"`
	DOB      *string  `json:"dob,omitempty"`
	IDNumber *string  `json:"id_number,omitempty"`
	Income   *float64 `json:"income,omitempty"`
}

type MatchStatus string

const (
	MatchVerified     MatchStatus = "verified"
	MatchMismatch     MatchStatus = "mismatch"
	MatchUnverifiable MatchStatus = "unverifiable"
)

// MatchVerdict is the outcome of comparing an extracted record against a
// profile. Reasons name the offending fields; empty for verified.
type MatchVerdict struct {
	Status  MatchStatus
	Reasons []string
}

// MatcherConfig holds the tolerance thresholds for field comparison.
type MatcherConfig struct {
	NameEditDistance   int     // max Levenshtein distance absorbed as OCR noise
	IncomeTolerancePct float64 // relative band, e.g. 5 for 5%
}

// Unicode-aware: names on Indian documents are often in Devanagari or
// other non-Latin scripts and must survive normalization intact.
var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// dobFormats covers the separator and component orders seen in scanned
// documents; jinzhu/now picks up the stragglers.
var dobFormats = []string{
	"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02",
	"02.01.2006", "2006.01.02", "2 Jan 2006", "2 January 2006",
	"02-01-06", "01/02/2006",
}

// Match compares an extracted field record against the profile field by
// field. A single failing field blocks a verified verdict; partial
// matches are never averaged into a pass.
func Match(extracted FieldRecord, profile models.Profile, cfg MatcherConfig) MatchVerdict {
	var mismatches []string
	var unverifiable []string
	compared := 0

	if extracted.FullName != nil && *extracted.FullName != "" {
		compared++
		if !NamesMatch(*extracted.FullName, profile.FullName, cfg.NameEditDistance) {
			mismatches = append(mismatches, fmt.Sprintf(
				"full name mismatch: document has %q, profile has %q",
				*extracted.FullName, profile.FullName))
		}
	}

	if extracted.DOB != nil && *extracted.DOB != "" {
		if profile.DOB == nil || *profile.DOB == "" {
			unverifiable = append(unverifiable, "date of birth not present on profile")
		} else {
			compared++
			if !DatesMatch(*extracted.DOB, *profile.DOB) {
				mismatches = append(mismatches, fmt.Sprintf(
					"date of birth mismatch: document has %q, profile has %q",
					*extracted.DOB, *profile.DOB))
			}
		}
	}

	if extracted.IDNumber != nil && *extracted.IDNumber != "" {
		if profile.AadhaarNumber == nil || *profile.AadhaarNumber == "" {
			unverifiable = append(unverifiable, "id number not present on profile")
		} else {
			compared++
			if normalizeID(*extracted.IDNumber) != normalizeID(*profile.AadhaarNumber) {
				mismatches = append(mismatches, "id number mismatch")
			}
		}
	}

	if extracted.Income != nil {
		if profile.Income == nil {
			unverifiable = append(unverifiable, "income not present on profile")
		} else {
			compared++
			if !incomeWithinTolerance(*extracted.Income, *profile.Income, cfg.IncomeTolerancePct) {
				mismatches = append(mismatches, fmt.Sprintf(
					"income mismatch: document has %.2f, profile has %.2f",
					*extracted.Income, *profile.Income))
			}
		}
	}

	if len(mismatches) > 0 {
		return MatchVerdict{Status: MatchMismatch, Reasons: append(mismatches, unverifiable...)}
	}
	if len(unverifiable) > 0 {
		return MatchVerdict{Status: MatchUnverifiable, Reasons: unverifiable}
	}
	if compared == 0 {
		return MatchVerdict{Status: MatchUnverifiable, Reasons: []string{"no verifiable fields extracted from document"}}
	}
	return MatchVerdict{Status: MatchVerified}
}

// NormalizeName lowercases, collapses whitespace and strips punctuation.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonWordChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// NamesMatch checks normalized equality, then order-insensitive token
// equality ("Shyam Vadgama" vs "Vadgama Shyam"), then an edit-distance
// tolerance for OCR noise.
func NamesMatch(a, b string, maxDistance int) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	ta, tb := strings.Fields(na), strings.Fields(nb)
	sort.Strings(ta)
	sort.Strings(tb)
	if strings.Join(ta, " ") == strings.Join(tb, " ") {
		return true
	}

	return levenshtein(na, nb) <= maxDistance
}

// ParseDate normalizes the separator and component-order variants seen
// on documents into a calendar date.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dobFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if t, err := now.Parse(value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DatesMatch requires exact calendar-date equality; there is no
// tolerance on dates of birth.
func DatesMatch(a, b string) bool {
	da, okA := ParseDate(a)
	db, okB := ParseDate(b)
	if okA && okB {
		return da.Year() == db.Year() && da.Month() == db.Month() && da.Day() == db.Day()
	}
	// Fall back to direct comparison when either side is unparseable.
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

func normalizeID(id string) string {
	id = strings.ReplaceAll(id, " ", "")
	id = strings.ReplaceAll(id, "-", "")
	return strings.ToUpper(id)
}

func incomeWithinTolerance(docIncome, profileIncome, pct float64) bool {
	diff := docIncome - profileIncome
	if diff < 0 {
		diff = -diff
	}
	band := profileIncome * pct / 100
	if band < 0 {
		band = -band
	}
	return diff <= band
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
