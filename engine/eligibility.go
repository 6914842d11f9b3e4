package engine

import (
	"encoding/json"
	"fmt"
	"seva/models"
	"strings"
	"time"
)

// Rules is the structured eligibility predicate stored on a scheme. Any
// field a rule needs that is absent on the profile counts as predicate
// failure, never as an error.
type Rules struct {
	UserTypes   []string `json:"user_types,omitempty"`
	MaxIncome   *float64 `json:"max_income,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	State       *string  `json:"state,omitempty"`
	District    *string  `json:"district,omitempty"`
	MinAge      *int     `json:"min_age,omitempty"`
	MaxAge      *int     `json:"max_age,omitempty"`
	MinLandSize *float64 `json:"min_land_size,omitempty"`
}

// Result is the per-scheme eligibility verdict. Eligible implies an
// empty missing-document list and an empty reason; ineligible carries a
// predicate reason, a non-empty missing list, or both.
type Result struct {
	SchemeID         uint
	Eligible         bool
	Reason           string
	MissingDocuments []string
}

// Evaluate produces one Result per catalog scheme, in catalog order. It
// is a pure function of its inputs: no hidden state, no memoization, so
// verdicts can never go stale after a document transitions state. A nil
// profile makes every scheme ineligible but still yields a full result
// set.
func Evaluate(profile *models.Profile, userType string, documents []models.Document, schemes []models.Scheme) []Result {
	results := make([]Result, 0, len(schemes))
	for _, scheme := range schemes {
		results = append(results, evaluateScheme(profile, userType, documents, scheme))
	}
	return results
}

func evaluateScheme(profile *models.Profile, userType string, documents []models.Document, scheme models.Scheme) Result {
	result := Result{SchemeID: scheme.ID, MissingDocuments: []string{}}

	if profile == nil {
		result.Reason = "profile not created"
		return result
	}

	// Document gaps are computed independently of the predicate so they
	// are always available as secondary information.
	result.MissingDocuments = MissingDocuments(scheme, documents)

	if reason := checkPredicate(profile, userType, scheme); reason != "" {
		result.Reason = reason
		return result
	}

	result.Eligible = len(result.MissingDocuments) == 0
	return result
}

// checkPredicate returns the first failing rule's reason, or "" when the
// whole predicate holds against the profile.
func checkPredicate(profile *models.Profile, userType string, scheme models.Scheme) string {
	var rules Rules
	if len(scheme.Rules) > 0 {
		if err := json.Unmarshal(scheme.Rules, &rules); err != nil {
			return "scheme rules could not be interpreted"
		}
	}

	if len(rules.UserTypes) > 0 && !containsFold(rules.UserTypes, userType) {
		return fmt.Sprintf("scheme is only for %s", strings.Join(rules.UserTypes, "/"))
	}

	if rules.MaxIncome != nil {
		if profile.Income == nil {
			return "annual income not provided on profile"
		}
		if *profile.Income > *rules.MaxIncome {
			return fmt.Sprintf("income %.0f exceeds ceiling %.0f", *profile.Income, *rules.MaxIncome)
		}
	}

	if len(rules.Categories) > 0 {
		if profile.Category == nil || *profile.Category == "" {
			return "category not provided on profile"
		}
		if !containsFold(rules.Categories, *profile.Category) {
			return fmt.Sprintf("category %s not eligible", *profile.Category)
		}
	}

	if rules.State != nil {
		if profile.State == nil || *profile.State == "" {
			return "state not provided on profile"
		}
		if !strings.EqualFold(strings.TrimSpace(*profile.State), strings.TrimSpace(*rules.State)) {
			return fmt.Sprintf("only for residents of %s", *rules.State)
		}
	}

	if rules.District != nil {
		if profile.District == nil || *profile.District == "" {
			return "district not provided on profile"
		}
		if !strings.EqualFold(strings.TrimSpace(*profile.District), strings.TrimSpace(*rules.District)) {
			return fmt.Sprintf("only for residents of %s district", *rules.District)
		}
	}

	if rules.MinAge != nil || rules.MaxAge != nil {
		if profile.DOB == nil || *profile.DOB == "" {
			return "date of birth not provided on profile"
		}
		dob, ok := ParseDate(*profile.DOB)
		if !ok {
			return "date of birth not provided on profile"
		}
		age := ageAt(dob, time.Now())
		if rules.MinAge != nil && age < *rules.MinAge {
			return fmt.Sprintf("minimum age is %d", *rules.MinAge)
		}
		if rules.MaxAge != nil && age > *rules.MaxAge {
			return fmt.Sprintf("maximum age is %d", *rules.MaxAge)
		}
	}

	if rules.MinLandSize != nil {
		if profile.LandSize == nil {
			return "landholding not provided on profile"
		}
		if *profile.LandSize < *rules.MinLandSize {
			return fmt.Sprintf("landholding below %.1f acres", *rules.MinLandSize)
		}
	}

	return ""
}

// MissingDocuments returns, in the scheme's declared order, every
// required document label the user does not hold in verified state. A
// document in pending, mismatch or extraction_failed state counts as
// missing, so the remediation shown to the user is the same upload flow.
func MissingDocuments(scheme models.Scheme, documents []models.Document) []string {
	var required []string
	if len(scheme.RequiredDocuments) > 0 {
		// A malformed list means nothing can be required.
		_ = json.Unmarshal(scheme.RequiredDocuments, &required)
	}

	verified := make(map[string]bool, len(documents))
	for _, doc := range documents {
		if doc.Status == models.DocumentVerified {
			verified[normalizeLabel(doc.Name)] = true
		}
	}

	missing := []string{}
	for _, label := range required {
		if !verified[normalizeLabel(label)] {
			missing = append(missing, label)
		}
	}
	return missing
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func ageAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}
