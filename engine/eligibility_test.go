package engine

import (
	"encoding/json"
	"seva/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func testScheme(id uint, name string, rules Rules, requiredDocs []string) models.Scheme {
	rulesJSON, _ := json.Marshal(rules)
	docsJSON, _ := json.Marshal(requiredDocs)
	return models.Scheme{
		Model:             gorm.Model{ID: id},
		Name:              name,
		Rules:             datatypes.JSON(rulesJSON),
		RequiredDocuments: datatypes.JSON(docsJSON),
	}
}

func verifiedDoc(name string) models.Document {
	return models.Document{Name: name, Status: models.DocumentVerified}
}

func TestEvaluateOneResultPerSchemeInCatalogOrder(t *testing.T) {
	profile := testProfile()
	schemes := []models.Scheme{
		testScheme(3, "Third", Rules{}, nil),
		testScheme(1, "First", Rules{}, nil),
		testScheme(2, "Second", Rules{}, nil),
	}

	results := Evaluate(&profile, "student", nil, schemes)

	require.Len(t, results, len(schemes))
	assert.Equal(t, uint(3), results[0].SchemeID)
	assert.Equal(t, uint(1), results[1].SchemeID)
	assert.Equal(t, uint(2), results[2].SchemeID)
}

func TestIncomeCeilingIsHeadlineReason(t *testing.T) {
	profile := testProfile()
	profile.Income = floatPtr(50000)
	profile.Category = strPtr("general")

	scheme := testScheme(1, "Scholarship", Rules{MaxIncome: floatPtr(40000)},
		[]string{"Income Certificate"})

	results := Evaluate(&profile, "student", nil, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "income")
	assert.Contains(t, results[0].Reason, "ceiling")
	// Document gaps are still computed as secondary information.
	assert.Equal(t, []string{"Income Certificate"}, results[0].MissingDocuments)
}

func TestMismatchedDocumentCountsAsMissing(t *testing.T) {
	profile := testProfile()
	scheme := testScheme(1, "Scholarship", Rules{}, []string{"Income Certificate"})
	documents := []models.Document{
		{Name: "Income Certificate", Status: models.DocumentMismatch},
	}

	results := Evaluate(&profile, "student", documents, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.False(t, results[0].Eligible)
	assert.Empty(t, results[0].Reason, "predicate holds, so reason stays empty")
	assert.Equal(t, []string{"Income Certificate"}, results[0].MissingDocuments)
}

func TestVerifiedDocumentNeverReportedMissing(t *testing.T) {
	profile := testProfile()
	scheme := testScheme(1, "Scholarship", Rules{},
		[]string{"Aadhaar Card", "Income Certificate"})
	documents := []models.Document{
		verifiedDoc("aadhaar card"), // label matching is case-insensitive
		{Name: "Income Certificate", Status: models.DocumentPending},
	}

	results := Evaluate(&profile, "student", documents, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.NotContains(t, results[0].MissingDocuments, "Aadhaar Card")
	assert.Equal(t, []string{"Income Certificate"}, results[0].MissingDocuments)
}

func TestEligibleWhenPredicateHoldsAndDocumentsVerified(t *testing.T) {
	profile := testProfile()
	profile.Category = strPtr("SC")
	profile.Income = floatPtr(200000)

	scheme := testScheme(1, "Post Matric Scholarship", Rules{
		UserTypes:  []string{"student"},
		MaxIncome:  floatPtr(250000),
		Categories: []string{"SC", "ST"},
	}, []string{"Aadhaar Card", "Income Certificate"})

	documents := []models.Document{
		verifiedDoc("Aadhaar Card"),
		verifiedDoc("Income Certificate"),
	}

	results := Evaluate(&profile, "student", documents, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.True(t, results[0].Eligible)
	assert.Empty(t, results[0].Reason)
	assert.Empty(t, results[0].MissingDocuments)
}

func TestMissingProfileFieldFailsPredicate(t *testing.T) {
	profile := testProfile()
	profile.Category = nil

	scheme := testScheme(1, "Scholarship", Rules{Categories: []string{"SC", "ST"}}, nil)

	results := Evaluate(&profile, "student", nil, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "category")
}

func TestUserTypeRule(t *testing.T) {
	profile := testProfile()
	scheme := testScheme(1, "PM Kisan", Rules{UserTypes: []string{"farmer"}}, nil)

	results := Evaluate(&profile, "student", nil, []models.Scheme{scheme})
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "farmer")

	results = Evaluate(&profile, "farmer", nil, []models.Scheme{scheme})
	assert.True(t, results[0].Eligible)
}

func TestStateRuleCaseInsensitive(t *testing.T) {
	profile := testProfile()
	profile.State = strPtr("gujarat")

	scheme := testScheme(1, "PM Kisan", Rules{State: strPtr("Gujarat")}, nil)

	results := Evaluate(&profile, "farmer", nil, []models.Scheme{scheme})
	assert.True(t, results[0].Eligible)

	profile.State = strPtr("Rajasthan")
	results = Evaluate(&profile, "farmer", nil, []models.Scheme{scheme})
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "Gujarat")
}

func TestAgeRule(t *testing.T) {
	profile := testProfile() // DOB 1990-05-02

	scheme := testScheme(1, "Adult Scheme", Rules{MinAge: intPtr(18)}, nil)
	results := Evaluate(&profile, "other", nil, []models.Scheme{scheme})
	assert.True(t, results[0].Eligible)

	scheme = testScheme(2, "Youth Scheme", Rules{MaxAge: intPtr(25)}, nil)
	results = Evaluate(&profile, "other", nil, []models.Scheme{scheme})
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "maximum age")

	profile.DOB = nil
	results = Evaluate(&profile, "other", nil, []models.Scheme{scheme})
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "date of birth")
}

func TestLandSizeRule(t *testing.T) {
	profile := testProfile()
	scheme := testScheme(1, "Kisan Credit Card", Rules{MinLandSize: floatPtr(0.5)}, nil)

	results := Evaluate(&profile, "farmer", nil, []models.Scheme{scheme})
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "landholding")

	profile.LandSize = floatPtr(2.0)
	results = Evaluate(&profile, "farmer", nil, []models.Scheme{scheme})
	assert.True(t, results[0].Eligible)
}

func TestNilProfileYieldsFullResultSet(t *testing.T) {
	schemes := []models.Scheme{
		testScheme(1, "One", Rules{}, nil),
		testScheme(2, "Two", Rules{MaxIncome: floatPtr(10000)}, nil),
	}

	results := Evaluate(nil, "student", nil, schemes)

	require.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Eligible)
		assert.NotEmpty(t, result.Reason)
	}
}

func TestIneligibleAlwaysCarriesReasonOrMissingDocs(t *testing.T) {
	profile := testProfile()
	schemes := []models.Scheme{
		testScheme(1, "Predicate fails", Rules{MaxIncome: floatPtr(1)}, nil),
		testScheme(2, "Docs missing", Rules{}, []string{"Caste Certificate"}),
	}

	results := Evaluate(&profile, "student", nil, schemes)

	for _, result := range results {
		if !result.Eligible {
			assert.True(t, result.Reason != "" || len(result.MissingDocuments) > 0)
		}
	}
}

func TestMalformedRulesFailPredicateNotCrash(t *testing.T) {
	profile := testProfile()
	scheme := models.Scheme{
		Model: gorm.Model{ID: 1},
		Name:  "Broken",
		Rules: datatypes.JSON([]byte(`{"max_income": "not a number"`)),
	}

	results := Evaluate(&profile, "student", nil, []models.Scheme{scheme})

	require.Len(t, results, 1)
	assert.False(t, results[0].Eligible)
	assert.Contains(t, results[0].Reason, "rules")
}
