package engine

import (
	"seva/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

var testMatcherConfig = MatcherConfig{
	NameEditDistance:   2,
	IncomeTolerancePct: 5,
}

func testProfile() models.Profile {
	return models.Profile{
		FullName:      "Shyam Nileshbhai Vadgama",
		DOB:           strPtr("1990-05-02"),
		AadhaarNumber: strPtr("1234 5678 9012"),
		Income:        floatPtr(50000),
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "Shyam Vadgama", "Shyam Vadgama", true},
		{"case and spacing", "  shyam   VADGAMA ", "Shyam Vadgama", true},
		{"punctuation stripped", "Shyam. Vadgama", "Shyam Vadgama", true},
		{"token order", "Vadgama Shyam", "Shyam Vadgama", true},
		{"ocr typo within tolerance", "Shyam Vadgana", "Shyam Vadgama", true},
		{"devanagari identical", "श्याम वडगामा", "श्याम वडगामा", true},
		{"devanagari spacing and punctuation", " श्याम  वडगामा. ", "श्याम वडगामा", true},
		{"devanagari different person", "रमेश पटेल", "श्याम वडगामा", false},
		{"different person", "Ramesh Patel", "Shyam Vadgama", false},
		{"empty side", "", "Shyam Vadgama", false},
		{"missing middle name", "Shyam Vadgama", "Shyam Nileshbhai Vadgama", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.a, tt.b, 2))
		})
	}
}

func TestNormalizeNameKeepsNonLatinScripts(t *testing.T) {
	assert.Equal(t, "श्याम वडगामा", NormalizeName(" श्याम   वडगामा "))
	assert.NotEmpty(t, NormalizeName("श्याम वडगामा"))
}

func TestDatesMatch(t *testing.T) {
	assert.True(t, DatesMatch("1990-05-02", "1990-05-02"))
	assert.True(t, DatesMatch("02-05-1990", "1990-05-02"))
	assert.True(t, DatesMatch("02/05/1990", "1990-05-02"))
	assert.True(t, DatesMatch("2 May 1990", "1990-05-02"))
	assert.False(t, DatesMatch("1990-05-01", "1990-05-02"))
}

func TestMatchVerifiedAllFields(t *testing.T) {
	verdict := Match(FieldRecord{
		FullName: strPtr("Shyam Nileshbhai Vadgama"),
		DOB:      strPtr("02-05-1990"),
		IDNumber: strPtr("1234-5678-9012"),
		Income:   floatPtr(51000),
	}, testProfile(), testMatcherConfig)

	assert.Equal(t, MatchVerified, verdict.Status)
	assert.Empty(t, verdict.Reasons)
}

func TestMatchDOBMismatchIsHardFailure(t *testing.T) {
	verdict := Match(FieldRecord{
		FullName: strPtr("Shyam Nileshbhai Vadgama"),
		DOB:      strPtr("1990-05-01"),
	}, testProfile(), testMatcherConfig)

	assert.Equal(t, MatchMismatch, verdict.Status)
	assert.Len(t, verdict.Reasons, 1)
	assert.Contains(t, verdict.Reasons[0], "date of birth")
}

func TestMatchIDNumberStripping(t *testing.T) {
	verdict := Match(FieldRecord{
		IDNumber: strPtr("1234-5678-9012"),
	}, testProfile(), testMatcherConfig)
	assert.Equal(t, MatchVerified, verdict.Status)

	verdict = Match(FieldRecord{
		IDNumber: strPtr("9999 9999 9999"),
	}, testProfile(), testMatcherConfig)
	assert.Equal(t, MatchMismatch, verdict.Status)
	assert.Contains(t, verdict.Reasons[0], "id number")
}

func TestMatchIDNumberAbsentIsUnverifiable(t *testing.T) {
	profile := testProfile()
	profile.AadhaarNumber = nil

	verdict := Match(FieldRecord{
		IDNumber: strPtr("1234 5678 9012"),
	}, profile, testMatcherConfig)

	assert.Equal(t, MatchUnverifiable, verdict.Status)
	assert.Contains(t, verdict.Reasons[0], "id number")
}

func TestMatchIncomeTolerance(t *testing.T) {
	// 5% of 50000 is 2500; 52500 is inside the band, 53000 is not.
	verdict := Match(FieldRecord{Income: floatPtr(52500)}, testProfile(), testMatcherConfig)
	assert.Equal(t, MatchVerified, verdict.Status)

	verdict = Match(FieldRecord{Income: floatPtr(53000)}, testProfile(), testMatcherConfig)
	assert.Equal(t, MatchMismatch, verdict.Status)
	assert.Contains(t, verdict.Reasons[0], "income")
}

func TestMatchNeverAveragesPartialMatches(t *testing.T) {
	// Name matches perfectly, DOB does not: the verdict must be mismatch.
	verdict := Match(FieldRecord{
		FullName: strPtr("Shyam Nileshbhai Vadgama"),
		DOB:      strPtr("1991-05-02"),
	}, testProfile(), testMatcherConfig)

	assert.Equal(t, MatchMismatch, verdict.Status)
}

func TestMatchEmptyRecordIsUnverifiable(t *testing.T) {
	verdict := Match(FieldRecord{}, testProfile(), testMatcherConfig)

	assert.Equal(t, MatchUnverifiable, verdict.Status)
	assert.NotEmpty(t, verdict.Reasons)
}
