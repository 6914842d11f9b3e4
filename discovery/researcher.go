// Package discovery proposes additional candidate schemes from an
// external suggestion source. Suggested schemes only enter the catalog;
// they still pass through the same eligibility engine as every other
// scheme before being shown as eligible or ineligible.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"seva/config"
	"seva/models"
	"strings"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Suggester returns candidate schemes for a profile summary.
type Suggester interface {
	Suggest(ctx context.Context, profileSummary string) ([]models.Scheme, error)
}

// Default is the process-wide suggestion source, set by Init.
var Default Suggester

// Init selects the suggestion source from configuration.
func Init() {
	if config.AppConfig.SearchApiKey == "" || config.AppConfig.SearchApiUrl == "" {
		log.Println("Discovery: using built-in candidate list (no search API configured).")
		Default = &StubSuggester{}
		return
	}
	Default = &searchSuggester{
		client: resty.New(),
		url:    config.AppConfig.SearchApiUrl,
		apiKey: config.AppConfig.SearchApiKey,
	}
}

// Run fetches candidate schemes for the given profile and merges them
// into the catalog, deduplicating by scheme name.
func Run(ctx context.Context, db *gorm.DB, userType string, profile *models.Profile) error {
	if profile == nil {
		return nil
	}

	summary := fmt.Sprintf("%s in %s %s income %s",
		userType, strOr(profile.State, ""), strOr(profile.District, ""), incomeOr(profile.Income))

	candidates, err := Default.Suggest(ctx, summary)
	if err != nil {
		return fmt.Errorf("scheme suggestion failed: %w", err)
	}

	for _, candidate := range candidates {
		var existing models.Scheme
		err := db.Where("name = ?", candidate.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&candidate).Error; err != nil {
			return err
		}
		log.Printf("Discovery: added scheme %q to catalog.", candidate.Name)
	}
	return nil
}

type searchSuggester struct {
	client *resty.Client
	url    string
	apiKey string
}

type suggestedScheme struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	TargetGroup       string          `json:"target_group"`
	Benefits          string          `json:"benefits"`
	PortalURL         string          `json:"portal_url"`
	Rules             json.RawMessage `json:"rules"`
	RequiredDocuments json.RawMessage `json:"required_documents"`
}

func (s *searchSuggester) Suggest(ctx context.Context, profileSummary string) ([]models.Scheme, error) {
	var suggested []suggestedScheme
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetQueryParam("q", "government schemes for "+profileSummary).
		SetResult(&suggested).
		Get(s.url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode())
	}

	schemes := make([]models.Scheme, 0, len(suggested))
	for _, item := range suggested {
		if item.Name == "" {
			continue
		}
		scheme := models.Scheme{
			Name:        item.Name,
			Description: item.Description,
			TargetGroup: item.TargetGroup,
			Benefits:    item.Benefits,
			PortalURL:   item.PortalURL,
		}
		if len(item.Rules) > 0 {
			scheme.Rules = datatypes.JSON(item.Rules)
		}
		if len(item.RequiredDocuments) > 0 {
			scheme.RequiredDocuments = datatypes.JSON(item.RequiredDocuments)
		}
		schemes = append(schemes, scheme)
	}
	return schemes, nil
}

// StubSuggester returns a fixed candidate per user type so the discover
// flow works without any external service.
type StubSuggester struct{}

func (s *StubSuggester) Suggest(ctx context.Context, profileSummary string) ([]models.Scheme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mustJSON := func(v interface{}) datatypes.JSON {
		b, _ := json.Marshal(v)
		return datatypes.JSON(b)
	}

	var candidates []models.Scheme
	switch {
	case strContains(profileSummary, "student"):
		candidates = append(candidates, models.Scheme{
			Name:        "National Means cum Merit Scholarship",
			Description: "Scholarship for meritorious students from economically weaker sections.",
			TargetGroup: "student",
			Benefits:    "Rs 12000 per annum",
			PortalURL:   "https://scholarships.gov.in",
			Rules: mustJSON(map[string]interface{}{
				"user_types": []string{"student"},
				"max_income": 350000,
			}),
			RequiredDocuments: mustJSON([]string{"Aadhaar Card", "Income Certificate"}),
		})
	case strContains(profileSummary, "farmer"):
		candidates = append(candidates, models.Scheme{
			Name:        "Kisan Credit Card",
			Description: "Short-term credit for cultivation and allied activities.",
			TargetGroup: "farmer",
			Benefits:    "Credit up to Rs 3 lakh at subsidised interest",
			PortalURL:   "https://pmkisan.gov.in",
			Rules: mustJSON(map[string]interface{}{
				"user_types":    []string{"farmer"},
				"min_land_size": 0.5,
			}),
			RequiredDocuments: mustJSON([]string{"Aadhaar Card", "Land Records"}),
		})
	}
	return candidates, nil
}

func strContains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func strOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func incomeOr(income *float64) string {
	if income == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0f", *income)
}
