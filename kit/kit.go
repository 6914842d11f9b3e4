// Package kit renders a downloadable application kit for an eligible
// (profile, scheme) pair: cover letter, document checklist and next
// steps. Callers must re-check eligibility before building a kit.
package kit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"seva/engine"
	"seva/models"

	"github.com/jung-kurt/gofpdf"
)

// Build writes the application-kit PDF and returns its path.
func Build(outputDir string, profile models.Profile, userType string, scheme models.Scheme, documents []models.Document) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, "Scheme Application Kit", "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.AddPage()

	// Cover letter
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Application for %s", scheme.Name), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	mobile := "N/A"
	if profile.MobileNumber != nil {
		mobile = *profile.MobileNumber
	}
	state := ""
	if profile.State != nil {
		state = *profile.State
	}
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"To,\nThe Authority,\n%s Department.\n\nSubject: Application for %s\n\nRespected Sir/Madam,\n\nI, %s, am writing to formally apply for the %s. I meet the eligibility criteria as a %s residing in %s.\n\nPlease find attached my supporting documents for your verification.\n\nSincerely,\n%s\nMobile: %s",
		scheme.Name, scheme.Name, profile.FullName, scheme.Name, userType, state, profile.FullName, mobile,
	), "", "L", false)
	pdf.Ln(10)

	// Document checklist
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Document Checklist", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)

	var required []string
	if len(scheme.RequiredDocuments) > 0 {
		_ = json.Unmarshal(scheme.RequiredDocuments, &required)
	}
	missing := make(map[string]bool)
	for _, label := range engine.MissingDocuments(scheme, documents) {
		missing[label] = true
	}
	for _, label := range required {
		mark := "[x]"
		if missing[label] {
			mark = "[ ]"
		}
		pdf.CellFormat(0, 8, fmt.Sprintf("%s %s", mark, label), "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	// Next steps
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Next Steps", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"1. Print this letter.\n2. Attach photocopies of the checked documents.\n3. Visit the official portal: %s\n4. Submit this application.",
		scheme.PortalURL,
	), "", "L", false)

	filename := fmt.Sprintf("Application_Kit_%d_%d.pdf", profile.ID, scheme.ID)
	outputPath := filepath.Join(outputDir, filename)
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
