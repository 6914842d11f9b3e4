package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"seva/models"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Extractor produces a best-effort structured record from raw document
// text. Implementations must honor the context deadline.
type Extractor interface {
	Extract(ctx context.Context, fileText, docName string) (FieldRecord, error)
}

// Verifier orchestrates extraction and field matching for one document.
// It mutates only the document it is given; persistence is the caller's
// concern, with last-writer-wins semantics on racing verifications.
type Verifier struct {
	Extractor Extractor
	Timeout   time.Duration
	Matcher   MatcherConfig
}

// Verify runs extraction and matching and applies the resulting state
// transition. Extractor failures of any kind (timeout, unreadable file,
// malformed response) land in extraction_failed with a message that is
// clearly distinct from mismatch wording; they never propagate as
// errors. The extracted snapshot is kept even when the verdict is a
// mismatch so a later manual correction can pre-fill from it.
func (v *Verifier) Verify(ctx context.Context, doc *models.Document, fileText string, profile models.Profile) {
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	record, err := v.Extractor.Extract(ctx, fileText, doc.Name)
	if err != nil {
		doc.Status = models.DocumentExtractionFailed
		msg := fmt.Sprintf("could not read document: %v", err)
		doc.ValidationMessage = &msg
		return
	}

	if snapshot, err := json.Marshal(record); err == nil {
		doc.ExtractedData = datatypes.JSON(snapshot)
	}

	verdict := Match(record, profile, v.Matcher)
	if verdict.Status == MatchVerified {
		doc.Status = models.DocumentVerified
		doc.ValidationMessage = nil
		return
	}

	doc.Status = models.DocumentMismatch
	msg := strings.Join(verdict.Reasons, "; ")
	doc.ValidationMessage = &msg
}

// ManualOverride applies user-declared field values as authoritative and
// transitions the document directly to verified, bypassing extraction.
// The override is recorded on the document so the attestation trail
// stays retrievable; eligibility evaluation does not distinguish it.
func ManualOverride(doc *models.Document, fields FieldRecord) {
	var merged FieldRecord
	if len(doc.ExtractedData) > 0 {
		// Pre-fill from whatever partial extraction produced earlier.
		_ = json.Unmarshal(doc.ExtractedData, &merged)
	}
	if fields.FullName != nil {
		merged.FullName = fields.FullName
	}
	if fields.DOB != nil {
		merged.DOB = fields.DOB
	}
	if fields.IDNumber != nil {
		merged.IDNumber = fields.IDNumber
	}
	if fields.Income != nil {
		merged.Income = fields.Income
	}

	if snapshot, err := json.Marshal(merged); err == nil {
		doc.ExtractedData = datatypes.JSON(snapshot)
	}
	doc.Status = models.DocumentVerified
	doc.ManuallyVerified = true
	doc.ValidationMessage = nil
}
