package engine

import (
	"context"
	"errors"
	"seva/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extractorFunc adapts a function to the Extractor interface.
type extractorFunc func(ctx context.Context, fileText, docName string) (FieldRecord, error)

func (f extractorFunc) Extract(ctx context.Context, fileText, docName string) (FieldRecord, error) {
	return f(ctx, fileText, docName)
}

func newTestVerifier(extract extractorFunc) Verifier {
	return Verifier{
		Extractor: extract,
		Timeout:   time.Second,
		Matcher:   testMatcherConfig,
	}
}

func pendingDocument() models.Document {
	return models.Document{Name: "Aadhaar Card", Status: models.DocumentPending}
}

func TestVerifyTransitionsToVerified(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{FullName: strPtr("Shyam Nileshbhai Vadgama"), DOB: strPtr("1990-05-02")}, nil
	})

	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())

	assert.Equal(t, models.DocumentVerified, doc.Status)
	assert.Nil(t, doc.ValidationMessage)
	assert.NotEmpty(t, doc.ExtractedData, "snapshot must be persisted")
}

func TestVerifyTransitionsToMismatchWithSnapshot(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{DOB: strPtr("1990-05-01")}, nil
	})

	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())

	assert.Equal(t, models.DocumentMismatch, doc.Status)
	require.NotNil(t, doc.ValidationMessage)
	assert.Contains(t, *doc.ValidationMessage, "date of birth")
	// Snapshot is kept even on mismatch so manual correction can pre-fill.
	assert.NotEmpty(t, doc.ExtractedData)
}

func TestVerifyUnverifiableVerdictLandsInMismatchState(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{}, nil
	})

	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())

	assert.Equal(t, models.DocumentMismatch, doc.Status)
	require.NotNil(t, doc.ValidationMessage)
	assert.NotEmpty(t, *doc.ValidationMessage)
}

func TestVerifyExtractionFailure(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{}, errors.New("unsupported file format")
	})

	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())

	assert.Equal(t, models.DocumentExtractionFailed, doc.Status)
	require.NotNil(t, doc.ValidationMessage)
	// The wording must distinguish file problems from identity mismatches.
	assert.Contains(t, *doc.ValidationMessage, "could not read document")
	assert.NotContains(t, *doc.ValidationMessage, "mismatch")
}

func TestVerifyTimeoutMapsToExtractionFailed(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		<-ctx.Done()
		return FieldRecord{}, ctx.Err()
	})
	verifier.Timeout = 10 * time.Millisecond

	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())

	assert.Equal(t, models.DocumentExtractionFailed, doc.Status)
	require.NotNil(t, doc.ValidationMessage)
	assert.Contains(t, *doc.ValidationMessage, "could not read document")
}

func TestVerifyIsIdempotent(t *testing.T) {
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{DOB: strPtr("1990-05-01")}, nil
	})

	first := pendingDocument()
	verifier.Verify(context.Background(), &first, "text", testProfile())

	second := first
	verifier.Verify(context.Background(), &second, "text", testProfile())

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, *first.ValidationMessage, *second.ValidationMessage)
	assert.Equal(t, first.ExtractedData, second.ExtractedData)
}

func TestManualOverrideAlwaysTransitionsToVerified(t *testing.T) {
	for _, status := range []models.DocumentStatus{
		models.DocumentPending,
		models.DocumentMismatch,
		models.DocumentExtractionFailed,
	} {
		doc := models.Document{Name: "Income Certificate", Status: status}
		ManualOverride(&doc, FieldRecord{FullName: strPtr("Shyam Vadgama")})

		assert.Equal(t, models.DocumentVerified, doc.Status, "from %s", status)
		assert.True(t, doc.ManuallyVerified)
		assert.Nil(t, doc.ValidationMessage)
	}
}

func TestManualOverrideMergesIntoSnapshot(t *testing.T) {
	// A mismatched automatic extraction left a partial snapshot behind.
	verifier := newTestVerifier(func(ctx context.Context, fileText, docName string) (FieldRecord, error) {
		return FieldRecord{FullName: strPtr("Shyam Vadgama"), DOB: strPtr("1990-05-01")}, nil
	})
	doc := pendingDocument()
	verifier.Verify(context.Background(), &doc, "text", testProfile())
	require.Equal(t, models.DocumentMismatch, doc.Status)

	// The user corrects only the DOB; the extracted name survives.
	ManualOverride(&doc, FieldRecord{DOB: strPtr("1990-05-02")})

	assert.Equal(t, models.DocumentVerified, doc.Status)
	assert.Contains(t, string(doc.ExtractedData), "Shyam Vadgama")
	assert.Contains(t, string(doc.ExtractedData), "1990-05-02")
}
