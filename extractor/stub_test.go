package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubExtractorParsesLabeledLines(t *testing.T) {
	text := `Full Name: Asha Rao
Date of Birth: 1990-05-01
Aadhaar Number: 1234-5678-9012
Annual Income: 48,000`

	record, err := (&StubExtractor{}).Extract(context.Background(), text, "Income Certificate")
	require.NoError(t, err)

	require.NotNil(t, record.FullName)
	assert.Equal(t, "Asha Rao", *record.FullName)
	require.NotNil(t, record.DOB)
	assert.Equal(t, "1990-05-01", *record.DOB)
	require.NotNil(t, record.IDNumber)
	assert.Equal(t, "1234-5678-9012", *record.IDNumber)
	require.NotNil(t, record.Income)
	assert.Equal(t, 48000.0, *record.Income)
}

func TestStubExtractorToleratesMissingFields(t *testing.T) {
	record, err := (&StubExtractor{}).Extract(context.Background(), "Name: Asha Rao", "Aadhaar Card")
	require.NoError(t, err)

	assert.NotNil(t, record.FullName)
	assert.Nil(t, record.DOB)
	assert.Nil(t, record.IDNumber)
	assert.Nil(t, record.Income)
}

func TestStubExtractorUnreadableInput(t *testing.T) {
	_, err := (&StubExtractor{}).Extract(context.Background(), "   ", "Aadhaar Card")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestStubExtractorHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&StubExtractor{}).Extract(ctx, "Name: Asha Rao", "Aadhaar Card")
	assert.Error(t, err)
}

func TestStubExtractorIsDeterministic(t *testing.T) {
	text := "Name: Asha Rao\nIncome: 48000"

	first, err := (&StubExtractor{}).Extract(context.Background(), text, "Income Certificate")
	require.NoError(t, err)
	second, err := (&StubExtractor{}).Extract(context.Background(), text, "Income Certificate")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
