package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("NAME_EDIT_DISTANCE", "")
	t.Setenv("INCOME_TOLERANCE_PCT", "")

	LoadConfig()
	require.NotNil(t, AppConfig)

	assert.Equal(t, "seva", AppConfig.DBName)
	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, 2, AppConfig.NameEditDistance)
	assert.Equal(t, 5.0, AppConfig.IncomeTolerancePct)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("DB_NAME", "seva_staging")
	t.Setenv("NAME_EDIT_DISTANCE", "1")

	LoadConfig()
	require.NotNil(t, AppConfig)

	assert.Equal(t, "seva_staging", AppConfig.DBName)
	assert.Equal(t, 1, AppConfig.NameEditDistance)
}
