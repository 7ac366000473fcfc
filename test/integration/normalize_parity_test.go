package integration

import (
	"os"
	"testing"

	"ai-shopassist-be/pkg/database"
	"ai-shopassist-be/pkg/textnorm"

	"github.com/stretchr/testify/require"
)

// TestNormalizeParity proves the application-layer normalizer and the
// database-side normalize_text() produce byte-identical output over the
// golden corpus. Server-side filtering relies on this; a divergence here is
// release blocking.
func TestNormalizeParity(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	for _, input := range textnorm.GoldenCorpus() {
		var dbNorm string
		err := db.Raw("SELECT normalize_text(?)", input).Scan(&dbNorm).Error
		require.NoError(t, err, "normalize_text(%q)", input)

		appNorm := textnorm.Normalize(input)
		require.Equal(t, appNorm, dbNorm,
			"app and database normalization diverge for %q", input)
	}
}

// A database NULL must stay NULL through normalize_text, unlike the
// application layer where absent input maps to the empty string.
func TestNormalizeParityNullPropagates(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	var result *string
	err = db.Raw("SELECT normalize_text(NULL)").Scan(&result).Error
	require.NoError(t, err)
	require.Nil(t, result)
}
