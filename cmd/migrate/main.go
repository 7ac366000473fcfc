package main

import (
	"log"
	"os"

	"ai-shopassist-be/internal/model"
	"ai-shopassist-be/pkg/database"

	"github.com/joho/godotenv"
)

// normalizeTextSQL is the Postgres twin of pkg/textnorm.Normalize. The two
// implementations must stay byte-identical over the golden corpus (see
// test/integration); any change here requires the same change there.
//
// NULL propagates as NULL (STRICT), unlike the application layer where an
// absent input maps to "".
const normalizeTextSQL = `
CREATE OR REPLACE FUNCTION normalize_text(input text) RETURNS text AS $$
DECLARE
  result text;
BEGIN
  result := lower(input);
  result := translate(result, 'éèêëáàâíìîïóòôúùûýÿñç', 'eeeeaaaiiiioooouuuyync');
  result := replace(result, 'å', 'aa');
  result := replace(result, 'ø', 'oe');
  result := replace(result, 'æ', 'ae');
  result := replace(result, 'ä', 'ae');
  result := replace(result, 'ö', 'oe');
  result := replace(result, 'ü', 'ue');
  result := replace(result, 'ß', 'ss');
  result := regexp_replace(result, '\s+', ' ', 'g');
  result := btrim(result);
  result := regexp_replace(result, '([a-z])[\-. ]([0-9])', '\1\2', 'g');
  RETURN result;
END;
$$ LANGUAGE plpgsql IMMUTABLE STRICT;
`

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	log.Println("Step 1: Setting up Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Offer{},
		&model.ContentChunk{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Println("Step 3: Installing normalize_text() (server-side filtering twin)...")
	if err := db.Exec(normalizeTextSQL).Error; err != nil {
		log.Fatal("Error: Failed to install normalize_text:", err)
	}

	log.Println("Migration completed.")
}
