package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Participant{},
		&Entry{},
		&Preference{},
	); err != nil {
		return err
	}

	// Codes are stored lowercased; the pair must stay unique under any casing.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_participant_code_lower " +
			"ON entries (participant_id, (lower(code)))",
	).Error
}
