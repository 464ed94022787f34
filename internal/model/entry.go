package model

import "time"

// Entry is one accepted redemption of a code word by a participant.
// EntryNumber is a ledger-wide sequence value assigned at creation and
// never reused; (ParticipantID, Code) is unique so a repeat submission
// can only ever map back to the same entry.
type Entry struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ParticipantID int64     `gorm:"not null;uniqueIndex:idx_entries_participant_code" json:"participant_id"`
	Code          string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_entries_participant_code" json:"code"`
	EntryNumber   int       `gorm:"not null;uniqueIndex" json:"entry_number"`
	CreatedAt     time.Time `json:"created_at"`

	Participant Participant `gorm:"foreignKey:ParticipantID;references:ExternalID" json:"-"`
}

func (Entry) TableName() string { return "entries" }
