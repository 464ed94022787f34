package model

import "time"

// Participant is one external identity that has contacted the giveaway.
// ExternalID is the opaque stable id assigned by the messaging platform.
type Participant struct {
	ExternalID      int64     `gorm:"primaryKey;autoIncrement:false" json:"external_id"`
	DisplayName     string    `gorm:"type:varchar(256)" json:"display_name"`
	Handle          string    `gorm:"type:varchar(256)" json:"handle"`
	ParticipantCode string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"participant_code"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Entries []Entry `gorm:"foreignKey:ParticipantID;references:ExternalID" json:"entries,omitempty"`
}

func (Participant) TableName() string { return "participants" }
