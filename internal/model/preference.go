package model

import "time"

// PreferenceFlag enumerates the togglable notification categories.
// The closed set keeps flag names out of dynamically built queries.
type PreferenceFlag string

const (
	PreferenceFlagResults PreferenceFlag = "results"
	PreferenceFlagVideos  PreferenceFlag = "videos"
	PreferenceFlagStreams PreferenceFlag = "streams"
)

// ValidPreferenceFlag reports whether flag is one of the known categories.
func ValidPreferenceFlag(flag PreferenceFlag) bool {
	switch flag {
	case PreferenceFlagResults, PreferenceFlagVideos, PreferenceFlagStreams:
		return true
	}
	return false
}

// Preference holds a participant's per-category notification opt-ins.
// All categories default to opted in.
type Preference struct {
	ParticipantID int64     `gorm:"primaryKey;autoIncrement:false" json:"participant_id"`
	NotifyResults bool      `gorm:"not null;default:true" json:"notify_results"`
	NotifyVideos  bool      `gorm:"not null;default:true" json:"notify_videos"`
	NotifyStreams bool      `gorm:"not null;default:true" json:"notify_streams"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Participant Participant `gorm:"foreignKey:ParticipantID;references:ExternalID" json:"-"`
}

func (Preference) TableName() string { return "preferences" }

// Enabled returns the value of the given flag.
func (p Preference) Enabled(flag PreferenceFlag) bool {
	switch flag {
	case PreferenceFlagResults:
		return p.NotifyResults
	case PreferenceFlagVideos:
		return p.NotifyVideos
	case PreferenceFlagStreams:
		return p.NotifyStreams
	}
	return false
}
