package models

import (
	"strings"
	"time"
)

// DefaultProfile is the preference scope used when none is given.
const DefaultProfile = "default"

// Preference is one persisted key/value pair of a local preference profile.
type Preference struct {
	Profile   string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}

// NormalizeProfile trims and lower-cases a profile name, defaulting blanks.
func NormalizeProfile(profile string) string {
	profile = strings.ToLower(strings.TrimSpace(profile))
	if profile == "" {
		return DefaultProfile
	}
	return profile
}
