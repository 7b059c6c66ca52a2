package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brochure/models"
)

// Preferences stores theme preferences in the visitor's session, so they
// follow the browser cookie the way local storage would.
type Preferences struct {
	manager *scs.SessionManager
}

// NewPreferences adapts a session manager to theme.Preferences. The context
// passed to Get and Put must come from a request wrapped in LoadAndSave.
func NewPreferences(manager *scs.SessionManager) *Preferences {
	return &Preferences{manager: manager}
}

func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	return p.manager.GetString(ctx, key), nil
}

func (p *Preferences) Put(ctx context.Context, key, value string) error {
	p.manager.Put(ctx, key, value)
	return nil
}

// ProfilePreferences stores theme preferences in the preferences table under
// a named profile. The CLI uses it for a durable per-machine preference.
type ProfilePreferences struct {
	db      *gorm.DB
	profile string
}

// NewProfilePreferences scopes preferences to profile; blank means default.
func NewProfilePreferences(db *gorm.DB, profile string) *ProfilePreferences {
	return &ProfilePreferences{db: db, profile: models.NormalizeProfile(profile)}
}

// Profile reports the normalized profile name.
func (p *ProfilePreferences) Profile() string {
	return p.profile
}

func (p *ProfilePreferences) Get(ctx context.Context, key string) (string, error) {
	var row models.Preference
	err := p.db.WithContext(ctx).
		Where(&models.Preference{Profile: p.profile, Key: key}).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", key, err)
	}
	return row.Value, nil
}

func (p *ProfilePreferences) Put(ctx context.Context, key, value string) error {
	row := models.Preference{Profile: p.profile, Key: key, Value: strings.TrimSpace(value)}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

// All lists every preference stored for the profile.
func (p *ProfilePreferences) All(ctx context.Context) (map[string]string, error) {
	var rows []models.Preference
	if err := p.db.WithContext(ctx).Where(&models.Preference{Profile: p.profile}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
