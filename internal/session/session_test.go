package session

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/gormstore"
	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brochure/internal/db/memory"
	"brochure/internal/theme"
)

var (
	_ theme.Preferences = (*Preferences)(nil)
	_ theme.Preferences = (*ProfilePreferences)(nil)
)

func TestPreferencesRoundTripThroughSession(t *testing.T) {
	t.Parallel()

	manager := scs.New()
	ctx, err := manager.Load(context.Background(), "")
	require.NoError(t, err)

	prefs := NewPreferences(manager)

	value, err := prefs.Get(ctx, theme.PresetKey)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, prefs.Put(ctx, theme.PresetKey, "dark"))
	value, err = prefs.Get(ctx, theme.PresetKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
	assert.Equal(t, scs.Modified, manager.Status(ctx))
}

func TestPreferencesPersistInDatabaseSessions(t *testing.T) {
	t.Parallel()

	db, err := memory.New(context.Background())
	require.NoError(t, err)
	store, err := gormstore.NewWithCleanupInterval(db, 0)
	require.NoError(t, err)

	manager := scs.New()
	manager.Store = store

	ctx, err := manager.Load(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, NewPreferences(manager).Put(ctx, theme.PresetKey, "blue-dark"))
	token, _, err := manager.Commit(ctx)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("sessions").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	restored, err := manager.Load(context.Background(), token)
	require.NoError(t, err)
	value, err := NewPreferences(manager).Get(restored, theme.PresetKey)
	require.NoError(t, err)
	assert.Equal(t, "blue-dark", value)
}

func TestPreferencesRequireLoadedSession(t *testing.T) {
	t.Parallel()

	prefs := NewPreferences(scs.New())
	assert.Panics(t, func() {
		_, _ = prefs.Get(context.Background(), theme.PresetKey)
	}, "preferences are only valid inside LoadAndSave")
}

func TestProfilePreferencesUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := memory.New(ctx)
	require.NoError(t, err)

	prefs := NewProfilePreferences(db, " Studio ")
	assert.Equal(t, "studio", prefs.Profile())

	value, err := prefs.Get(ctx, theme.PresetKey)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, prefs.Put(ctx, theme.PresetKey, "blue"))
	require.NoError(t, prefs.Put(ctx, theme.PresetKey, "blue-dark"))
	require.NoError(t, prefs.Put(ctx, theme.PreferSystemKey, "true"))

	value, err = prefs.Get(ctx, theme.PresetKey)
	require.NoError(t, err)
	assert.Equal(t, "blue-dark", value)

	all, err := prefs.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{theme.PresetKey: "blue-dark", theme.PreferSystemKey: "true"}, all)

	other := NewProfilePreferences(db, "")
	value, err = other.Get(ctx, theme.PresetKey)
	require.NoError(t, err)
	assert.Empty(t, value, "profiles must not share preferences")
}

func TestStoreDrivesThemeFromSession(t *testing.T) {
	t.Parallel()

	manager := scs.New()
	ctx, err := manager.Load(context.Background(), "")
	require.NoError(t, err)
	prefs := NewPreferences(manager)
	require.NoError(t, prefs.Put(ctx, theme.PresetKey, "dark"))

	loader := theme.LoaderFunc(func(context.Context) (*theme.Descriptor, error) {
		return &theme.Descriptor{
			Colors:  theme.Colors{"primary": "#000000"},
			Fonts:   map[string]string{"body": "serif"},
			Presets: map[string]theme.Preset{"dark": {Colors: theme.Colors{"primary": "#ffffff"}}},
		}, nil
	})
	store := theme.NewStore(loader, prefs)
	defer store.Close()

	require.NoError(t, store.Initialize(ctx))
	assert.Equal(t, "dark", store.ActivePreset())
	assert.Equal(t, "#ffffff", store.Color("primary"))
}
