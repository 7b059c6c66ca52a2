package db

import (
	"path/filepath"
	"testing"

	"brochure/internal/config"
	"brochure/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestDialectorSelectsDriver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"postgres", "postgres://user@localhost/brochure", "postgres", false},
		{"postgresql", "postgresql://user@localhost/brochure", "postgres", false},
		{"sqlite scheme", "sqlite://brochure.db", "sqlite", false},
		{"bare path", "brochure.db", "sqlite", false},
		{"memory dsn", "file:brochure?mode=memory", "sqlite", false},
		{"unknown scheme", "mysql://localhost/brochure", "", true},
		{"blank", "  ", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dialector, err := Dialector(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Dialector(%q) expected error", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dialector(%q) error = %v", tt.url, err)
			}
			if got := dialector.Name(); got != tt.want {
				t.Fatalf("Dialector(%q).Name() = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:dbmigrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	if !sqliteDB.Migrator().HasTable(&models.Preference{}) {
		t.Fatal("expected preferences table")
	}
}

func TestConfigureOpensSQLiteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "brochure.db")
	database, err := Configure(config.DatabaseConfig{URL: "sqlite://" + path, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if Get() == nil {
		t.Fatal("expected package database to be set")
	}

	pref := models.Preference{Profile: models.DefaultProfile, Key: "theme:preset", Value: "dark"}
	if err := database.Create(&pref).Error; err != nil {
		t.Fatalf("create preference: %v", err)
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}
