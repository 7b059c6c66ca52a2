package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brochure/internal/db"
	applog "brochure/internal/log"
)

// New returns a migrated in-memory sqlite database. Every call gets its own
// database so parallel servers and tests never share session rows.
func New(ctx context.Context) (*gorm.DB, error) {
	name := uuid.NewString()
	applog.Debug(ctx, "initialising in-memory database", "name", name)

	database, err := gorm.Open(sqlite.Open(dsn(name)), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	// A shared-cache memory database disappears with its last connection.
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "in-memory database ready", "name", name)
	return database, nil
}

func dsn(name string) string {
	return fmt.Sprintf("file:brochure-%s?mode=memory&cache=shared", name)
}
