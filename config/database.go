package config

import (
	"database/sql"
	"fmt"
	"strings"

	"halal-directory/models"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the directory stores.
var Models = []any{
	&models.Location{},
	&models.Cuisine{},
	&models.Restaurant{},
	&models.RestaurantLocation{},
	&models.RestaurantCuisine{},
	&models.RestaurantInstance{},
}

// OpenDB connects to the configured database and migrates the schema.
// References between tables are plain id columns; no foreign-key
// constraints are created.
func OpenDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("database connected and migrated", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		sep := "?"
		if strings.Contains(cfg.DatabaseURL, "?") {
			sep = "&"
		}
		return sqlite.Open(cfg.DatabaseURL + sep + "_pragma=busy_timeout(5000)"), nil
	case DriverPostgres:
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
		return postgres.New(postgres.Config{Conn: conn}), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
