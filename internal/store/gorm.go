package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/ngrok/sqlmw"
	"github.com/watchair/watchair/internal/config"
	"github.com/watchair/watchair/pkg/log"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const metricsDriverName = "pgx-metrics"

var registerDriver sync.Once

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dia gorm.Dialector

	if cfg.Database.Type == "pgsql" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			cfg.Database.Hostname,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Port,
		)
		if cfg.Database.Name != "" {
			dsn = fmt.Sprintf("%s dbname=%s", dsn, cfg.Database.Name)
		}

		registerDriver.Do(func() {
			sql.Register(metricsDriverName, sqlmw.Driver(stdlib.GetDefaultDriver(), &metricInterceptor{}))
		})
		dia = postgres.New(postgres.Config{DriverName: metricsDriverName, DSN: dsn})
	} else {
		dia = sqlite.Open(sqliteDSN(cfg.Database.Name))
	}

	// Constraint errors are classified by translateError, which needs the driver error.
	newDB, err := gorm.Open(dia, &gorm.Config{Logger: log.NewGormLogger(), TranslateError: false})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to connect database: %v", err)
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to configure connections: %v", err)
		return nil, err
	}

	if cfg.Database.Type == "pgsql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

		var version string
		if result := newDB.Raw("SELECT version()").Scan(&version); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}
		zap.S().Named("gorm").Infof("PostgreSQL information: '%s'", version)
		return newDB, nil
	}

	// in-memory sqlite lives as long as its single connection
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return newDB, nil
}

// sqliteDSN turns foreign keys on unless the DSN already sets them: metric values
// are dropped through ON DELETE CASCADE.
func sqliteDSN(name string) string {
	if strings.Contains(name, "_foreign_keys=") || strings.Contains(name, "_fk=") {
		return name
	}
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	return name + sep + "_foreign_keys=1"
}
