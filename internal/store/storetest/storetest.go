// Package storetest opens isolated, migrated in-memory stores for package tests.
package storetest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/config"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/pkg/migrations"
	"gorm.io/gorm"
)

// Open returns a store on a fresh in-memory sqlite database with every migration applied.
func Open() (store.Store, *gorm.DB, error) {
	cfg := config.NewDefault()
	cfg.Database.Name = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.MigrateStore(db, ""); err != nil {
		return nil, nil, err
	}
	return store.NewStore(db), db, nil
}
