package database

import (
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var GORMDB *gorm.DB
var GORMDBMutex sync.Mutex

// Connect opens the sqlite user store and migrates the schema. Room and
// attendance state is never persisted here; only identity lives in the
// database.
func Connect(path string) error {
	var err error
	GORMDB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}
	return GORMDB.AutoMigrate(&UserAccount{})
}
