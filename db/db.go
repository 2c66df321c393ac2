package db

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/u16-io/InviteTracker4Discord/model"
)

// DB is the shared join log handle. It stays nil while the join log is disabled.
var DB *gorm.DB

// Init opens the sqlite database at path and migrates the join log schema
func Init(path string) error {
	conn, err := gorm.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", path, err)
	}
	if err := conn.AutoMigrate(&model.JoinRecord{}).Error; err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	DB = conn
	return nil
}

// Enabled reports whether Init has opened a database
func Enabled() bool {
	return DB != nil
}

// Close closes the database if it was opened
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
