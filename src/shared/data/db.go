package data

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/redcell-sec/reportbot/src/shared/types"
)

// Connect opens the report database and migrates the schema. A target
// containing a MySQL DSN ("user:pass@tcp(host)/db") uses the MySQL driver;
// anything else is treated as a path to a single-file sqlite database, the
// default deployment.
func Connect(target string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.Contains(target, "@tcp(") {
		dial = mysql.Open(target)
	} else {
		dial = sqlite.Open(target)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&types.Setting{}, &types.Report{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func MustConnect(target string) *gorm.DB {
	db, err := Connect(target)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	return db
}
