package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// ConnectDB opens the database named by DB_DRIVER and stores the handle in
// the package-level DB. Exits the process when the database is unreachable.
func ConnectDB() {
	db, err := Open()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	DB = db
	fmt.Println("Database successfully connected!")
}

// Open builds a connection from the environment without touching the global,
// so tests and the admin CLI can hold their own handles.
func Open() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt: false,

		// Map driver-specific unique violations onto gorm.ErrDuplicatedKey
		// so callers handle them the same way on sqlite and postgres.
		TranslateError: true,

		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "",
			SingularTable: false,
		},
	}

	switch driver := config.Config("DB_DRIVER"); driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.Config("DB_HOST"), config.Config("DB_PORT"), config.Config("DB_USER"),
			config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
		return gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite":
		return OpenSQLite(config.Config("SQLITE_PATH"), gormConfig)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// OpenSQLite opens a sqlite database with foreign key enforcement on.
// sqlite leaves that off per connection unless asked, so the switch rides
// the DSN and reaches every pooled connection. In-memory databases get a
// single connection, each new one would otherwise start empty.
func OpenSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if !strings.Contains(path, "_foreign_keys") {
		if strings.Contains(path, "?") {
			path += "&_foreign_keys=on"
		} else {
			path += "?_foreign_keys=on"
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, err
	}
	if strings.Contains(path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model the app persists.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
}
