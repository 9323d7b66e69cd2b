// Package database owns the process-wide entity store. It opens the sqlite
// database through gorm, migrates the schema and seeds the fixture catalog.
//
// Each entity kind has its repository in a subpackage:
//
//	books.NewRepository(db.DB)
//	users.NewRepository(db.DB)
//	loans.NewRepository(db.DB)
//
// The store knows nothing about cross-entity consistency; keeping a book's
// availability in step with the loan ledger is the lending service's job.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfwise/circulation/internal/entities"
)

var fixtureBooks = []entities.Book{
	{ISBN: "978-0-547-92822-7", Title: "1984", Author: "George Orwell", Publisher: "Gallimard", Year: 1949, Available: true},
	{ISBN: "978-2-07-036822-8", Title: "Le Petit Prince", Author: "Antoine de Saint-Exupéry", Publisher: "Gallimard", Year: 1943, Available: true},
	{ISBN: "978-2-253-00249-1", Title: "Les Misérables", Author: "Victor Hugo", Publisher: "Le Livre de Poche", Year: 1862, Available: true},
}

var fixtureUsers = []entities.User{
	{UserID: "U001", FirstName: "Jean", LastName: "Dupont", Email: "jean.dupont@email.com"},
	{UserID: "U002", FirstName: "Marie", LastName: "Martin", Email: "marie.martin@email.com"},
	{UserID: "U003", FirstName: "Pierre", LastName: "Durand", Email: "pierre.durand@email.com"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite has a single writer; one connection also keeps the shared
	// in-memory database alive for the process lifetime.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.User{},
		&entities.Loan{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedFixtures(); err != nil {
		return nil, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset drops all records and reseeds the fixture set. Intended for tests.
func (d *Database) Reset() error {
	for _, model := range []any{&entities.Loan{}, &entities.AuditEvent{}, &entities.Book{}, &entities.User{}} {
		if err := d.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to reset store: %w", err)
		}
	}
	return d.seedFixtures()
}

func (d *Database) seedFixtures() error {
	for _, book := range fixtureBooks {
		var existing entities.Book
		result := d.DB.Where("isbn = ?", book.ISBN).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to seed book %s: %w", book.ISBN, err)
			}
		}
	}

	for _, user := range fixtureUsers {
		var existing entities.User
		result := d.DB.Where("user_id = ?", user.UserID).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", user.UserID, err)
			}
		}
	}

	return nil
}
