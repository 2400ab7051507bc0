package config

import (
	"errors"
	"log"

	"library-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
// This is for development only
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedBooks(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedBooks() error {
	books := []models.Book{
		{Title: "As Aventuras", Author: "Fulano", Isbn: "123"},
		{Title: "Dom Casmurro", Author: "Machado de Assis", Isbn: "978-85-359-0277-3"},
		{Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", Isbn: "978-1-098-10013-1"},
	}

	for _, b := range books {
		var existing models.Book
		err := s.db.Where("isbn = ?", b.Isbn).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.db.Create(&b).Error; err != nil {
			return err
		}
		log.Printf("   Created book: %s (%s)", b.Title, b.Isbn)
	}
	return nil
}
