package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub-backend/config"
	"talenthub-backend/models"
)

var DB *gorm.DB

// InitDB opens the database and migrates the schema.
func InitDB() {
	var err error

	dbPath := config.GetConfig().DBPath

	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Printf("Database initialized successfully at: %s", dbPath)
}

// Migrate runs schema migration and seeds defaults. Split out so tests can
// run it against their own connection.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Candidate{},
		&models.Client{},
		&models.Requirement{},
		&models.Agency{},
		&models.BGVVendor{},
		&models.FileDocument{},
		&models.EmailTemplate{},
		&models.EmailLog{},
		&models.JobExecution{},
	)
	if err != nil {
		return err
	}

	seedEmailTemplates(db)
	return nil
}

// seedEmailTemplates inserts the default notification templates if missing.
func seedEmailTemplates(db *gorm.DB) {
	defaults := []models.EmailTemplate{
		{
			Name:    "candidate_created",
			Subject: "New candidate: {{.FirstName}} {{.LastName}}",
			Body:    "Candidate {{.FirstName}} {{.LastName}} ({{.Email}}) was added and assigned to you.",
			Enabled: true,
		},
		{
			Name:    "document_verified",
			Subject: "Document reviewed: {{.OriginalName}}",
			Body:    "The document {{.OriginalName}} ({{.Category}}) has been reviewed. Verified: {{.IsVerified}}.",
			Enabled: true,
		},
	}

	for _, tpl := range defaults {
		var count int64
		db.Model(&models.EmailTemplate{}).Where("name = ?", tpl.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&tpl).Error; err != nil {
				log.Printf("seed template %s failed: %v", tpl.Name, err)
			}
		}
	}
}
