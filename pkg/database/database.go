package database

import (
	"fmt"
	"log"
	"secaware_backend/internal/config"
	"secaware_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// shouldMigrate reports whether the schema is migrated at startup. Debug
// builds always migrate; release builds only when forced by flag.
func shouldMigrate(cfg *config.Config) bool {
	return cfg.Server.Mode != "release" || cfg.ForceMigrate
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !shouldMigrate(cfg) {
		log.Println("Skipping schema migration (start with -migrate to force)")
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.TrainingModule{},
		&model.TrainingSession{},
		&model.UserProgress{},
		&model.UserSettings{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedCatalog(db)

	return db, nil
}

// seedCatalog inserts the built-in training catalog on first boot. Modules
// are keyed by a stable string id so reseeding never duplicates entries.
func seedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.TrainingModule{}).Count(&count)
	if count > 0 {
		return
	}

	catalog := []model.TrainingModule{
		{
			ModuleID:         "phishing-basics",
			Type:             model.Phishing,
			Title:            "Phishing Fundamentals",
			Description:      "Spot fraudulent emails, texts and links before they spot you.",
			Difficulty:       model.Beginner,
			EstimatedMinutes: 15,
			TotalScenarios:   5,
			RequiredScore:    70,
		},
		{
			ModuleID:         "phishing-advanced",
			Type:             model.Phishing,
			Title:            "Spear Phishing & BEC",
			Description:      "Targeted lures, executive impersonation and invoice fraud.",
			Difficulty:       model.Advanced,
			EstimatedMinutes: 20,
			TotalScenarios:   5,
			RequiredScore:    80,
			Prerequisites:    []string{"phishing-basics"},
		},
		{
			ModuleID:         "social-engineering-101",
			Type:             model.SocialEngineering,
			Title:            "Social Engineering Defense",
			Description:      "Pretexting, tailgating and phone-based manipulation.",
			Difficulty:       model.Intermediate,
			EstimatedMinutes: 20,
			TotalScenarios:   4,
			RequiredScore:    70,
			Prerequisites:    []string{"phishing-basics"},
		},
		{
			ModuleID:         "password-hygiene",
			Type:             model.PasswordSecurity,
			Title:            "Password & Credential Hygiene",
			Description:      "Judge credential practices and spot reuse traps.",
			Difficulty:       model.Beginner,
			EstimatedMinutes: 10,
			TotalScenarios:   4,
			RequiredScore:    70,
		},
		{
			ModuleID:         "incident-101",
			Type:             model.IncidentResponse,
			Title:            "Incident First Response",
			Description:      "What to do in the first ten minutes of a suspected breach.",
			Difficulty:       model.Intermediate,
			EstimatedMinutes: 25,
			TotalScenarios:   4,
			RequiredScore:    75,
			Prerequisites:    []string{"phishing-basics", "password-hygiene"},
		},
		{
			ModuleID:         "incident-advanced",
			Type:             model.IncidentResponse,
			Title:            "Incident Command",
			Description:      "Escalation, containment and communication under pressure.",
			Difficulty:       model.Expert,
			EstimatedMinutes: 30,
			TotalScenarios:   5,
			RequiredScore:    85,
			Prerequisites:    []string{"incident-101", "social-engineering-101"},
		},
	}

	for i := range catalog {
		db.Create(&catalog[i])
	}
	log.Printf("Seeded training catalog with %d modules", len(catalog))
}
