package db

import (
	"github.com/donelist-dev/donelist/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	// The join table is managed through its own model so the composite
	// unique index and the cascade rules survive migration.
	if err := DB.SetupJoinTable(&models.Todo{}, "Tags", &models.TodoTag{}); err != nil {
		return err
	}

	if err := DB.SetupJoinTable(&models.Tag{}, "Todos", &models.TodoTag{}); err != nil {
		return err
	}

	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Todo{},
		&models.TodoTag{},
	}

	migrator := DB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := DB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
