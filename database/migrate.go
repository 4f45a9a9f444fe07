package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/models"
)

// migrations is the ordered schema history. Append only.
func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202601010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Project{},
					&models.ProjectMember{},
					&models.Idea{},
					&models.Application{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&models.Application{},
					&models.Idea{},
					&models.ProjectMember{},
					&models.Project{},
					&models.User{},
				)
			},
		},
		{
			ID: "202601150001_member_position",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasColumn(&models.ProjectMember{}, "Position") {
					return nil
				}
				return tx.Migrator().AddColumn(&models.ProjectMember{}, "Position")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&models.ProjectMember{}, "Position")
			},
		},
		{
			ID: "202602010001_application_versions",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasColumn(&models.Application{}, "Versions") {
					return nil
				}
				return tx.Migrator().AddColumn(&models.Application{}, "Versions")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&models.Application{}, "Versions")
			},
		},
	}
}

// Migrate brings the schema up to date
func Migrate(db *gorm.DB) error {
	klog.Info("Migrating database schema...")
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	klog.Info("Database schema migrated")
	return nil
}

// RollbackLast undoes the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	klog.Info("Rolled back last migration")
	return nil
}
