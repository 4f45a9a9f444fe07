package main

import (
	"flag"

	"gorm.io/driver/postgres"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/database"
)

func main() {
	klog.InitFlags(nil)
	rollback := flag.Bool("rollback", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()
	defer klog.Flush()

	config.LoadEnv()
	cfg := config.Load()

	klog.Info("Starting database migration...")

	db, err := database.Open(postgres.Open(cfg.DatabaseURL), database.NewLogger(cfg.GinMode))
	if err != nil {
		klog.Fatalf("Failed to connect to database: %v", err)
	}

	if *rollback {
		err = database.RollbackLast(db)
	} else {
		err = database.Migrate(db)
	}
	if err != nil {
		klog.Fatalf("Migration failed: %v", err)
	}

	klog.Info("Database migration completed successfully!")
}
