package main

import (
	"context"
	"log"

	"github.com/yvensrabelo/entropia-site-2-sub000/adapters/postgres"
	"github.com/yvensrabelo/entropia-site-2-sub000/adapters/webhook"
	"github.com/yvensrabelo/entropia-site-2-sub000/domain/vestibular"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/config"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/importer"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/migration"
	"github.com/yvensrabelo/entropia-site-2-sub000/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	cutoffs, err := vestibular.LoadTable()
	if err != nil {
		log.Fatalf("Failed to load cutoff datasets: %v", err)
	}

	// Repositories
	students := postgres.NewStudentRepository(db)
	teachers := postgres.NewTeacherRepository(db)
	turmas := postgres.NewClassGroupRepository(db)
	schedule := postgres.NewScheduleRepository(db)
	descriptors := postgres.NewDescriptorRepository(db)

	// Services
	notifier := webhook.NewNotifier(appConfig.Webhook.URL, appConfig.Webhook.Timeout, logger)
	importSvc := importer.NewService(students, turmas, teachers, schedule,
		int(appConfig.Import.MaxConcurrent), logger)

	// The admin API runs on its own port so it can stay off the public
	// network.
	admin := ui.NewAdminApp(appConfig, students, teachers, turmas, schedule, descriptors, importSvc, logger)
	go func() {
		if err := admin.Run(); err != nil {
			log.Fatalf("Admin API failed: %v", err)
		}
	}()

	server := ui.NewServer(appConfig, cutoffs, descriptors, schedule, teachers, notifier, logger)
	if err := server.Run(); err != nil {
		log.Fatalf("Public API failed: %v", err)
	}
}
