package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/logger"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS migrations (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "Directory containing *.up.sql and *.down.sql files")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), ServiceName: "recipe-share-migrate"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := db.Exec(createMigrationsTable); err != nil {
		log.Fatal("failed to create migrations table", zap.Error(err))
	}

	if *rollback {
		if err := rollbackLast(db, *migrationsDir, log); err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
		return
	}

	files, err := upMigrations(*migrationsDir)
	if err != nil {
		log.Fatal("failed to read migrations directory", zap.Error(err))
	}

	for _, name := range files {
		var applied bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM migrations WHERE name = $1)", name).Scan(&applied); err != nil {
			log.Fatal("failed to check migration status", zap.String("name", name), zap.Error(err))
		}
		if applied {
			log.Debug("migration already applied", zap.String("name", name))
			continue
		}

		content, err := os.ReadFile(filepath.Join(*migrationsDir, name))
		if err != nil {
			log.Fatal("failed to read migration", zap.String("name", name), zap.Error(err))
		}

		err = inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", name)
			return err
		})
		if err != nil {
			log.Fatal("failed to apply migration", zap.String("name", name), zap.Error(err))
		}

		log.Info("applied migration", zap.String("name", name))
	}

	log.Info("all migrations applied")
}

func upMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func rollbackLast(db *sql.DB, dir string, log *zap.Logger) error {
	var name string
	err := db.QueryRow("SELECT name FROM migrations ORDER BY applied_at DESC, id DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to rollback")
		return nil
	}
	if err != nil {
		return err
	}

	downPath := filepath.Join(dir, strings.TrimSuffix(name, ".up.sql")+".down.sql")
	content, err := os.ReadFile(downPath)
	if err != nil {
		return err
	}

	err = inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(content)); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM migrations WHERE name = $1", name)
		return err
	})
	if err != nil {
		return err
	}

	log.Info("rolled back migration", zap.String("name", name))
	return nil
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
