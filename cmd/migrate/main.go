package main

import (
	"log"
	"os"

	"guest-concierge-be/internal/model"
	"guest-concierge-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions first. The vector extension must exist before AutoMigrate
	// touches knowledge_chunks.
	color.Cyan("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Account{},
		&model.Property{},
		&model.Document{},
		&model.KnowledgeChunk{},
		&model.Conversation{},
		&model.Message{},
		&model.BillingTransaction{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// ANN index for cosine searches. AutoMigrate cannot express ivfflat.
	color.Cyan("Step 3: Creating vector index...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_knowledge_chunks_embedding
		 ON knowledge_chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: Database migration completed via GORM.")
}
