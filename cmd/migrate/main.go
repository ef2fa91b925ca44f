package main

import (
	"log"
	"os"

	"chat-vector-be/internal/model"
	"chat-vector-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	vectorDSN := os.Getenv("VECTOR_DB_CONNECTION_STRING")
	if vectorDSN == "" {
		vectorDSN = dsn
	}

	// 2. Connect to both stores using the shared GORM helper
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	vectorDB, err := database.NewGormDBFromDSN(vectorDSN)
	if err != nil {
		log.Fatal("Error: Failed to connect to vector database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	relationalSetup := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	vectorSetup := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range relationalSetup {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}
	for _, sql := range vectorSetup {
		if err := vectorDB.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute vector setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	relationalModels := []interface{}{
		&model.ChatHistory{},
		&model.ChatSession{},
		&model.ChatMessage{},
	}
	if err := db.AutoMigrate(relationalModels...); err != nil {
		log.Fatal("Error: AutoMigrate (relational) failed:", err)
	}

	if err := vectorDB.AutoMigrate(&model.ChatEmbedding{}); err != nil {
		log.Fatal("Error: AutoMigrate (vector) failed:", err)
	}

	log.Println("Migration completed successfully.")
}
