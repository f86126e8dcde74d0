package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"users-api/config"
	"users-api/pkg/helpers"
	"users-api/pkg/validation"
)

// Creating a user requires an already authenticated caller, so the very
// first account has to be seeded out of band. Run this once against a fresh
// database, then log in with the printed credentials.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := strings.ToLower(getenv("SEED_EMAIL", "admin@example.com"))
	password := getenv("SEED_PASSWORD", "ChangeMe123")
	name := getenv("SEED_NAME", "Admin")

	if !validation.IsValidEmail(email) {
		log.Fatalf("seed email %q is not a valid address", email)
	}
	if !validation.IsStrongPassword(password) {
		log.Fatalf("seed password does not meet the strength policy")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, birth_date, cpf)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash, "1970-01-01", 0).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s\n", id, email, name)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
