// Command createuser provisions a login account. The API has no public
// registration endpoint, so the first teacher account is created from the
// command line:
//
//	go run ./scripts/createuser -email ana@escuela.es -name "Ana García" -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/culiplan/culiplan-api/internal/models"
	"github.com/culiplan/culiplan-api/pkg/config"
	"github.com/culiplan/culiplan-api/pkg/database"
)

func main() {
	var (
		email    string
		name     string
		password string
		role     string
	)

	flag.StringVar(&email, "email", "", "account email (required)")
	flag.StringVar(&name, "name", "", "full name (required)")
	flag.StringVar(&password, "password", "", "initial password (required)")
	flag.StringVar(&role, "role", string(models.RoleTeacher), "account role: TEACHER or ADMIN")
	flag.Parse()

	if email == "" || name == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}

	userRole := models.UserRole(strings.ToUpper(role))
	if userRole != models.RoleTeacher && userRole != models.RoleAdmin {
		log.Fatalf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    full_name = EXCLUDED.full_name,
		    role = EXCLUDED.role,
		    active = TRUE,
		    updated_at = EXCLUDED.updated_at`,
		id, email, string(hash), name, string(userRole), now,
	)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	fmt.Printf("account ready: %s (%s)\n", email, userRole)
}
