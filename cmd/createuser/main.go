package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"trackex/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// createuser provisions a user directly against the database, bypassing
// the HTTP surface. Useful for bootstrapping and CI.
func main() {
	username := flag.String("username", "", "username for the new user")
	email := flag.String("email", "", "email for the new user")
	password := flag.String("password", "", "password for the new user")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Println("usage: createuser -username <name> -email <email> -password <password>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	var dialector gorm.Dialector
	if os.Getenv("DB_DRIVER") == "sqlite" {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Expense{}, &models.RefreshToken{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// check existing
	var existing models.User
	if err := db.Where("username = ? OR email = ?", *username, *email).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", existing.Username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Username: *username, Email: *email, HashedPassword: hpw}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", user.Username, user.ID)
}
