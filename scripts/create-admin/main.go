package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/pkg/config"
	"github.com/nomuacademy/academy-server-go/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Get underlying SQL connection
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Failed to get SQL DB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Test connection
	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		appLogger.Error("Failed to ping database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Database connection established")

	reader := bufio.NewReader(os.Stdin)

	// Get user details
	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password (min 6 chars): ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	fmt.Print("License number: ")
	licenseNumber, _ := reader.ReadString('\n')
	licenseNumber = strings.TrimSpace(licenseNumber)

	fmt.Print("Years of experience (optional): ")
	experienceStr, _ := reader.ReadString('\n')
	experienceStr = strings.TrimSpace(experienceStr)

	experience := 0
	if experienceStr != "" {
		experience, err = strconv.Atoi(experienceStr)
		if err != nil || experience < 0 {
			fmt.Println("❌ Error: Experience must be a non-negative number")
			os.Exit(1)
		}
	}

	// Validate required fields
	if name == "" || email == "" || licenseNumber == "" || len(password) < 6 {
		fmt.Println("❌ Error: Name, email, license number, and password (min 6 chars) are required")
		os.Exit(1)
	}

	// Check if user already exists
	var existingUser user.User
	if err := db.Where("email = ?", strings.ToLower(email)).First(&existingUser).Error; err == nil {
		fmt.Println("❌ Error: A user with this email already exists")
		os.Exit(1)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		appLogger.Error("Failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create admin user
	newUser := user.User{
		Name:           name,
		Email:          strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:   string(hashedPassword),
		LicenseNumber:  licenseNumber,
		Experience:     experience,
		Specialization: []string{},
		IsAdmin:        true,
	}

	// Save to database
	if err := db.Create(&newUser).Error; err != nil {
		appLogger.Error("Failed to create admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("\n✅ Admin account created successfully!")
	fmt.Printf("   ID: %s\n", newUser.ID)
	fmt.Printf("   Email: %s\n", newUser.Email)
}
