package main

import (
	"flag"
	"log"

	"go-stockledger/internal/model"
	"go-stockledger/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds an admin account for fresh deployments.
func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "admin123", "initial password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	// 3. Skip if the account already exists
	var existing model.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("❌ User %s already exists", *email)
	}

	// 4. Create admin
	admin := &model.User{
		Name:  *name,
		Email: *email,
		Role:  model.RoleAdmin,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(*password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin user: %v", err)
	}

	log.Printf("✅ Admin user created: %s (role %s)", *email, model.RoleAdmin)
}
