// Package main provides role management utilities for CineVerse.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"cineverse/internal/config"
	"cineverse/internal/database"
	"cineverse/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id> <USER_ADMIN|SUPER_ADMIN>  - Grant a role")
		fmt.Println("  go run ./cmd/admin demote <user_id>                            - Reset to USER")
		fmt.Println("  go run ./cmd/admin list                                        - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 4 {
			log.Fatal("Usage: go run ./cmd/admin promote <user_id> <USER_ADMIN|SUPER_ADMIN>")
		}
		setRole(db, os.Args[2], models.Role(os.Args[3]))
	case "demote":
		if len(os.Args) < 3 {
			log.Fatal("Usage: go run ./cmd/admin demote <user_id>")
		}
		setRole(db, os.Args[2], models.RoleUser)
	case "list":
		listAdmins(db)
	default:
		log.Fatalf("Unknown command: %s", os.Args[1])
	}
}

func setRole(db *gorm.DB, rawID string, role models.Role) {
	switch role {
	case models.RoleUser, models.RoleUserAdmin, models.RoleSuperAdmin:
	default:
		log.Fatalf("Unknown role: %s", role)
	}

	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		log.Fatalf("Invalid user id: %s", rawID)
	}

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		log.Fatalf("User %d not found: %v", id, err)
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %s (%d) is now %s\n", user.Username, user.ID, role)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role IN ?", []models.Role{models.RoleUserAdmin, models.RoleSuperAdmin}).
		Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	for _, admin := range admins {
		fmt.Printf("%-6d %-20s %-30s %s\n", admin.ID, admin.Username, admin.Email, admin.Role)
	}
}
