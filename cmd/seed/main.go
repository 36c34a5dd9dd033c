package main

import (
	"log"
	"os"

	"devonaut-be/internal/model"
	"devonaut-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds a demo teacher, a couple of students and one published assignment so
// a fresh environment is usable immediately.
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

	color.Cyan("Seeding demo accounts...")

	teacherId := seedUser(db, "ajarn.somchai", "teacher", "Somchai R.", "SEC-1")
	seedUser(db, "student.alice", "student", "Alice T.", "SEC-1")
	seedUser(db, "student.bob", "student", "Bob K.", "SEC-1")

	seedAssignment(db, teacherId)

	color.Green("Seeding complete.")
}

func seedUser(db *gorm.DB, username, role, name, section string) uuid.UUID {
	var existing model.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		color.Yellow("  %s already exists, skipping", username)
		return existing.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash password: %v", err)
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Username:     username,
		PasswordHash: &hashStr,
		Name:         name,
		Role:         role,
		Section:      section,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: failed to seed user %s: %v", username, err)
	}
	color.Green("  created %s (%s)", username, role)
	return user.Id
}

func seedAssignment(db *gorm.DB, teacherId uuid.UUID) {
	var count int64
	db.Model(&model.Assignment{}).Count(&count)
	if count > 0 {
		color.Yellow("  assignments already present, skipping")
		return
	}

	problems := datatypes.JSON([]byte(`[
		{"index":0,"type":"code","title":"Hello, world","description":"Print the string hello world.","starter_code":"# your code here\n"},
		{"index":1,"type":"output","title":"Trace the loop","description":"What does this loop print?","starter_code":"for i in range(3):\n    print(i * 2)\n"}
	]`))

	assignment := model.Assignment{
		Id:        uuid.New(),
		TeacherId: teacherId,
		Title:     "Week 1: Getting started",
		Section:   "SEC-1",
		Problems:  problems,
		Published: true,
	}
	if err := db.Create(&assignment).Error; err != nil {
		log.Fatalf("Error: failed to seed assignment: %v", err)
	}
	color.Green("  created starter assignment")
}
