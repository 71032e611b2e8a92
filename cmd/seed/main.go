package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"homeserve/internal/core/config"
	"homeserve/internal/core/database"
	"homeserve/internal/core/logger"
	"homeserve/internal/domain"
	"homeserve/pkg/utils"
)

// Seeds a development database with demo accounts and listings. All demo
// accounts share the password "password123".
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Service{}, &domain.Booking{}, &domain.Review{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	hash := utils.HashPassword("password123")
	user := func(email, first, last, role string) *domain.User {
		return &domain.User{
			ID: utils.NewID(), Email: email, FirstName: first, LastName: last,
			PasswordHash: hash, Role: role,
		}
	}

	john := user("john@example.com", "John", "Doe", domain.RoleHomeowner)
	jane := user("jane@example.com", "Jane", "Smith", domain.RoleHomeowner)
	alice := user("alice@example.com", "Alice", "Brown", domain.RoleHomeowner)
	mike := user("mike@example.com", "Mike", "Johnson", domain.RoleProvider)
	sarah := user("sarah@example.com", "Sarah", "Williams", domain.RoleProvider)
	david := user("david@example.com", "David", "Miller", domain.RoleProvider)
	users := []*domain.User{john, jane, alice, mike, sarah, david}
	for _, u := range users {
		if err := db.Create(u).Error; err != nil {
			log.Fatal("seed user", zap.String("email", u.Email), zap.Error(err))
		}
	}

	svc := func(owner *domain.User, title, desc, category string, price float64) *domain.Service {
		return &domain.Service{
			ID: utils.NewID(), ProviderID: owner.ID,
			Title: title, Description: desc, Category: category, Price: price,
			IsActive: true,
		}
	}
	cleaning := svc(mike, "Professional House Cleaning",
		"Thorough cleaning service for your home, including dusting, vacuuming, and sanitizing.",
		"Cleaning", 150)
	plumbing := svc(mike, "Plumbing Services",
		"Expert plumbing services for repairs, installations, and maintenance.",
		"Plumbing", 200)
	electrical := svc(sarah, "Electrical Repairs",
		"Licensed electrician for all your electrical needs.",
		"Electrical", 180)
	painting := svc(sarah, "Interior Painting",
		"Professional interior painting services with premium quality paints.",
		"Painting", 300)
	landscaping := svc(david, "Landscaping & Lawn Care",
		"Complete lawn care, planting, and garden maintenance.",
		"Landscaping", 120)
	for _, s := range []*domain.Service{cleaning, plumbing, electrical, painting, landscaping} {
		if err := db.Create(s).Error; err != nil {
			log.Fatal("seed service", zap.String("title", s.Title), zap.Error(err))
		}
	}

	// One completed booking so the demo catalog shows a verified review.
	booking := &domain.Booking{
		ID: utils.NewID(), ServiceID: cleaning.ID, HomeownerID: john.ID,
		Date: time.Now().AddDate(0, 0, -7), Time: "10:00",
		Status: domain.BookingCompleted,
	}
	if err := db.Create(booking).Error; err != nil {
		log.Fatal("seed booking", zap.Error(err))
	}

	reviews := []*domain.Review{
		{ID: utils.NewID(), ServiceID: cleaning.ID, UserID: john.ID, Rating: 5,
			Comment: "Excellent service! Very professional and thorough.", IsVerified: true},
		{ID: utils.NewID(), ServiceID: plumbing.ID, UserID: jane.ID, Rating: 4,
			Comment: "Great work, but a bit pricey."},
		{ID: utils.NewID(), ServiceID: electrical.ID, UserID: alice.ID, Rating: 5,
			Comment: "Fixed our wiring issue quickly and safely."},
	}
	for _, rv := range reviews {
		if err := db.Create(rv).Error; err != nil {
			log.Fatal("seed review", zap.Error(err))
		}
	}

	log.Info("seed complete",
		zap.Int("users", len(users)),
		zap.Int("services", 5),
		zap.Int("reviews", len(reviews)),
	)
}
