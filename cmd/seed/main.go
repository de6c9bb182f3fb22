package main

import (
	"context"
	"log"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bazaar/internal/config"
	"bazaar/internal/db"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// seedProduct is one demo catalog entry.
type seedProduct struct {
	Name        string
	Description string
	Price       string
	Quantity    int
}

var catalog = []seedProduct{
	{"Mechanical Keyboard", "Hot-swappable 87-key board with PBT caps", "129.99", 40},
	{"USB-C Dock", "Dual 4K output, 100W passthrough", "89.50", 25},
	{"Desk Lamp", "Adjustable color temperature, USB charging port", "34.00", 120},
	{"Espresso Grinder", "Conical burr grinder with 40 settings", "249.00", 8},
	{"Trail Backpack", "28L waterproof pack with hip belt", "74.95", 60},
	{"Noise-Canceling Headphones", "Over-ear, 30h battery", "199.00", 15},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	seller := ensureUser(ctx, userRepo, "Demo Seller", "seller@example.com", model.RoleSeller)
	ensureUser(ctx, userRepo, "Demo Buyer", "buyer@example.com", model.RoleBuyer)

	created := 0
	for _, item := range catalog {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Printf("Skipping %q: bad price %q", item.Name, item.Price)
			continue
		}

		product := &model.Product{
			UserID:      seller.ID,
			Name:        item.Name,
			Slug:        slug.Make(item.Name),
			Description: item.Description,
			Price:       price,
			Quantity:    item.Quantity,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			log.Printf("Failed to create product %q: %v", item.Name, err)
			continue
		}
		created++
	}

	log.Printf("Seed complete: %d products created for %s", created, seller.Email)
}

// ensureUser returns the existing user for the email or creates a fresh one
// with password "password".
func ensureUser(ctx context.Context, repo repository.UserRepository, name, email string, role model.Role) *model.User {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to look up %s: %v", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create %s: %v", email, err)
	}
	return user
}
