package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/db"
	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
	"github.com/parisy/pasarsayur-backend/pkg/security"
)

// seedUser is a demo account before hashing.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     enums.Role
	SubRole  enums.SubRole
	Address  string
	Phone    string
}

// seedVegetable is a demo listing; CreatedBy is filled with the admin account.
type seedVegetable struct {
	Name        string
	Description string
	Price       string
	Stock       int
	Category    enums.VegetableCategory
}

var seedUsers = []seedUser{
	{"Admin Utama", "admin@pasarsayur.id", "admin123", enums.RoleAdmin, enums.SubRoleAdmin, "Jl. Raya No. 1", "081234567890"},
	{"Sekretaris", "sekretaris@pasarsayur.id", "sekretaris123", enums.RoleAdmin, enums.SubRoleSekretaris, "Jl. Raya No. 2", "081234567891"},
	{"Bendahara", "bendahara@pasarsayur.id", "bendahara123", enums.RoleAdmin, enums.SubRoleBendahara, "Jl. Raya No. 2", "081234567891"},
	{"Ketua RT 01", "rt@pasarsayur.id", "rt123456", enums.RoleUser, enums.SubRoleRT, "Jl. Mawar No. 5", "081234567892"},
	{"Ketua RW", "rw@pasarsayur.id", "rw123456", enums.RoleUser, enums.SubRoleRW, "Jl. Mawar No. 5", "081234567892"},
	{"Budi Santoso", "budi@gmail.com", "budi1234", enums.RoleUser, enums.SubRoleWarga, "Jl. Melati No. 10", "081234567893"},
}

var seedVegetables = []seedVegetable{
	{"Bawang Bombay", "Bawang bombay segar dari petani lokal", "15000.00", 50, enums.VegetableCategoryAkar},
	{"Wortel", "Wortel organik, kaya akan vitamin A", "12000.00", 100, enums.VegetableCategoryAkar},
	{"Kentang", "Kentang segar, cocok untuk berbagai masakan", "10000.00", 80, enums.VegetableCategoryAkar},
	{"Kangkung", "Kangkung segar dari sawah lokal", "8000.00", 60, enums.VegetableCategoryDaun},
	{"Kubis", "Kubis segar, kaya serat dan vitamin", "9000.00", 70, enums.VegetableCategoryDaun},
	{"Sawi Putih", "Sawi putih segar, cocok untuk sayur bening", "8500.00", 90, enums.VegetableCategoryDaun},
	{"Tomat", "Tomat segar, kaya akan likopen", "7000.00", 120, enums.VegetableCategoryBuah},
	{"Timun", "Timun segar, cocok untuk lalapan", "6000.00", 110, enums.VegetableCategoryBuah},
	{"Cabai", "Cabai merah segar, pedas alami", "20000.00", 40, enums.VegetableCategoryBuah},
	{"Bunga Kol", "Bunga kol segar, kaya akan vitamin C", "11000.00", 55, enums.VegetableCategoryBunga},
	{"Brokoli", "Brokoli segar, baik untuk kesehatan tulang", "13000.00", 65, enums.VegetableCategoryBunga},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(context.Background(), "refusing to seed a production database", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		// wipe in dependency order
		for _, model := range []any{
			&models.TransactionDetail{},
			&models.Transaction{},
			&models.CartItem{},
			&models.Vegetable{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("wiping table: %w", err)
			}
		}

		users := make([]models.User, 0, len(seedUsers))
		for _, u := range seedUsers {
			hash, err := security.HashPassword(u.Password, cfg.Password)
			if err != nil {
				return fmt.Errorf("hashing password for %s: %w", u.Email, err)
			}
			address := u.Address
			phone := u.Phone
			users = append(users, models.User{
				ID:           uuid.New(),
				Name:         u.Name,
				Email:        u.Email,
				PasswordHash: hash,
				Role:         u.Role,
				SubRole:      u.SubRole,
				Address:      &address,
				Phone:        &phone,
				IsActive:     true,
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}

		admin := users[0]
		vegetables := make([]models.Vegetable, 0, len(seedVegetables))
		for _, v := range seedVegetables {
			price, err := decimal.NewFromString(v.Price)
			if err != nil {
				return fmt.Errorf("parsing price for %s: %w", v.Name, err)
			}
			description := v.Description
			vegetables = append(vegetables, models.Vegetable{
				ID:          uuid.New(),
				Name:        v.Name,
				Description: &description,
				Price:       price,
				Stock:       v.Stock,
				Category:    v.Category,
				Status:      enums.VegetableStatusAvailable,
				CreatedBy:   &admin.ID,
			})
		}
		if err := tx.Create(&vegetables).Error; err != nil {
			return fmt.Errorf("seeding vegetables: %w", err)
		}

		return nil
	})
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"users":      len(seedUsers),
		"vegetables": len(seedVegetables),
	}), "seed complete")
}
