package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tmcosta/vendas-pos-api/internal/config"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	zap.L().Info("Connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.IdempotencyKey{},
	)
}

// SeedDefaultData seeds the catalog, demo customers and the admin account
// on an empty database.
func SeedDefaultData(db *gorm.DB) error {
	log := zap.L()

	products := []entity.Product{
		{Code: "P001", Name: "Água 0.5L", SalePrice: dec("0.50"), IVARate: dec("0.14"), Stock: 100, StockAlert: 10},
		{Code: "P002", Name: "Pão", SalePrice: dec("0.15"), IVARate: dec("0.00"), Stock: 200, StockAlert: 20},
		{Code: "P003", Name: "Leite 1L", SalePrice: dec("0.95"), IVARate: dec("0.07"), Stock: 80, StockAlert: 10},
		{Code: "P004", Name: "Café", SalePrice: dec("0.70"), IVARate: dec("0.14"), Stock: 150, StockAlert: 15},
		{Code: "P005", Name: "Arroz 1kg", SalePrice: dec("1.20"), IVARate: dec("0.07"), Stock: 60, StockAlert: 10},
	}
	for i := range products {
		var existing entity.Product
		if err := db.Where("code = ?", products[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&products[i]).Error; err != nil {
				log.Warn("failed to seed product", zap.String("code", products[i].Code), zap.Error(err))
			}
		}
	}

	customers := []entity.Customer{
		{Code: "C001", Name: "Maria Silva", CardID: "CARD001", DiscountRate: dec("10"), LifetimeTotal: decimal.Zero},
		{Code: "C002", Name: "João Santos", CardID: "CARD002", DiscountRate: dec("5"), LifetimeTotal: decimal.Zero},
	}
	for i := range customers {
		var existing entity.Customer
		if err := db.Where("code = ?", customers[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&customers[i]).Error; err != nil {
				log.Warn("failed to seed customer", zap.String("code", customers[i].Code), zap.Error(err))
			}
		}
	}

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUsername == "" {
		adminUsername = "admin"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingAdmin entity.User
	if err := db.Where("username = ?", adminUsername).First(&existingAdmin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := entity.User{
			Username: adminUsername,
			FullName: "Administrador",
			Password: string(hashed),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Warn("failed to seed admin user", zap.Error(err))
		} else {
			log.Info("Admin user created", zap.String("username", adminUsername))
		}
	}

	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
