package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"github.com/toystore/backend/internal/infrastructure/config"
	"github.com/toystore/backend/internal/infrastructure/logger"
	"github.com/toystore/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// seedProduct describes one catalog entry created by the seeder
type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
	ageRange    string
	brand       string
	featured    bool
}

var sampleProducts = []seedProduct{
	{"Wooden Train Set", "Classic 24-piece wooden railway with magnetic couplings", "34.99", 25, "vehicles", "3-6", "Brio", true},
	{"Plush Teddy Bear", "Soft brown bear, machine washable", "14.99", 60, "plush", "0-3", "Steiff", true},
	{"Robot Builder Kit", "Snap-together robot with light and sound effects", "49.99", 12, "robots", "8-12", "Makeblock", true},
	{"Dinosaur Puzzle", "48-piece floor puzzle with T-Rex artwork", "11.99", 40, "puzzles", "4-8", "Ravensburger", false},
	{"Race Car Track", "Loop track with two pull-back racers", "27.50", 18, "vehicles", "4-8", "Hot Wheels", false},
	{"Stacking Rings", "Rainbow wooden stacking tower", "9.99", 75, "educational", "0-3", "Melissa & Doug", false},
	{"Chemistry Lab Set", "Beginner experiments with safe household materials", "39.99", 8, "educational", "8-12", "Thames & Kosmos", false},
	{"Dollhouse Cottage", "Two-storey cottage with furniture set", "79.99", 6, "dollhouses", "4-8", "KidKraft", true},
}

func main() {
	var (
		adminUsername string
		adminEmail    string
		adminPassword string
		logLevel      string
	)

	flag.StringVar(&adminUsername, "admin-username", "admin", "Username for the seeded administrator")
	flag.StringVar(&adminEmail, "admin-email", "admin@toystore.local", "Email for the seeded administrator")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded administrator (required)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if adminPassword == "" {
		log.Fatal("admin-password flag is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	ctx := context.Background()

	if err := seedAdmin(ctx, db, log, adminUsername, adminEmail, adminPassword); err != nil {
		log.Fatal("Failed to seed administrator", zap.Error(err))
	}

	created, err := seedCatalog(ctx, db, log)
	if err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	log.Info("Seeding completed", zap.Int("products_created", created))
}

// seedAdmin creates the administrator account unless the username is taken
func seedAdmin(ctx context.Context, db *persistence.Database, log *zap.Logger, username, email, password string) error {
	userRepo := persistence.NewGormUserRepository(db.DB)

	exists, err := userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		log.Info("Administrator already present, skipping", zap.String("username", username))
		return nil
	}

	admin, err := identity.NewUser(username, email, password)
	if err != nil {
		return err
	}
	admin.SetAdmin(true)

	if err := userRepo.Save(ctx, admin); err != nil {
		return err
	}

	log.Info("Administrator created",
		zap.String("username", admin.Username),
		zap.String("email", admin.Email),
	)
	return nil
}

// seedCatalog inserts the sample products into an empty catalog.
// A non-empty catalog is left untouched so reruns are safe.
func seedCatalog(ctx context.Context, db *persistence.Database, log *zap.Logger) (int, error) {
	productRepo := persistence.NewGormProductRepository(db.DB)

	count, err := productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info("Catalog already populated, skipping", zap.Int64("products", count))
		return 0, nil
	}

	created := 0
	for _, sp := range sampleProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return created, fmt.Errorf("invalid price for %s: %w", sp.name, err)
		}

		product, err := catalog.NewProduct(sp.name, valueobject.NewMoneyUSD(price))
		if err != nil {
			return created, err
		}
		if err := product.Update(sp.name, sp.description); err != nil {
			return created, err
		}
		if err := product.SetStockQuantity(sp.stock); err != nil {
			return created, err
		}
		product.SetAttributes(sp.category, sp.ageRange, sp.brand, "")
		product.SetFeatured(sp.featured)

		if err := productRepo.Save(ctx, product); err != nil {
			return created, err
		}
		created++
		log.Debug("Product seeded", zap.String("name", product.Name))
	}

	return created, nil
}
