package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	accountrepo "foodlocker/internal/account/repository"
	catalogrepo "foodlocker/internal/catalog/repository"
	"foodlocker/internal/config"
	"foodlocker/internal/domain"
	"foodlocker/internal/imagemap"
	"foodlocker/internal/infrastructure/logger"
	"foodlocker/internal/infrastructure/mysql"
)

type fixture struct {
	Stadiums []stadiumFixture `yaml:"stadiums"`
	Managers []managerFixture `yaml:"managers"`
}

type stadiumFixture struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Categories []categoryFixture `yaml:"categories"`
}

type categoryFixture struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	NameEn string         `yaml:"nameEn"`
	Brands []brandFixture `yaml:"brands"`
}

type brandFixture struct {
	ID     string        `yaml:"id"`
	Name   string        `yaml:"name"`
	NameEn string        `yaml:"nameEn"`
	Items  []itemFixture `yaml:"items"`
}

type itemFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	NameEn      string `yaml:"nameEn"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	Image       string `yaml:"image"`
}

type managerFixture struct {
	ID          string `yaml:"id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	BrandID     string `yaml:"brandId"`
	BrandName   string `yaml:"brandName"`
	StadiumID   string `yaml:"stadiumId"`
	StadiumName string `yaml:"stadiumName"`
	Role        string `yaml:"role"`
	IsAdmin     bool   `yaml:"isAdmin"`
}

func main() {
	file := flag.String("file", "cmd/seed/seed.yaml", "fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	raw, err := os.ReadFile(*file)
	if err != nil {
		zapLogger.Fatal("reading fixture file", zap.Error(err))
	}

	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		zapLogger.Fatal("parsing fixture file", zap.Error(err))
	}

	images, err := imagemap.Bundled()
	if err != nil {
		zapLogger.Fatal("loading image table", zap.Error(err))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	catalog := catalogrepo.NewMySQLCatalogRepository(db)
	managers := accountrepo.NewMySQLManagerRepository(db)

	counts := map[string]int{}

	for _, s := range fx.Stadiums {
		stadium := domain.Stadium{ID: orNewID(s.ID), Name: s.Name}
		if err := catalog.InsertStadium(ctx, stadium); err != nil {
			zapLogger.Fatal("seeding stadium", zap.String("name", s.Name), zap.Error(err))
		}
		counts["stadiums"]++

		for _, c := range s.Categories {
			category := domain.Category{
				ID:        orNewID(c.ID),
				StadiumID: stadium.ID,
				Name:      c.Name,
				NameEn:    c.NameEn,
			}
			if err := catalog.InsertCategory(ctx, category); err != nil {
				zapLogger.Fatal("seeding category", zap.String("name", c.Name), zap.Error(err))
			}
			counts["categories"]++

			for _, b := range c.Brands {
				brand := domain.Brand{
					ID:         orNewID(b.ID),
					CategoryID: category.ID,
					Name:       b.Name,
					NameEn:     b.NameEn,
				}
				if err := catalog.InsertBrand(ctx, brand); err != nil {
					zapLogger.Fatal("seeding brand", zap.String("name", b.Name), zap.Error(err))
				}
				counts["brands"]++

				for _, i := range b.Items {
					image := i.Image
					if image == "" {
						image = images.Resolve(i.Name, i.NameEn)
					}
					item := domain.Item{
						ID:          orNewID(i.ID),
						BrandID:     brand.ID,
						Name:        i.Name,
						NameEn:      i.NameEn,
						Description: i.Description,
						Price:       i.Price,
						Image:       image,
					}
					if err := catalog.InsertItem(ctx, item); err != nil {
						zapLogger.Fatal("seeding item", zap.String("name", i.Name), zap.Error(err))
					}
					counts["items"]++
				}
			}
		}
	}

	for _, m := range fx.Managers {
		manager := &domain.StoreManager{
			ID:          orNewID(m.ID),
			Username:    m.Username,
			Password:    m.Password,
			BrandID:     m.BrandID,
			BrandName:   m.BrandName,
			StadiumID:   m.StadiumID,
			StadiumName: m.StadiumName,
			Role:        m.Role,
			IsAdmin:     m.IsAdmin,
		}
		if err := managers.Insert(ctx, manager); err != nil {
			zapLogger.Fatal("seeding store manager", zap.String("username", m.Username), zap.Error(err))
		}
		counts["managers"]++
	}

	fmt.Printf("seeded %d stadiums, %d categories, %d brands, %d items, %d managers\n",
		counts["stadiums"], counts["categories"], counts["brands"], counts["items"], counts["managers"])
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
