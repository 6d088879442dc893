package database

import (
	"log"
	"os"

	"delyloco-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=delyloco_store port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
	)
}

// SeedDemoMenu loads the demo menu into an empty database so a fresh
// deployment has something to serve. It is a no-op once any category exists.
func SeedDemoMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Platos Especiales", Slug: "platos-especiales", Icon: strp("flame"), Color: strp("#e63946"), IsPopular: true, DisplayOrder: 1, IsActive: true},
		{Name: "Comidas Rápidas", Slug: "comidas-rapidas", Icon: strp("burger"), Color: strp("#f4a261"), IsPopular: true, DisplayOrder: 2, IsActive: true},
		{Name: "Bebidas", Slug: "bebidas", Icon: strp("cup"), DisplayOrder: 3, IsActive: true},
		{Name: "Postres", Slug: "postres", Icon: strp("cake"), DisplayOrder: 4, IsActive: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:          "Dely Loco Especial",
			Slug:          "dely-loco-especial",
			Description:   strp("Plato de la casa: carne, chorizo, chicharrón, arepa y papa criolla."),
			Price:         decimal.NewFromInt(80000),
			OriginalPrice: decp(decimal.NewFromInt(100000)),
			CategoryID:    &categories[0].ID,
			IsFeatured:    true,
			Stock:         25,
			Rating:        4.8,
			ReviewCount:   132,
			Images: []models.ProductImage{
				{ImageURL: "/images/productos/dely-loco-especial.jpg", AltText: strp("Dely Loco Especial"), DisplayOrder: 1, IsPrimary: true},
				{ImageURL: "/images/productos/dely-loco-especial-2.jpg", DisplayOrder: 2},
			},
		},
		{
			Name:        "Bandeja Paisa",
			Slug:        "bandeja-paisa",
			Description: strp("Frijoles, arroz, huevo, aguacate, carne molida y chicharrón."),
			Price:       decimal.NewFromInt(32000),
			CategoryID:  &categories[0].ID,
			IsFeatured:  true,
			Stock:       18,
			Rating:      4.6,
			ReviewCount: 87,
			Images: []models.ProductImage{
				{ImageURL: "/images/productos/bandeja-paisa.jpg", AltText: strp("Bandeja Paisa"), DisplayOrder: 1, IsPrimary: true},
			},
		},
		{
			Name:          "Hamburguesa Doble",
			Slug:          "hamburguesa-doble",
			Description:   strp("Doble carne, queso cheddar, tocineta y salsa de la casa."),
			Price:         decimal.NewFromInt(24000),
			OriginalPrice: decp(decimal.NewFromInt(28000)),
			CategoryID:    &categories[1].ID,
			Stock:         40,
			Rating:        4.4,
			ReviewCount:   54,
			Images: []models.ProductImage{
				{ImageURL: "/images/productos/hamburguesa-doble.jpg", DisplayOrder: 1, IsPrimary: true},
			},
		},
		{
			Name:        "Perro Caliente",
			Slug:        "perro-caliente",
			Description: strp("Con papitas trituradas, queso rallado y salsas."),
			Price:       decimal.NewFromInt(14000),
			CategoryID:  &categories[1].ID,
			Stock:       0,
			Rating:      4.1,
			ReviewCount: 23,
		},
		{
			Name:        "Limonada de Coco",
			Slug:        "limonada-de-coco",
			Price:       decimal.NewFromInt(9000),
			CategoryID:  &categories[2].ID,
			Stock:       60,
			Brand:       strp("Dely Loco"),
			Rating:      4.9,
			ReviewCount: 201,
		},
		{
			Name:        "Gaseosa 400ml",
			Slug:        "gaseosa-400ml",
			Price:       decimal.NewFromInt(5000),
			CategoryID:  &categories[2].ID,
			Stock:       120,
			Brand:       strp("Postobón"),
			Rating:      4.0,
			ReviewCount: 12,
		},
		{
			Name:        "Brownie con Helado",
			Slug:        "brownie-con-helado",
			Price:       decimal.NewFromInt(12000),
			CategoryID:  &categories[3].ID,
			Stock:       15,
			Rating:      4.7,
			ReviewCount: 45,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("Demo menu seeded: %d categories, %d products", len(categories), len(products))
	return nil
}

func strp(s string) *string { return &s }

func decp(d decimal.Decimal) *decimal.Decimal { return &d }
