package seeders

import (
	"context"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/app/services"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog creates a sample garment with two attached products and one
// unattached product.
func SeedCatalog(ctx context.Context, catalog *services.CatalogService) error {
	g, err := catalog.CreateGarment(ctx, models.Fields{
		"name":     "Konveksi Jaya",
		"location": "Bandung",
		"contact":  "0812-0000-0000",
	})
	if err != nil {
		return err
	}

	attached := []models.Fields{
		{"name": "Kaos Polos", "brand": "Jaya", "price": "50000", "color": "Hitam", "category": "Baju"},
		{"name": "Celana Chino", "brand": "Jaya", "price": "175000", "color": "Krem", "category": "Celana"},
	}
	for _, fields := range attached {
		if _, _, err := catalog.Attach(ctx, g.ID.Hex(), fields); err != nil {
			return err
		}
	}

	_, err = catalog.CreateProduct(ctx, models.Fields{
		"name": "Topi Rajut", "brand": "Lokal", "price": "35000", "color": "Abu", "category": "Aksesoris",
	})
	return err
}
