package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"snackpos/internal/models"
)

// defaultMenu is the house catalog loaded on first start. Prices are in
// millimes.
var defaultMenu = []models.MenuItem{
	{ID: "chapatti-poulet", Name: "Chapatti Poulet", UnitPrice: 8000, Description: "Chapatti au poulet grillé", Section: models.SectionProduct},
	{ID: "chapatti-thon", Name: "Chapatti Thon", UnitPrice: 7000, Description: "Chapatti au thon", Section: models.SectionProduct},
	{ID: "chapatti-escalope", Name: "Chapatti Escalope", UnitPrice: 8500, Description: "Chapatti à l'escalope panée", Section: models.SectionProduct},
	{ID: "chapatti-mixte", Name: "Chapatti Mixte", UnitPrice: 9500, Description: "Poulet et escalope", Section: models.SectionProduct},

	{ID: "fromage", Name: "Fromage", UnitPrice: 1000, Section: models.SectionSupplement},
	{ID: "oeuf", Name: "Œuf", UnitPrice: 800, Section: models.SectionSupplement},
	{ID: "harissa", Name: "Harissa", UnitPrice: 500, Section: models.SectionSupplement},
	{ID: "frites", Name: "Frites", UnitPrice: 1500, Section: models.SectionSupplement},

	{ID: "coca", Name: "Coca", UnitPrice: 2500, Section: models.SectionDrink},
	{ID: "fanta", Name: "Fanta", UnitPrice: 2500, Section: models.SectionDrink},
	{ID: "eau", Name: "Eau minérale", UnitPrice: 1000, Section: models.SectionDrink},
	{ID: "citronnade", Name: "Citronnade", UnitPrice: 3000, Section: models.SectionDrink},
}

// SeedMenu loads the default catalog when the menu collection is empty.
// An existing catalog is left untouched.
func SeedMenu(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := db.Collection("menu").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultMenu))
	for _, item := range defaultMenu {
		docs = append(docs, item)
	}

	if _, err := db.Collection("menu").InsertMany(ctx, docs); err != nil {
		log.Println("SeedMenu: insert error:", err)
		return err
	}
	log.Printf("SeedMenu: seeded %d menu items", len(defaultMenu))
	return nil
}
