package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snackpos/internal/models"
)

// GetMenu serves the catalog grouped into the three sections the order
// entry screen shows. The catalog is reference data; orders copy prices
// out of it at the time of sale.
func GetMenu(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/menu"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
		cursor, err := db.Collection(menuCollection).Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "menu could not be fetched")
			return
		}
		defer cursor.Close(ctx)

		var items []models.MenuItem
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse menu")
			return
		}

		c.JSON(http.StatusOK, groupMenu(items))
	}
}

func groupMenu(items []models.MenuItem) models.Menu {
	menu := models.Menu{
		Products:    []models.MenuItem{},
		Supplements: []models.MenuItem{},
		Drinks:      []models.MenuItem{},
	}
	for _, item := range items {
		switch item.Section {
		case models.SectionProduct:
			menu.Products = append(menu.Products, item)
		case models.SectionSupplement:
			menu.Supplements = append(menu.Supplements, item)
		case models.SectionDrink:
			menu.Drinks = append(menu.Drinks, item)
		}
	}
	return menu
}
