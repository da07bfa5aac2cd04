package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"snackpos/internal/models"
	"snackpos/internal/stats"
)

// GetOrderStats serves the statistics screen: it loads the order list and
// hands it to the aggregation engine with the wall clock injected here, at
// the boundary. The engine itself never reads the clock.
func GetOrderStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/stats/summary"
		defer handlePanic(c, route)

		period, err := parsePeriod(c.Query("period"), c.Query("date"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(ordersCollection).Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse orders")
			return
		}

		c.JSON(http.StatusOK, stats.Aggregate(orders, period, time.Now()))
	}
}

// parsePeriod maps the statistics screen's period tabs to a selector. "day"
// requires a date in 2006-01-02 form; an empty period means today.
func parsePeriod(period, date string) (stats.Period, error) {
	switch period {
	case "", "today":
		return stats.Today(), nil
	case "week":
		return stats.Last7Days(), nil
	case "month":
		return stats.CurrentMonth(), nil
	case "total":
		return stats.AllTime(), nil
	case "day":
		if date == "" {
			return stats.Period{}, errors.New("date is required for period=day")
		}
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return stats.Period{}, errors.New("invalid date")
		}
		return stats.SpecificDay(day), nil
	}
	return stats.Period{}, fmt.Errorf("unknown period %q", period)
}
