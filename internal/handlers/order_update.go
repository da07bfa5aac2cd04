package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"snackpos/internal/models"
	"snackpos/internal/status"
)

type updateOrderRequest struct {
	Status       *string `json:"status"`
	CustomerName *string `json:"customerName"`
	Notes        *string `json:"notes"`
}

// UpdateOrder applies a status change and/or edits the free-text fields.
// Status changes go through the transition gate; the store never receives a
// transition the gate rejected.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id"
		defer handlePanic(c, route)

		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Status == nil && req.CustomerName == nil && req.Notes == nil {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		update := bson.M{}

		if req.Status != nil {
			requested := models.OrderStatus(*req.Status)
			if !requested.Known() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}

			order, err = status.ApplyTransition(order, requested)
			if err != nil {
				var terr *status.InvalidTransitionError
				if errors.As(err, &terr) {
					respondWithError(c, http.StatusConflict, route, terr.Error())
					return
				}
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			update["status"] = order.Status
		}

		if req.CustomerName != nil {
			order.CustomerName = strings.TrimSpace(*req.CustomerName)
			update["customerName"] = order.CustomerName
		}
		if req.Notes != nil {
			order.Notes = strings.TrimSpace(*req.Notes)
			update["notes"] = order.Notes
		}

		if len(update) > 0 {
			_, err = db.Collection(ordersCollection).UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": update})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		log.Printf("[ORDER] [INFO] order %s updated, status %s", order.OrderNumber, order.Status)

		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"
		defer handlePanic(c, route)

		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
