package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snackpos/internal/models"
	"snackpos/internal/pricing"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderSupplementRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity" binding:"required"`
}

type createOrderItemRequest struct {
	ProductID   string                         `json:"productId" binding:"required"`
	Name        string                         `json:"name" binding:"required"`
	Price       int64                          `json:"price"`
	Quantity    int                            `json:"quantity" binding:"required"`
	Supplements []createOrderSupplementRequest `json:"supplements"`
	ItemTotal   int64                          `json:"itemTotal"`
}

type createOrderRequest struct {
	Items         []createOrderItemRequest `json:"items" binding:"required"`
	TotalAmount   int64                    `json:"totalAmount"`
	CustomerName  string                   `json:"customerName"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required"`
	Notes         string                   `json:"notes"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := buildOrderFromRequest(req, time.Now())
		if err != nil {
			var verr *pricing.ValidationError
			if errors.As(err, &verr) {
				respondWithError(c, http.StatusBadRequest, route, verr.Error())
				return
			}
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		number, err := nextOrderNumber(ctx, db, order.CreatedAt)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		order.OrderNumber = number

		res, err := db.Collection(ordersCollection).InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if insertedID, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = insertedID
		}

		log.Printf("[ORDER] [INFO] order %s created, total %d", order.OrderNumber, order.TotalAmount)

		c.JSON(http.StatusCreated, order)
	}
}

// buildOrderFromRequest validates the submitted cart and re-derives every
// amount through the pricing calculator. The client's declared totals are
// checked, never trusted.
func buildOrderFromRequest(req createOrderRequest, now time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return models.Order{}, errors.New("invalid payment method")
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		supplements := make([]models.Supplement, 0, len(item.Supplements))
		for _, s := range item.Supplements {
			supplements = append(supplements, models.Supplement{
				ID:        s.ID,
				Name:      strings.TrimSpace(s.Name),
				UnitPrice: s.Price,
				Quantity:  s.Quantity,
			})
		}

		line := models.OrderLine{
			ProductID:   item.ProductID,
			Name:        strings.TrimSpace(item.Name),
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			Supplements: supplements,
			LineTotal:   item.ItemTotal,
		}
		lines = append(lines, line)
	}

	total, err := pricing.ComputeOrderTotal(lines)
	if err != nil {
		return models.Order{}, err
	}
	if total != req.TotalAmount {
		return models.Order{}, &pricing.ValidationError{
			Reason: fmt.Sprintf("declared order total %d does not match computed %d", req.TotalAmount, total),
		}
	}

	return models.Order{
		Lines:         lines,
		TotalAmount:   total,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		PaymentMethod: method,
		Notes:         strings.TrimSpace(req.Notes),
		Status:        models.StatusPending,
		CreatedAt:     now,
	}, nil
}

// nextOrderNumber issues the display identifier printed on receipts, one
// sequence per calendar day. The counter document advances atomically, so
// concurrent creates never share a number.
func nextOrderNumber(ctx context.Context, db *mongo.Database, now time.Time) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": orderCounterID(now)},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", err
	}

	return formatOrderNumber(now, counter.Seq), nil
}

// orderCounterID keys the per-day sequence document.
func orderCounterID(day time.Time) string {
	return "orders-" + day.Format("20060102")
}

func formatOrderNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("CMD-%s-%04d", day.Format("20060102"), seq)
}

/* =========================
   LIST / GET ORDERS
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		filter, err := buildOrderListFilter(c.Query("status"), c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection(ordersCollection).Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse orders")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// buildOrderListFilter translates the history screen's query params into a
// store filter. Dates are calendar dates in 2006-01-02 form; endDate is
// inclusive.
func buildOrderListFilter(status, startDate, endDate string) (bson.M, error) {
	filter := bson.M{}

	if status != "" && status != "all" {
		if !models.OrderStatus(status).Known() && status != string(models.StatusCompleted) {
			return nil, fmt.Errorf("unknown status %q", status)
		}
		filter["status"] = status
	}

	created := bson.M{}
	if startDate != "" {
		start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, errors.New("invalid startDate")
		}
		created["$gte"] = start
	}
	if endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, errors.New("invalid endDate")
		}
		created["$lt"] = end.AddDate(0, 0, 1)
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	return filter, nil
}

func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		orderID, ok := orderIDParam(c)
		if !ok {
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

		c.JSON(http.StatusOK, order)
	}
}
