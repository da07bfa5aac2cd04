package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All monetary amounts are integers in millimes (1/1000 DT). Display
// formatting divides by 1000; nothing in here ever touches floats.

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"

	// StatusCompleted is not part of the fulfillment lifecycle but shows up
	// on order records from older ingestion paths. Statistics count it
	// separately from delivered; do not fold the two together.
	StatusCompleted OrderStatus = "completed"
)

// Known reports whether s is one of the lifecycle statuses accepted on a
// status-change request.
func (s OrderStatus) Known() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Supplement is an add-on attached to a single order line. The price is per
// base unit of the line; the line's own quantity scales it.
type Supplement struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	Name      string `bson:"name" json:"name"`
	UnitPrice int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// OrderLine is one product entry in an order. LineTotal is derived:
// (UnitPrice + Σ supplement price×quantity) × Quantity.
type OrderLine struct {
	ProductID   string       `bson:"productId" json:"productId"`
	Name        string       `bson:"name" json:"name"`
	UnitPrice   int64        `bson:"price" json:"price"`
	Quantity    int          `bson:"quantity" json:"quantity"`
	Supplements []Supplement `bson:"supplements,omitempty" json:"supplements"`
	LineTotal   int64        `bson:"itemTotal" json:"itemTotal"`
}

// Order is the persisted order document. TotalAmount always equals the sum
// of the line totals; creation rejects anything else.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"orderNumber" json:"orderNumber"`
	Lines         []OrderLine        `bson:"items" json:"items"`
	TotalAmount   int64              `bson:"totalAmount" json:"totalAmount"`
	CustomerName  string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
