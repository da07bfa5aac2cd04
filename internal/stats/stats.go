// Package stats turns a list of historical orders into the summary figures
// behind the statistics screen. Aggregate is a pure fold: it reads only its
// arguments, carries no state between calls, and yields identical output for
// identical input, so every recomputation starts from scratch.
package stats

import (
	"sort"
	"time"

	"snackpos/internal/models"
)

// RevenuePoint is one day in the trailing-week revenue series.
type RevenuePoint struct {
	Label  string `json:"date"`
	Amount int64  `json:"revenue"`
}

// ProductCount ranks one product or supplement by units sold. Supplement
// entries are tagged so a supplement never collides with a product of the
// same name.
type ProductCount struct {
	Name       string `json:"name"`
	Supplement bool   `json:"supplement,omitempty"`
	UnitsSold  int    `json:"count"`
}

// Bundle is the derived statistics snapshot. It is ephemeral: recomputed on
// every period switch or order-list refresh, never persisted.
type Bundle struct {
	OrderCount     int   `json:"orders"`
	RevenueTotal   int64 `json:"revenue"`
	CompletedCount int   `json:"completed"`
	PendingCount   int   `json:"pending"`
	CancelledCount int   `json:"cancelled"`

	// RevenueByDay always holds exactly 7 buckets for the calendar days
	// ending at the reference date, whatever period is selected. The chart
	// answers "trailing week" even when the cards above it summarize a
	// different window.
	RevenueByDay []RevenuePoint `json:"revenueByDay"`

	ProductPopularity   []ProductCount               `json:"popularProducts"`
	PaymentDistribution map[models.PaymentMethod]int `json:"paymentMethods"`
}

type popularityKey struct {
	name       string
	supplement bool
}

// Aggregate computes the statistics bundle for the orders matching the
// period. referenceNow is the only notion of "now"; it is never read
// implicitly. Orders with missing line or supplement collections contribute
// zero rather than failing the whole computation.
func Aggregate(orders []models.Order, period Period, referenceNow time.Time) Bundle {
	bundle := Bundle{
		RevenueByDay:        make([]RevenuePoint, 0, 7),
		ProductPopularity:   []ProductCount{},
		PaymentDistribution: map[models.PaymentMethod]int{},
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if period.Contains(o.CreatedAt, referenceNow) {
			filtered = append(filtered, o)
		}
	}

	bundle.OrderCount = len(filtered)
	for _, o := range filtered {
		bundle.RevenueTotal += o.TotalAmount
		switch o.Status {
		case models.StatusCompleted:
			bundle.CompletedCount++
		case models.StatusPending:
			bundle.PendingCount++
		case models.StatusCancelled:
			bundle.CancelledCount++
		}
		bundle.PaymentDistribution[o.PaymentMethod]++
	}

	for i := 6; i >= 0; i-- {
		day := referenceNow.AddDate(0, 0, -i)
		point := RevenuePoint{Label: day.Format("02/01")}
		for _, o := range filtered {
			if sameDay(o.CreatedAt, day) {
				point.Amount += o.TotalAmount
			}
		}
		bundle.RevenueByDay = append(bundle.RevenueByDay, point)
	}

	bundle.ProductPopularity = rankProducts(filtered)

	return bundle
}

// rankProducts accumulates units sold per product name and per supplement
// name (scaled by the line quantity), then orders the full set descending.
// Ties keep first-encountered order; there is no top-N cut.
func rankProducts(orders []models.Order) []ProductCount {
	index := map[popularityKey]int{}
	ranking := []ProductCount{}

	accumulate := func(key popularityKey, units int) {
		i, ok := index[key]
		if !ok {
			i = len(ranking)
			index[key] = i
			ranking = append(ranking, ProductCount{Name: key.name, Supplement: key.supplement})
		}
		ranking[i].UnitsSold += units
	}

	for _, o := range orders {
		for _, line := range o.Lines {
			accumulate(popularityKey{name: line.Name}, line.Quantity)
			for _, s := range line.Supplements {
				qty := s.Quantity
				if qty == 0 {
					qty = 1
				}
				accumulate(popularityKey{name: s.Name, supplement: true}, qty*line.Quantity)
			}
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].UnitsSold > ranking[j].UnitsSold
	})

	return ranking
}
