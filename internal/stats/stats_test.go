package stats

import (
	"reflect"
	"testing"
	"time"

	"snackpos/internal/models"
)

var refNow = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)

func order(created time.Time, total int64, status models.OrderStatus, method models.PaymentMethod, lines ...models.OrderLine) models.Order {
	return models.Order{
		Lines:         lines,
		TotalAmount:   total,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     created,
	}
}

func TestAggregateEmpty(t *testing.T) {
	bundle := Aggregate(nil, Today(), refNow)

	if bundle.OrderCount != 0 || bundle.RevenueTotal != 0 ||
		bundle.CompletedCount != 0 || bundle.PendingCount != 0 || bundle.CancelledCount != 0 {
		t.Fatalf("expected all-zero counts, got %+v", bundle)
	}
	if len(bundle.RevenueByDay) != 7 {
		t.Fatalf("expected 7 revenue buckets, got %d", len(bundle.RevenueByDay))
	}
	for _, p := range bundle.RevenueByDay {
		if p.Amount != 0 {
			t.Fatalf("expected zero revenue in bucket %s, got %d", p.Label, p.Amount)
		}
	}
	if len(bundle.ProductPopularity) != 0 {
		t.Fatalf("expected empty popularity list, got %v", bundle.ProductPopularity)
	}
	if len(bundle.PaymentDistribution) != 0 {
		t.Fatalf("expected empty payment distribution, got %v", bundle.PaymentDistribution)
	}
}

func TestAggregateTodayFiltersAndSums(t *testing.T) {
	orders := []models.Order{
		order(refNow.Add(-2*time.Hour), 18000, models.StatusPending, models.PaymentCash),
		order(refNow.Add(-5*time.Hour), 5000, models.StatusCompleted, models.PaymentCard),
		order(refNow.AddDate(0, 0, -8), 9000, models.StatusDelivered, models.PaymentCash),
	}

	bundle := Aggregate(orders, Today(), refNow)

	if bundle.OrderCount != 2 {
		t.Fatalf("expected 2 orders, got %d", bundle.OrderCount)
	}
	if bundle.RevenueTotal != 23000 {
		t.Fatalf("expected revenue 23000, got %d", bundle.RevenueTotal)
	}
	if bundle.PendingCount != 1 || bundle.CompletedCount != 1 || bundle.CancelledCount != 0 {
		t.Fatalf("unexpected status counts: %+v", bundle)
	}

	// The 8-day-old order is outside the fixed trailing week; both today
	// orders land in the last bucket.
	series := bundle.RevenueByDay
	if len(series) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(series))
	}
	for i, p := range series[:6] {
		if p.Amount != 0 {
			t.Fatalf("expected zero in bucket %d (%s), got %d", i, p.Label, p.Amount)
		}
	}
	if series[6].Amount != 23000 {
		t.Fatalf("expected 23000 in today's bucket, got %d", series[6].Amount)
	}
	if series[6].Label != "10/03" || series[0].Label != "04/03" {
		t.Fatalf("unexpected bucket labels: first %q last %q", series[0].Label, series[6].Label)
	}
}

func TestAggregateLast7DaysIsElapsedWindow(t *testing.T) {
	justInside := order(refNow.Add(-7*24*time.Hour+time.Minute), 1000, models.StatusPending, models.PaymentCash)
	justOutside := order(refNow.Add(-7*24*time.Hour-time.Minute), 2000, models.StatusPending, models.PaymentCash)

	bundle := Aggregate([]models.Order{justInside, justOutside}, Last7Days(), refNow)
	if bundle.OrderCount != 1 || bundle.RevenueTotal != 1000 {
		t.Fatalf("expected only the order inside the 7×24h window, got %+v", bundle)
	}
}

func TestAggregateCurrentMonth(t *testing.T) {
	orders := []models.Order{
		order(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local), 4000, models.StatusDelivered, models.PaymentCard),
		order(time.Date(2026, time.February, 28, 9, 0, 0, 0, time.Local), 6000, models.StatusDelivered, models.PaymentCard),
		order(time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local), 7000, models.StatusDelivered, models.PaymentCard),
	}
	bundle := Aggregate(orders, CurrentMonth(), refNow)
	if bundle.OrderCount != 1 || bundle.RevenueTotal != 4000 {
		t.Fatalf("expected only the March 2026 order, got %+v", bundle)
	}
}

func TestAggregateSpecificDay(t *testing.T) {
	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)
	orders := []models.Order{
		order(time.Date(2026, time.March, 3, 12, 0, 0, 0, time.Local), 5500, models.StatusCancelled, models.PaymentMobile),
		order(refNow, 9000, models.StatusPending, models.PaymentCash),
	}
	bundle := Aggregate(orders, SpecificDay(day), refNow)
	if bundle.OrderCount != 1 || bundle.RevenueTotal != 5500 || bundle.CancelledCount != 1 {
		t.Fatalf("expected only the March 3rd order, got %+v", bundle)
	}
	// The revenue series still spans the 7 days ending at referenceNow.
	if bundle.RevenueByDay[6].Label != "10/03" {
		t.Fatalf("series must stay anchored to referenceNow, got last label %q", bundle.RevenueByDay[6].Label)
	}
}

func TestAggregateTodayKeepsUTCStoredOrdersInLocalCalendar(t *testing.T) {
	// The driver decodes createdAt as UTC; the restaurant runs UTC+1. An
	// order placed at 00:10 local on the 10th is stored as 23:10 on the 9th.
	tunis := time.FixedZone("CET", 3600)
	ref := time.Date(2026, time.March, 10, 14, 30, 0, 0, tunis)
	o := order(time.Date(2026, time.March, 9, 23, 10, 0, 0, time.UTC), 4000, models.StatusPending, models.PaymentCash)

	bundle := Aggregate([]models.Order{o}, Today(), ref)
	if bundle.OrderCount != 1 || bundle.RevenueTotal != 4000 {
		t.Fatalf("order placed 00:10 local must count as today, got %+v", bundle)
	}
	if bundle.RevenueByDay[6].Amount != 4000 {
		t.Fatalf("order must land in the 10th's bucket, got %+v", bundle.RevenueByDay)
	}

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, tunis)
	bundle = Aggregate([]models.Order{o}, SpecificDay(day), ref)
	if bundle.OrderCount != 1 {
		t.Fatalf("specificDay must use the selected day's calendar, got %+v", bundle)
	}
}

func TestAggregateCurrentMonthAcrossZones(t *testing.T) {
	tunis := time.FixedZone("CET", 3600)
	ref := time.Date(2026, time.March, 1, 10, 0, 0, 0, tunis)
	orders := []models.Order{
		// 00:30 local on March 1st, stored as February 28th UTC.
		order(time.Date(2026, time.February, 28, 23, 30, 0, 0, time.UTC), 1000, models.StatusPending, models.PaymentCash),
		// 23:30 local on February 28th.
		order(time.Date(2026, time.February, 28, 22, 30, 0, 0, time.UTC), 2000, models.StatusPending, models.PaymentCash),
	}

	bundle := Aggregate(orders, CurrentMonth(), ref)
	if bundle.OrderCount != 1 || bundle.RevenueTotal != 1000 {
		t.Fatalf("month filter must follow the reference calendar, got %+v", bundle)
	}
}

func TestAggregateCompletedAndDeliveredStayDistinct(t *testing.T) {
	orders := []models.Order{
		order(refNow, 1000, models.StatusCompleted, models.PaymentCash),
		order(refNow, 1000, models.StatusDelivered, models.PaymentCash),
	}
	bundle := Aggregate(orders, Today(), refNow)
	if bundle.CompletedCount != 1 {
		t.Fatalf("delivered must not count as completed: %+v", bundle)
	}
}

func TestAggregatePopularity(t *testing.T) {
	chapatti := models.OrderLine{
		Name: "Chapatti Poulet", Quantity: 2,
		Supplements: []models.Supplement{{Name: "Fromage", Quantity: 1}},
	}
	coca := models.OrderLine{Name: "Coca", Quantity: 1}
	orders := []models.Order{
		order(refNow, 18000, models.StatusPending, models.PaymentCash, chapatti),
		order(refNow, 2500, models.StatusPending, models.PaymentCash, coca),
	}

	bundle := Aggregate(orders, Today(), refNow)
	want := []ProductCount{
		{Name: "Chapatti Poulet", UnitsSold: 2},
		{Name: "Fromage", Supplement: true, UnitsSold: 2}, // 1 per unit × line quantity 2
		{Name: "Coca", UnitsSold: 1},
	}
	if !reflect.DeepEqual(bundle.ProductPopularity, want) {
		t.Fatalf("popularity mismatch:\n got %+v\nwant %+v", bundle.ProductPopularity, want)
	}
}

func TestAggregatePopularityTieKeepsFirstEncountered(t *testing.T) {
	orders := []models.Order{
		order(refNow, 1000, models.StatusPending, models.PaymentCash, models.OrderLine{Name: "Thé", Quantity: 3}),
		order(refNow, 1000, models.StatusPending, models.PaymentCash, models.OrderLine{Name: "Café", Quantity: 3}),
	}
	bundle := Aggregate(orders, Today(), refNow)
	if bundle.ProductPopularity[0].Name != "Thé" || bundle.ProductPopularity[1].Name != "Café" {
		t.Fatalf("tie must keep first-encountered order, got %+v", bundle.ProductPopularity)
	}
}

func TestAggregateSupplementNotConfusedWithProduct(t *testing.T) {
	line := models.OrderLine{
		Name: "Fromage", Quantity: 1,
		Supplements: []models.Supplement{{Name: "Fromage", Quantity: 1}},
	}
	bundle := Aggregate([]models.Order{order(refNow, 1000, models.StatusPending, models.PaymentCash, line)}, Today(), refNow)
	if len(bundle.ProductPopularity) != 2 {
		t.Fatalf("expected distinct product and supplement entries, got %+v", bundle.ProductPopularity)
	}
}

func TestAggregatePaymentDistribution(t *testing.T) {
	orders := []models.Order{
		order(refNow, 1000, models.StatusPending, models.PaymentCash),
		order(refNow, 1000, models.StatusPending, models.PaymentCash),
		order(refNow, 1000, models.StatusPending, models.PaymentCard),
		order(refNow, 1000, models.StatusPending, models.PaymentMobile),
	}
	bundle := Aggregate(orders, Today(), refNow)
	want := map[models.PaymentMethod]int{
		models.PaymentCash:   2,
		models.PaymentCard:   1,
		models.PaymentMobile: 1,
	}
	if !reflect.DeepEqual(bundle.PaymentDistribution, want) {
		t.Fatalf("payment distribution mismatch: got %v want %v", bundle.PaymentDistribution, want)
	}
}

func TestAggregateInputOrderInvariant(t *testing.T) {
	orders := []models.Order{
		order(refNow, 18000, models.StatusPending, models.PaymentCash, models.OrderLine{Name: "Chapatti Poulet", Quantity: 2}),
		order(refNow.Add(-time.Hour), 5000, models.StatusCompleted, models.PaymentCard, models.OrderLine{Name: "Coca", Quantity: 1}),
		order(refNow.AddDate(0, 0, -3), 9000, models.StatusCancelled, models.PaymentMobile, models.OrderLine{Name: "Chapatti Thon", Quantity: 1}),
	}
	reversed := []models.Order{orders[2], orders[1], orders[0]}

	a := Aggregate(orders, AllTime(), refNow)
	b := Aggregate(reversed, AllTime(), refNow)

	if a.OrderCount != b.OrderCount || a.RevenueTotal != b.RevenueTotal ||
		!reflect.DeepEqual(a.RevenueByDay, b.RevenueByDay) ||
		!reflect.DeepEqual(a.PaymentDistribution, b.PaymentDistribution) {
		t.Fatalf("aggregation depends on input order:\n a=%+v\n b=%+v", a, b)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	orders := []models.Order{
		order(refNow, 18000, models.StatusPending, models.PaymentCash, models.OrderLine{Name: "Chapatti Poulet", Quantity: 2}),
	}
	a := Aggregate(orders, Today(), refNow)
	b := Aggregate(orders, Today(), refNow)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated aggregation differs:\n a=%+v\n b=%+v", a, b)
	}
}

func TestAggregateToleratesMalformedOrders(t *testing.T) {
	malformed := models.Order{TotalAmount: 3000, Status: models.StatusPending, PaymentMethod: models.PaymentCash, CreatedAt: refNow}
	withNilSupplementQty := order(refNow, 2000, models.StatusPending, models.PaymentCash, models.OrderLine{
		Name: "Chapatti Escalope", Quantity: 1,
		Supplements: []models.Supplement{{Name: "Fromage"}}, // missing quantity counts as 1
	})

	bundle := Aggregate([]models.Order{malformed, withNilSupplementQty}, Today(), refNow)
	if bundle.OrderCount != 2 || bundle.RevenueTotal != 5000 {
		t.Fatalf("malformed orders must still count, got %+v", bundle)
	}
	for _, p := range bundle.ProductPopularity {
		if p.Name == "Fromage" && p.UnitsSold != 1 {
			t.Fatalf("missing supplement quantity should count as 1, got %d", p.UnitsSold)
		}
	}
}
