package models

// MenuSection partitions the catalog the way the counter screen shows it.
type MenuSection string

const (
	SectionProduct    MenuSection = "products"
	SectionSupplement MenuSection = "supplements"
	SectionDrink      MenuSection = "drinks"
)

// MenuItem is one catalog entry. The catalog is read-only reference data for
// building order lines; orders copy the name and price at the time of sale.
type MenuItem struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	UnitPrice   int64       `bson:"price" json:"price"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Section     MenuSection `bson:"section" json:"-"`
}

// Menu is the catalog shape the front end consumes from GET /api/menu.
type Menu struct {
	Products    []MenuItem `json:"products"`
	Supplements []MenuItem `json:"supplements"`
	Drinks      []MenuItem `json:"drinks"`
}
