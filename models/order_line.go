package models

// OrderLine is a single line item embedded in a takeaway or delivery order.
// Lines are owned by their parent order and never referenced independently.
type OrderLine struct {
	Name     string  `bson:"name" json:"name" binding:"required"`
	Quantity int     `bson:"quantity" json:"quantity" binding:"omitempty,min=1"`
	Price    float64 `bson:"price" json:"price" binding:"omitempty,min=0"`
}

// normalizeLines applies the schema defaults: quantity 1, price 0.
func normalizeLines(items []OrderLine) {
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
		if items[i].Price < 0 {
			items[i].Price = 0
		}
	}
}

// linesTotal is the order total: Σ(quantity × price) over the line items.
func linesTotal(items []OrderLine) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
