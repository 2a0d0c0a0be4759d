package store

// StatusCount is one bucket of a group-by-status aggregation.
type StatusCount struct {
	Status string `bson:"_id" json:"_id"`
	Count  int64  `bson:"count" json:"count"`
}

// StatusRevenue additionally carries the summed revenue of the bucket.
type StatusRevenue struct {
	Status       string  `bson:"_id" json:"_id"`
	Count        int64   `bson:"count" json:"count"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

type ReservationStats struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
}

type OrderStats struct {
	Total        int64           `json:"total"`
	TotalRevenue float64         `json:"totalRevenue"`
	ByStatus     []StatusRevenue `json:"byStatus"`
}

type CategoryStat struct {
	Category string  `bson:"_id" json:"_id"`
	Count    int64   `bson:"count" json:"count"`
	AvgPrice float64 `bson:"avgPrice" json:"avgPrice"`
}

type MenuStats struct {
	Total       int64          `json:"total"`
	Available   int64          `json:"available"`
	Unavailable int64          `json:"unavailable"`
	ByCategory  []CategoryStat `json:"byCategory"`
}
