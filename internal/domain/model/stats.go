package model

// StatsSummary aggregates marketplace counters for the statistics endpoint.
type StatsSummary struct {
	UserCount    int64   `json:"user_count"`
	ProductCount int64   `json:"product_count"`
	OrderCount   int64   `json:"order_count"`
	RecentOrders []Order `json:"recent_orders"`
}
