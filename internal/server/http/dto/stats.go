package dto

// StatsResponse aggregates marketplace counters.
type StatsResponse struct {
	UserCount    int64           `json:"user_count"`
	ProductCount int64           `json:"product_count"`
	OrderCount   int64           `json:"order_count"`
	RecentOrders []OrderResponse `json:"recent_orders"`
}
