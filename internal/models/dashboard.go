package models

// Dashboard — сводка для главного экрана.
type Dashboard struct {
	ActiveSubscriptions int                    `json:"active_subscriptions"`
	TotalRevenue        float64                `json:"total_revenue"`
	TotalClients        int                    `json:"total_clients"`
	OverdueCount        int                    `json:"overdue_count"`
	ExpiringCount       int                    `json:"expiring_count"`
	Overdue             []*OverdueSubscription `json:"overdue"`
	ExpiringSoon        []*Subscription        `json:"expiring_soon"`
}
