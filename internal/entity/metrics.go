package entity

// DailySale is one point of a revenue-per-day series. Date is yyyy-mm-dd.
type DailySale struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue,omitempty"`
}

type TopCustomer struct {
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
	Orders int     `json:"orders"`
}

type TierCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardMetrics is the on-demand projection backing the dashboard screen.
// Nothing here is cached; every read rescans the collections.
type DashboardMetrics struct {
	MonthlyRevenue       float64      `json:"monthlyRevenue"`
	TotalProducts        int          `json:"totalProducts"` // jars in stock across the catalog
	TotalCustomers       int          `json:"totalCustomers"`
	PendingDeliveries    int          `json:"pendingDeliveries"`
	DailySales           []DailySale  `json:"dailySales"`
	TopProducts          []TopProduct `json:"topProducts"`
	CustomerDistribution []TierCount  `json:"customerDistribution"`
}

// ReportMetrics is the period-filtered variant used by the reports screen.
type ReportMetrics struct {
	TotalRevenue  float64       `json:"totalRevenue"`
	TotalSales    int           `json:"totalSales"`
	TotalItems    int           `json:"totalItems"`
	AverageTicket float64       `json:"averageTicket"`
	TopProducts   []TopProduct  `json:"topProducts"`
	DailySales    []DailySale   `json:"dailySales"`
	TopCustomers  []TopCustomer `json:"topCustomers"`
}
