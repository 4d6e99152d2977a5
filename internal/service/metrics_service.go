package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

const dateLayout = "2006-01-02"

// MetricsService projects dashboard and report aggregates from the raw
// collections. Stateless: every call rescans, nothing is cached.
type MetricsService struct {
	saleRepo     *repository.SaleRepository
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
}

func NewMetricsService(saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository, customerRepo *repository.CustomerRepository) *MetricsService {
	return &MetricsService{saleRepo: saleRepo, productRepo: productRepo, customerRepo: customerRepo}
}

// Dashboard computes the home-screen aggregates. Only delivered sales count
// toward revenue figures.
func (s *MetricsService) Dashboard() (*entity.DashboardMetrics, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	products, err := s.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	customers, err := s.customerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}

	now := time.Now()

	var monthlyRevenue float64
	for _, sale := range sales {
		if sale.Status != entity.SaleStatusEntregue {
			continue
		}
		if sale.CreatedAt.Month() == now.Month() && sale.CreatedAt.Year() == now.Year() {
			monthlyRevenue += sale.Total
		}
	}

	// Exactly 30 points, oldest first, zero-filled, today included.
	daily := make([]entity.DailySale, 0, 30)
	for i := 29; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		var dayTotal float64
		for _, sale := range sales {
			if sale.Status == entity.SaleStatusEntregue && sale.CreatedAt.Format(dateLayout) == date {
				dayTotal += sale.Total
			}
		}
		daily = append(daily, entity.DailySale{Date: date, Value: dayTotal})
	}

	topProducts := topProductsOf(sales, false)

	distribution := make([]entity.TierCount, 0, len(entity.Tiers))
	for _, tier := range entity.Tiers {
		var count int
		for _, c := range customers {
			if c.Category == tier {
				count++
			}
		}
		distribution = append(distribution, entity.TierCount{Category: tier, Count: count})
	}

	var totalStock int
	for _, p := range products {
		totalStock += p.Stock
	}

	return &entity.DashboardMetrics{
		MonthlyRevenue:       monthlyRevenue,
		TotalProducts:        totalStock,
		TotalCustomers:       len(customers),
		PendingDeliveries:    0, // delivery tracking was retired from the dashboard
		DailySales:           daily,
		TopProducts:          topProducts,
		CustomerDistribution: distribution,
	}, nil
}

// Period selects the report window. End is inclusive: for explicit ranges it
// stretches to the last millisecond of its day.
type Period struct {
	Kind  string // "today", "week", "month" or "custom"
	Start time.Time
	End   time.Time
}

func PeriodToday() Period { return Period{Kind: "today"} }
func PeriodWeek() Period  { return Period{Kind: "week"} }
func PeriodMonth() Period { return Period{Kind: "month"} }

func PeriodRange(start, end time.Time) Period {
	return Period{Kind: "custom", Start: start, End: end}
}

func (p Period) bounds(now time.Time) (time.Time, time.Time) {
	switch p.Kind {
	case "week":
		return now.AddDate(0, 0, -7), now
	case "month":
		return now.AddDate(0, -1, 0), now
	case "custom":
		end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 23, 59, 59, 999e6, p.End.Location())
		return p.Start, end
	default: // today
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now
	}
}

// Report aggregates the delivered sales inside the period.
func (s *MetricsService) Report(period Period) (*entity.ReportMetrics, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("report metrics: %w", err)
	}

	start, end := period.bounds(time.Now())
	var filtered []entity.Sale
	for _, sale := range sales {
		if sale.Status != entity.SaleStatusEntregue {
			continue
		}
		if sale.CreatedAt.Before(start) || sale.CreatedAt.After(end) {
			continue
		}
		filtered = append(filtered, sale)
	}

	var totalRevenue float64
	var totalItems int
	for _, sale := range filtered {
		totalRevenue += sale.Total
		totalItems += sale.ItemCount()
	}
	var averageTicket float64
	if len(filtered) > 0 {
		averageTicket = totalRevenue / float64(len(filtered))
	}

	// Only days with sales appear here, ascending; the 30-day zero-filled
	// series belongs to the dashboard.
	byDay := map[string]float64{}
	for _, sale := range filtered {
		byDay[sale.CreatedAt.Format(dateLayout)] += sale.Total
	}
	daily := make([]entity.DailySale, 0, len(byDay))
	for date, value := range byDay {
		daily = append(daily, entity.DailySale{Date: date, Value: value})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	type customerAgg struct {
		name   string
		total  float64
		orders int
	}
	byCustomer := map[string]*customerAgg{}
	for _, sale := range filtered {
		agg, ok := byCustomer[sale.CustomerID]
		if !ok {
			agg = &customerAgg{name: sale.CustomerName}
			byCustomer[sale.CustomerID] = agg
		}
		agg.total += sale.Total
		agg.orders++
	}
	topCustomers := make([]entity.TopCustomer, 0, len(byCustomer))
	for _, agg := range byCustomer {
		topCustomers = append(topCustomers, entity.TopCustomer{Name: agg.name, Total: agg.total, Orders: agg.orders})
	}
	sort.Slice(topCustomers, func(i, j int) bool { return topCustomers[i].Total > topCustomers[j].Total })
	if len(topCustomers) > 5 {
		topCustomers = topCustomers[:5]
	}

	return &entity.ReportMetrics{
		TotalRevenue:  totalRevenue,
		TotalSales:    len(filtered),
		TotalItems:    totalItems,
		AverageTicket: averageTicket,
		TopProducts:   topProductsOf(filtered, true),
		DailySales:    daily,
		TopCustomers:  topCustomers,
	}, nil
}

// topProductsOf groups delivered items by product and returns the five best
// sellers by quantity. withRevenue adds per-product revenue (report variant).
func topProductsOf(sales []entity.Sale, withRevenue bool) []entity.TopProduct {
	type productAgg struct {
		name     string
		quantity int
		revenue  float64
	}
	byProduct := map[string]*productAgg{}
	for _, sale := range sales {
		if sale.Status != entity.SaleStatusEntregue {
			continue
		}
		for _, item := range sale.Items {
			agg, ok := byProduct[item.ProductID]
			if !ok {
				agg = &productAgg{name: item.ProductName}
				byProduct[item.ProductID] = agg
			}
			agg.quantity += item.Quantity
			agg.revenue += item.Total
		}
	}

	top := make([]entity.TopProduct, 0, len(byProduct))
	for _, agg := range byProduct {
		p := entity.TopProduct{Name: agg.name, Quantity: agg.quantity}
		if withRevenue {
			p.Revenue = agg.revenue
		}
		top = append(top, p)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > 5 {
		top = top[:5]
	}
	return top
}
