package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
	"github.com/rukioi/CocadaNordestina/internal/service"
	"github.com/rukioi/CocadaNordestina/internal/testutil"
)

// deliveredSale runs a sale through the full lifecycle and optionally backdates
// its creation so period filters have something to bite on.
func deliveredSale(t *testing.T, svcs *service.Services, repos *repository.Repositories, customer *entity.Customer, product *entity.Product, qty int, daysAgo int) *entity.Sale {
	t.Helper()

	sale, err := svcs.Sales.Create(service.CreateSaleRequest{
		CustomerID: customer.ID,
		Status:     entity.SaleStatusConfirmada,
		Items:      []service.CreateSaleItem{{ProductID: product.ID, ProductName: product.Name, Quantity: qty, Price: product.Price}},
	})
	require.NoError(t, err)
	require.NoError(t, svcs.Sales.ConfirmDelivery(sale.ID))

	delivered, err := svcs.Sales.Get(sale.ID)
	require.NoError(t, err)

	if daysAgo > 0 {
		delivered.CreatedAt = time.Now().AddDate(0, 0, -daysAgo)
		require.NoError(t, repos.Sale.Update(*delivered))
	}
	return delivered
}

func TestDashboardDailySeries(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	customer := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	product := testutil.Product(t, svcs, "Cocada Tradicional", 13, 100)

	deliveredSale(t, svcs, repos, customer, product, 2, 0)  // today, 26.00
	deliveredSale(t, svcs, repos, customer, product, 3, 5)  // five days back, 39.00
	deliveredSale(t, svcs, repos, customer, product, 1, 45) // outside the window

	m, err := svcs.Metrics.Dashboard()
	require.NoError(t, err)

	require.Len(t, m.DailySales, 30)
	// Oldest first, today last.
	require.Equal(t, time.Now().AddDate(0, 0, -29).Format("2006-01-02"), m.DailySales[0].Date)
	require.Equal(t, time.Now().Format("2006-01-02"), m.DailySales[29].Date)
	require.Equal(t, 26.0, m.DailySales[29].Value)
	require.Equal(t, 39.0, m.DailySales[24].Value)

	var nonZero int
	for _, d := range m.DailySales {
		if d.Value > 0 {
			nonZero++
		}
	}
	require.Equal(t, 2, nonZero)
}

func TestDashboardCountsOnlyDeliveredRevenue(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	customer := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	product := testutil.Product(t, svcs, "Cacau", 13, 100)

	deliveredSale(t, svcs, repos, customer, product, 2, 0)

	// A pending sale never reaches the revenue figures.
	_, err := svcs.Sales.Create(service.CreateSaleRequest{
		CustomerID: customer.ID,
		Status:     entity.SaleStatusPendente,
		Items:      []service.CreateSaleItem{{ProductID: product.ID, ProductName: product.Name, Quantity: 10, Price: 13}},
	})
	require.NoError(t, err)

	m, err := svcs.Metrics.Dashboard()
	require.NoError(t, err)
	require.Equal(t, 26.0, m.MonthlyRevenue)
	require.Equal(t, 98, m.TotalProducts) // jars left after the delivered two
	require.Equal(t, 1, m.TotalCustomers)
	require.Zero(t, m.PendingDeliveries)
}

func TestDashboardCustomerDistribution(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	product := testutil.Product(t, svcs, "Cocada Cremosa", 10, 1000)

	testutil.Customer(t, svcs, "Novo Cliente", "Centro")
	regular := testutil.Customer(t, svcs, "Cliente Regular", "Atalaia")
	deliveredSale(t, svcs, repos, regular, product, 150, 0) // 1500, Regular

	m, err := svcs.Metrics.Dashboard()
	require.NoError(t, err)

	counts := map[string]int{}
	for _, d := range m.CustomerDistribution {
		counts[d.Category] = d.Count
	}
	require.Equal(t, 1, counts[entity.TierNovo])
	require.Equal(t, 1, counts[entity.TierRegular])
	require.Zero(t, counts[entity.TierPremium])
	require.Zero(t, counts[entity.TierVIP])
	require.Len(t, m.CustomerDistribution, len(entity.Tiers))
}

func TestReportFiltersPeriod(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	customer := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	product := testutil.Product(t, svcs, "Maracujá", 13, 500)

	deliveredSale(t, svcs, repos, customer, product, 2, 0)  // today
	deliveredSale(t, svcs, repos, customer, product, 4, 3)  // this week
	deliveredSale(t, svcs, repos, customer, product, 8, 20) // this month only

	today, err := svcs.Metrics.Report(service.PeriodToday())
	require.NoError(t, err)
	require.Equal(t, 1, today.TotalSales)
	require.Equal(t, 26.0, today.TotalRevenue)
	require.Equal(t, 2, today.TotalItems)

	week, err := svcs.Metrics.Report(service.PeriodWeek())
	require.NoError(t, err)
	require.Equal(t, 2, week.TotalSales)
	require.Equal(t, 78.0, week.TotalRevenue)

	month, err := svcs.Metrics.Report(service.PeriodMonth())
	require.NoError(t, err)
	require.Equal(t, 3, month.TotalSales)
	require.Equal(t, 182.0, month.TotalRevenue)
	require.InDelta(t, 182.0/3, month.AverageTicket, 1e-9)

	// Daily series only carries days that actually sold, ascending.
	require.Len(t, month.DailySales, 3)
	require.Less(t, month.DailySales[0].Date, month.DailySales[1].Date)
	require.Less(t, month.DailySales[1].Date, month.DailySales[2].Date)
}

func TestReportCustomRangeIsEndInclusive(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	customer := testutil.Customer(t, svcs, "Seu José", "Atalaia")
	product := testutil.Product(t, svcs, "Cacau", 13, 500)

	deliveredSale(t, svcs, repos, customer, product, 3, 10)

	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	report, err := svcs.Metrics.Report(service.PeriodRange(
		time.Date(tenDaysAgo.Year(), tenDaysAgo.Month(), tenDaysAgo.Day(), 0, 0, 0, 0, time.Local),
		tenDaysAgo, // end stretches to 23:59:59.999 of that day
	))
	require.NoError(t, err)
	require.Equal(t, 1, report.TotalSales)

	// The day before finds nothing.
	dayBefore := tenDaysAgo.AddDate(0, 0, -1)
	report, err = svcs.Metrics.Report(service.PeriodRange(dayBefore, dayBefore))
	require.NoError(t, err)
	require.Zero(t, report.TotalSales)
}

func TestReportTopProductsAndCustomers(t *testing.T) {
	svcs, repos := testutil.NewEnv(t)
	tradicional := testutil.Product(t, svcs, "Cocada Tradicional", 13, 500)
	cacau := testutil.Product(t, svcs, "Cacau", 13, 500)
	maria := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	jose := testutil.Customer(t, svcs, "Seu José", "Atalaia")

	deliveredSale(t, svcs, repos, maria, tradicional, 10, 0)
	deliveredSale(t, svcs, repos, maria, cacau, 2, 0)
	deliveredSale(t, svcs, repos, jose, cacau, 5, 0)

	report, err := svcs.Metrics.Report(service.PeriodMonth())
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 2)
	require.Equal(t, "Cocada Tradicional", report.TopProducts[0].Name)
	require.Equal(t, 10, report.TopProducts[0].Quantity)
	require.Equal(t, 130.0, report.TopProducts[0].Revenue)
	require.Equal(t, "Cacau", report.TopProducts[1].Name)
	require.Equal(t, 7, report.TopProducts[1].Quantity)

	require.Len(t, report.TopCustomers, 2)
	require.Equal(t, "Dona Maria", report.TopCustomers[0].Name)
	require.Equal(t, 156.0, report.TopCustomers[0].Total)
	require.Equal(t, 2, report.TopCustomers[0].Orders)
	require.Equal(t, "Seu José", report.TopCustomers[1].Name)
	require.Equal(t, 1, report.TopCustomers[1].Orders)
}
