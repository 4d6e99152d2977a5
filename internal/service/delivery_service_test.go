package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/service"
	"github.com/rukioi/CocadaNordestina/internal/testutil"
)

func confirmedSale(t *testing.T, svcs *service.Services, customer *entity.Customer, product *entity.Product, qty int) *entity.Sale {
	t.Helper()
	sale, err := svcs.Sales.Create(service.CreateSaleRequest{
		CustomerID: customer.ID,
		Status:     entity.SaleStatusConfirmada,
		Items:      []service.CreateSaleItem{{ProductID: product.ID, ProductName: product.Name, Quantity: qty, Price: product.Price}},
	})
	require.NoError(t, err)
	return sale
}

func TestPendingSalesOnlyConfirmed(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	customer := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	product := testutil.Product(t, svcs, "Cocada Tradicional", 13, 100)

	confirmed := confirmedSale(t, svcs, customer, product, 2)
	_, err := svcs.Sales.Create(service.CreateSaleRequest{
		CustomerID: customer.ID,
		Status:     entity.SaleStatusPendente,
		Items:      []service.CreateSaleItem{{ProductID: product.ID, ProductName: product.Name, Quantity: 1, Price: 13}},
	})
	require.NoError(t, err)

	pending, err := svcs.Delivery.PendingSales()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, confirmed.ID, pending[0].ID)
}

func TestCreateRouteOrdersStopsByRegion(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	product := testutil.Product(t, svcs, "Cocada Tradicional", 13, 100)

	// Deliberately created in the reverse of the visit order.
	oeste := testutil.Customer(t, svcs, "Cliente Jabotiana", "Jabotiana")
	norte := testutil.Customer(t, svcs, "Cliente Cirurgia", "Cirurgia")
	sul := testutil.Customer(t, svcs, "Cliente Atalaia", "Atalaia")
	centro := testutil.Customer(t, svcs, "Cliente Centro", "Centro")

	saleOeste := confirmedSale(t, svcs, oeste, product, 1)
	saleNorte := confirmedSale(t, svcs, norte, product, 2)
	saleSul := confirmedSale(t, svcs, sul, product, 3)
	saleCentro := confirmedSale(t, svcs, centro, product, 4)

	route, err := svcs.Delivery.CreateRoute(service.CreateRouteRequest{
		Name:    "Rota de Sábado",
		Date:    "2026-09-05",
		SaleIDs: []string{saleOeste.ID, saleNorte.ID, saleSul.ID, saleCentro.ID},
	})
	require.NoError(t, err)

	require.Equal(t, entity.RouteStatusPlanejada, route.Status)
	require.Len(t, route.Sales, 4)
	require.Equal(t, saleCentro.ID, route.Sales[0].ID) // Centro
	require.Equal(t, saleSul.ID, route.Sales[1].ID)    // Zona Sul
	require.Equal(t, saleNorte.ID, route.Sales[2].ID)  // Zona Norte
	require.Equal(t, saleOeste.ID, route.Sales[3].ID)  // Zona Oeste

	require.Equal(t, 130.0, route.TotalValue)
	// 4 stops * 15 + 4 regions * 10 + 30 base.
	require.Equal(t, 130, route.EstimatedTime)
}

func TestCreateRouteUnknownNeighborhoodGoesLast(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	product := testutil.Product(t, svcs, "Cacau", 13, 100)

	elsewhere := testutil.Customer(t, svcs, "Cliente de Fora", "Barra dos Coqueiros")
	centro := testutil.Customer(t, svcs, "Cliente Centro", "Centro")

	saleElsewhere := confirmedSale(t, svcs, elsewhere, product, 1)
	saleCentro := confirmedSale(t, svcs, centro, product, 1)

	route, err := svcs.Delivery.CreateRoute(service.CreateRouteRequest{
		Name:    "Rota Mista",
		Date:    "2026-09-05",
		SaleIDs: []string{saleElsewhere.ID, saleCentro.ID},
	})
	require.NoError(t, err)
	require.Equal(t, saleCentro.ID, route.Sales[0].ID)
	require.Equal(t, saleElsewhere.ID, route.Sales[1].ID) // Outros closes the route
}

func TestCreateRouteValidation(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)

	_, err := svcs.Delivery.CreateRoute(service.CreateRouteRequest{Name: "Sem Data", SaleIDs: []string{"x"}})
	require.Error(t, err)

	_, err = svcs.Delivery.CreateRoute(service.CreateRouteRequest{Name: "Vazia", Date: "2026-09-05"})
	require.Error(t, err)
}

func TestCompleteRouteDeliversEverySale(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	product := testutil.Product(t, svcs, "Maracujá", 13, 10)
	maria := testutil.Customer(t, svcs, "Dona Maria", "Centro")
	jose := testutil.Customer(t, svcs, "Seu José", "Atalaia")

	first := confirmedSale(t, svcs, maria, product, 2)
	second := confirmedSale(t, svcs, jose, product, 3)

	route, err := svcs.Delivery.CreateRoute(service.CreateRouteRequest{
		Name:    "Rota Completa",
		Date:    "2026-09-05",
		SaleIDs: []string{first.ID, second.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Delivery.CompleteRoute(route.ID))

	for _, id := range []string{first.ID, second.ID} {
		sale, err := svcs.Sales.Get(id)
		require.NoError(t, err)
		require.Equal(t, entity.SaleStatusEntregue, sale.Status)
	}

	stocked, err := svcs.Product.Get(product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stocked.Stock)

	routes, err := svcs.Delivery.ListRoutes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Equal(t, entity.RouteStatusConcluida, routes[0].Status)

	// Completing again re-runs idempotent confirmations; stock stays put.
	require.NoError(t, svcs.Delivery.CompleteRoute(route.ID))
	stocked, err = svcs.Product.Get(product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stocked.Stock)
}

func TestUpdateUnknownRouteLeavesNoAudit(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	testutil.SignInAdmin(t, svcs)

	require.NoError(t, svcs.Delivery.UpdateRoute(entity.DeliveryRoute{ID: "missing", Name: "Rota Fantasma"}))

	entries, err := svcs.Audit.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1) // just the login
	require.Equal(t, entity.AuditLogin, entries[0].Action)
}

func TestCompleteRouteUnknownIDIsNoOp(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	require.NoError(t, svcs.Delivery.CompleteRoute("missing"))
}
