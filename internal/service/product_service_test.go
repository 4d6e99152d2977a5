package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/service"
	"github.com/rukioi/CocadaNordestina/internal/testutil"
)

func TestCreateProductValidation(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)

	_, err := svcs.Product.Create(service.CreateProductRequest{Price: 13, Stock: 10})
	require.Error(t, err, "name required")

	_, err = svcs.Product.Create(service.CreateProductRequest{Name: "Cacau", Price: -1})
	require.Error(t, err, "negative price")

	_, err = svcs.Product.Create(service.CreateProductRequest{Name: "Cacau", Price: 13, Stock: -5})
	require.Error(t, err, "negative stock")
}

func TestUpdateStock(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	testutil.SignInAdmin(t, svcs)
	product := testutil.Product(t, svcs, "Cocada Tradicional", 13, 112)

	require.Error(t, svcs.Product.UpdateStock(product.ID, -1))
	require.NoError(t, svcs.Product.UpdateStock(product.ID, 80))
	require.NoError(t, svcs.Product.UpdateStock("missing", 5)) // silent no-op

	updated, err := svcs.Product.Get(product.ID)
	require.NoError(t, err)
	require.Equal(t, 80, updated.Stock)

	entries, err := svcs.Audit.Entries()
	require.NoError(t, err)
	require.Equal(t, entity.AuditUpdateStock, entries[0].Action)
	require.Equal(t, "Cocada Tradicional: 112 → 80 potes", entries[0].Details)
}

// Updating an id that does not exist must change nothing and, in particular,
// must not fabricate an audit entry for a mutation that never happened.
func TestUpdateUnknownProductLeavesNoAudit(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	testutil.SignInAdmin(t, svcs)

	require.NoError(t, svcs.Product.Update(entity.Product{ID: "missing", Name: "Fantasma", Price: 13}))

	entries, err := svcs.Audit.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1) // just the login
	require.Equal(t, entity.AuditLogin, entries[0].Action)
}

func TestSeedInitialCatalog(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)

	require.NoError(t, svcs.Product.SeedInitialCatalog())

	products, err := svcs.Product.List()
	require.NoError(t, err)
	require.Len(t, products, 5)

	byName := map[string]entity.Product{}
	for _, p := range products {
		byName[p.Name] = p
		require.Equal(t, 13.0, p.Price)
	}
	require.Equal(t, 112, byName["Cocada Tradicional"].Stock)
	require.Equal(t, "Tradicional", byName["Cocada Tradicional"].Category)
	require.Equal(t, "Sabores", byName["Maracujá"].Category)
	require.Equal(t, "Cremosa", byName["Cocada Cremosa"].Category)
}

// A deleted starter product must not come back when the seeder runs again,
// the way it does on every program start.
func TestSeedDoesNotResurrectDeletedProducts(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)
	require.NoError(t, svcs.Product.SeedInitialCatalog())

	products, err := svcs.Product.List()
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, svcs.Product.Delete(p.ID))
	}

	require.NoError(t, svcs.Product.SeedInitialCatalog())
	products, err = svcs.Product.List()
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestProductAuditOnlyWhenSignedIn(t *testing.T) {
	svcs, _ := testutil.NewEnv(t)

	// Nobody signed in: the mutation succeeds but leaves no trail.
	testutil.Product(t, svcs, "Doce de leite", 13, 10)
	entries, err := svcs.Audit.Entries()
	require.NoError(t, err)
	require.Empty(t, entries)

	testutil.SignInAdmin(t, svcs)
	product := testutil.Product(t, svcs, "Cacau", 13, 10)
	require.NoError(t, svcs.Product.Delete(product.ID))

	entries, err = svcs.Audit.Entries()
	require.NoError(t, err)
	require.Equal(t, entity.AuditDeleteProduct, entries[0].Action)
	require.Equal(t, fmt.Sprintf("Deletou produto: %s", product.Name), entries[0].Details)
	require.Equal(t, testutil.AdminName, entries[0].UserName)
}
