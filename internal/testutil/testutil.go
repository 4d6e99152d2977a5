// Package testutil wires throwaway in-memory environments for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
	"github.com/rukioi/CocadaNordestina/internal/service"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

const (
	AdminName     = "Adriana Souza"
	AdminEmail    = "adriana@cocadanordestina.com"
	AdminPassword = "murilo05"
)

// NewStore opens an isolated in-memory store.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenMemory(zap.NewNop())
	require.NoError(t, err)
	return st
}

// NewEnv builds the full service stack over a fresh in-memory store.
func NewEnv(t *testing.T) (*service.Services, *repository.Repositories) {
	t.Helper()
	st := NewStore(t)
	repos := repository.NewRepositories(st)
	return service.NewServices(st, repos, zap.NewNop()), repos
}

// SeedAdmin creates the initial administrator without signing anyone in.
func SeedAdmin(t *testing.T, svcs *service.Services) {
	t.Helper()
	require.NoError(t, svcs.Auth.SeedInitialAdmin(AdminName, AdminEmail, AdminPassword))
}

// SignInAdmin seeds the initial administrator and signs them in, so audited
// operations have an attributable user.
func SignInAdmin(t *testing.T, svcs *service.Services) *entity.User {
	t.Helper()
	SeedAdmin(t, svcs)
	user, err := svcs.Auth.Login(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

// Customer creates a roster entry with sane defaults.
func Customer(t *testing.T, svcs *service.Services, name, neighborhood string) *entity.Customer {
	t.Helper()
	customer, err := svcs.Customer.Create(service.CreateCustomerRequest{
		Name:  name,
		Phone: "79 99999-0000",
		Address: entity.Address{
			Street:       "Rua A",
			Number:       "10",
			Neighborhood: neighborhood,
			City:         "Aracaju",
			State:        "SE",
			ZipCode:      "49000-000",
		},
	})
	require.NoError(t, err)
	return customer
}

// Product creates a catalog entry.
func Product(t *testing.T, svcs *service.Services, name string, price float64, stock int) *entity.Product {
	t.Helper()
	product, err := svcs.Product.Create(service.CreateProductRequest{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: "Sabores",
	})
	require.NoError(t, err)
	return product
}
