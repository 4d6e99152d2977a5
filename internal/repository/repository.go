package repository

import (
	"github.com/rukioi/CocadaNordestina/internal/store"
)

// Repositories bundles one repository per collection over a shared store.
type Repositories struct {
	Product     *ProductRepository
	Customer    *CustomerRepository
	Sale        *SaleRepository
	Route       *RouteRepository
	User        *UserRepository
	CurrentUser *CurrentUserRepository
	Audit       *AuditRepository
}

func NewRepositories(st *store.Store) *Repositories {
	return &Repositories{
		Product:     NewProductRepository(st),
		Customer:    NewCustomerRepository(st),
		Sale:        NewSaleRepository(st),
		Route:       NewRouteRepository(st),
		User:        NewUserRepository(st),
		CurrentUser: NewCurrentUserRepository(st),
		Audit:       NewAuditRepository(st),
	}
}
