package service

import (
	"go.uber.org/zap"

	"github.com/rukioi/CocadaNordestina/internal/repository"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

// Services bundles every domain service over a shared store.
type Services struct {
	Audit    *AuditService
	Auth     *AuthService
	Product  *ProductService
	Customer *CustomerService
	Sales    *SalesService
	Delivery *DeliveryService
	Metrics  *MetricsService
	Report   *ReportService
	Export   *ExportService
}

func NewServices(st *store.Store, repos *repository.Repositories, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}

	audit := NewAuditService(repos.Audit, repos.CurrentUser, log)
	customers := NewCustomerService(repos.Customer, audit)
	sales := NewSalesService(st, repos.Sale, repos.Product, customers, audit)

	return &Services{
		Audit:    audit,
		Auth:     NewAuthService(repos.User, repos.CurrentUser, audit),
		Product:  NewProductService(repos.Product, audit),
		Customer: customers,
		Sales:    sales,
		Delivery: NewDeliveryService(repos.Route, repos.Sale, repos.Customer, sales, audit),
		Metrics:  NewMetricsService(repos.Sale, repos.Product, repos.Customer),
		Report:   NewReportService(repos.Sale, repos.Product),
		Export:   NewExportService(repos.Sale, repos.Product, repos.Customer, repos.User, repos.Audit),
	}
}
