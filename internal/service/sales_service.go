package service

import (
	"fmt"
	"time"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

// SalesService is the sale lifecycle engine. It enforces the status machine
// (Pendente → Confirmada → Entregue/Cancelada) and the side effects of each
// transition: spend accrual and tier recompute on creation, stock decrement
// and delivery stamping on confirmation.
type SalesService struct {
	store       *store.Store
	saleRepo    *repository.SaleRepository
	productRepo *repository.ProductRepository
	customers   *CustomerService
	audit       *AuditService
}

func NewSalesService(st *store.Store, saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository, customers *CustomerService, audit *AuditService) *SalesService {
	return &SalesService{
		store:       st,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		customers:   customers,
		audit:       audit,
	}
}

type CreateSaleRequest struct {
	CustomerID string           `json:"customerId"`
	Items      []CreateSaleItem `json:"items"`
	Status     string           `json:"status"` // Pendente or Confirmada
	Notes      string           `json:"notes"`
}

type CreateSaleItem struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	IsCustomPrice bool    `json:"isCustomPrice"`
}

func (s *SalesService) List() ([]entity.Sale, error) {
	return s.saleRepo.List()
}

func (s *SalesService) Get(id string) (*entity.Sale, error) {
	return s.saleRepo.GetByID(id)
}

// Create validates and persists a new sale, then immediately accrues the
// customer's lifetime spend and recomputes their tier. Spend is recognized
// at order placement, not at delivery, and is never reversed by a later
// cancellation.
func (s *SalesService) Create(req CreateSaleRequest) (*entity.Sale, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("sale customer is required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("sale needs at least one item")
	}
	if req.Status != entity.SaleStatusPendente && req.Status != entity.SaleStatusConfirmada {
		return nil, fmt.Errorf("initial sale status must be %s or %s", entity.SaleStatusPendente, entity.SaleStatusConfirmada)
	}

	var total float64
	items := make([]entity.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("item price cannot be negative")
		}
		lineTotal := float64(item.Quantity) * item.Price
		total += lineTotal
		items = append(items, entity.SaleItem{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Price:         item.Price,
			Total:         lineTotal,
			IsCustomPrice: item.IsCustomPrice,
		})
	}

	customer, err := s.customers.Get(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	sale := &entity.Sale{
		CustomerID: req.CustomerID,
		Items:      items,
		Total:      total,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if customer != nil {
		sale.CustomerName = customer.Name
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	if customer != nil {
		now := time.Now()
		customer.TotalSpent += total
		customer.LastPurchase = &now
		if err := s.customers.Update(*customer); err != nil {
			return nil, fmt.Errorf("create sale: %w", err)
		}
		if err := s.customers.Reclassify(customer.ID); err != nil {
			return nil, fmt.Errorf("create sale: %w", err)
		}
	}

	s.audit.Record(entity.AuditCreateSale,
		fmt.Sprintf("Nova venda: %s - R$ %.2f", sale.CustomerName, sale.Total))
	return sale, nil
}

// Update replaces a non-terminal sale. Entregue and Cancelada sales are
// frozen, and the Entregue status itself is only reachable through
// ConfirmDelivery so the stock side effects cannot be skipped.
func (s *SalesService) Update(sale entity.Sale) error {
	existing, err := s.saleRepo.GetByID(sale.ID)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if existing == nil {
		return nil
	}
	if existing.Terminal() {
		return fmt.Errorf("sale %s is %s and can no longer change", sale.ID, existing.Status)
	}
	if sale.Status == entity.SaleStatusEntregue {
		return fmt.Errorf("delivery happens through ConfirmDelivery, not a direct status edit")
	}
	if err := s.saleRepo.Update(sale); err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	s.audit.Record(entity.AuditUpdateSale,
		fmt.Sprintf("Atualizou venda: %s - R$ %.2f", sale.CustomerName, sale.Total))
	return nil
}

// ConfirmDelivery marks the sale Entregue, stamps the delivery date and
// debits stock for every item, floored at zero when oversold. The sales and
// products collections are written in one transaction. Calling it again on
// a delivered sale (or an unknown id) is a no-op, so the operation is
// idempotent and stock is never debited twice.
func (s *SalesService) ConfirmDelivery(saleID string) error {
	var delivered *entity.Sale

	err := s.store.Transaction(func(tx *store.Store) error {
		saleRepo := repository.NewSaleRepository(tx)
		productRepo := repository.NewProductRepository(tx)

		sales, err := saleRepo.List()
		if err != nil {
			return err
		}
		var sale *entity.Sale
		for i := range sales {
			if sales[i].ID == saleID {
				sale = &sales[i]
				break
			}
		}
		if sale == nil || sale.Status == entity.SaleStatusEntregue {
			return nil
		}

		now := time.Now()
		sale.Status = entity.SaleStatusEntregue
		sale.DeliveryDate = &now

		products, err := productRepo.List()
		if err != nil {
			return err
		}
		for _, item := range sale.Items {
			for i := range products {
				if products[i].ID == item.ProductID {
					products[i].Stock = max(0, products[i].Stock-item.Quantity)
					products[i].UpdatedAt = now
					break
				}
			}
		}

		if err := saleRepo.SaveAll(sales); err != nil {
			return err
		}
		if err := productRepo.SaveAll(products); err != nil {
			return err
		}
		delivered = sale
		return nil
	})
	if err != nil {
		return fmt.Errorf("confirm delivery: %w", err)
	}

	if delivered != nil {
		s.audit.Record(entity.AuditConfirmDelivery,
			fmt.Sprintf("Entrega confirmada: %s - R$ %.2f", delivered.CustomerName, delivered.Total))
	}
	return nil
}
