package service

import (
	"fmt"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// ProductService owns the product catalog and stock levels.
type ProductService struct {
	repo  *repository.ProductRepository
	audit *AuditService
}

func NewProductService(repo *repository.ProductRepository, audit *AuditService) *ProductService {
	return &ProductService{repo: repo, audit: audit}
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (s *ProductService) List() ([]entity.Product, error) {
	return s.repo.List()
}

func (s *ProductService) Get(id string) (*entity.Product, error) {
	return s.repo.GetByID(id)
}

func (s *ProductService) Create(req CreateProductRequest) (*entity.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("product price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("product stock cannot be negative")
	}

	product := &entity.Product{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.audit.Record(entity.AuditCreateProduct, fmt.Sprintf("Criou produto: %s", product.Name))
	return product, nil
}

// Update replaces an existing product. Unknown ids are a silent no-op and
// leave no audit entry.
func (s *ProductService) Update(product entity.Product) error {
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if existing == nil {
		return nil
	}
	if err := s.repo.Update(product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	s.audit.Record(entity.AuditUpdateProduct, fmt.Sprintf("Atualizou produto: %s", product.Name))
	return nil
}

// UpdateStock sets an absolute stock count. Negative counts are rejected
// before any mutation; unknown products are a silent no-op.
func (s *ProductService) UpdateStock(productID string, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if product == nil {
		return nil
	}
	oldStock := product.Stock
	product.Stock = newStock
	if err := s.repo.Update(*product); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	s.audit.Record(entity.AuditUpdateStock,
		fmt.Sprintf("%s: %d → %d potes", product.Name, oldStock, newStock))
	return nil
}

func (s *ProductService) Delete(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if product != nil {
		s.audit.Record(entity.AuditDeleteProduct, fmt.Sprintf("Deletou produto: %s", product.Name))
	}
	return nil
}

// SeedInitialCatalog writes the starter catalog on first run only. The
// Seeded check keeps deleted products from coming back on restart.
func (s *ProductService) SeedInitialCatalog() error {
	seeded, err := s.repo.Seeded()
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if seeded {
		return nil
	}

	initial := []CreateProductRequest{
		{Name: "Cocada Tradicional", Price: 13.00, Stock: 112, Category: "Tradicional", Description: "Cocada tradicional nordestina"},
		{Name: "Cacau", Price: 13.00, Stock: 0, Category: "Sabores", Description: "Cocada sabor cacau"},
		{Name: "Maracujá", Price: 13.00, Stock: 0, Category: "Sabores", Description: "Cocada sabor maracujá"},
		{Name: "Doce de leite", Price: 13.00, Stock: 0, Category: "Sabores", Description: "Cocada sabor doce de leite"},
		{Name: "Cocada Cremosa", Price: 13.00, Stock: 0, Category: "Cremosa", Description: "Cocada cremosa nordestina"},
	}
	for _, req := range initial {
		product := &entity.Product{
			Name:        req.Name,
			Price:       req.Price,
			Stock:       req.Stock,
			Category:    req.Category,
			Description: req.Description,
		}
		if err := s.repo.Create(product); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return nil
}
