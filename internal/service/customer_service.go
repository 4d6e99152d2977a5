package service

import (
	"fmt"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// CustomerService owns the customer roster and tier classification.
type CustomerService struct {
	repo  *repository.CustomerRepository
	audit *AuditService
}

func NewCustomerService(repo *repository.CustomerRepository, audit *AuditService) *CustomerService {
	return &CustomerService{repo: repo, audit: audit}
}

type CreateCustomerRequest struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Document string         `json:"document"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	WhatsApp string         `json:"whatsapp"`
	Address  entity.Address `json:"address"`
}

func (s *CustomerService) List() ([]entity.Customer, error) {
	return s.repo.List()
}

func (s *CustomerService) Get(id string) (*entity.Customer, error) {
	return s.repo.GetByID(id)
}

func (s *CustomerService) Create(req CreateCustomerRequest) (*entity.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if req.Phone == "" {
		return nil, fmt.Errorf("customer phone is required")
	}
	custType := req.Type
	if custType == "" {
		custType = entity.CustomerTypePF
	}

	customer := &entity.Customer{
		Name:     req.Name,
		Type:     custType,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		WhatsApp: req.WhatsApp,
		Address:  req.Address,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.audit.Record(entity.AuditCreateCustomer, fmt.Sprintf("Criou cliente: %s", customer.Name))
	return customer, nil
}

// Update replaces an existing customer. Unknown ids are a silent no-op and
// leave no audit entry.
func (s *CustomerService) Update(customer entity.Customer) error {
	existing, err := s.repo.GetByID(customer.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if existing == nil {
		return nil
	}
	if err := s.repo.Update(customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	s.audit.Record(entity.AuditUpdateCustomer, fmt.Sprintf("Atualizou cliente: %s", customer.Name))
	return nil
}

// Reclassify recomputes the customer's tier from its accumulated spend.
// Idempotent: nothing is written or audited unless the tier actually moves.
// Must run after every TotalSpent mutation.
func (s *CustomerService) Reclassify(customerID string) error {
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return fmt.Errorf("reclassify customer: %w", err)
	}
	if customer == nil {
		return nil
	}
	oldCategory := customer.Category
	newCategory := entity.ClassifyTier(customer.TotalSpent)
	if oldCategory == newCategory {
		return nil
	}
	customer.Category = newCategory
	if err := s.repo.Update(*customer); err != nil {
		return fmt.Errorf("reclassify customer: %w", err)
	}
	s.audit.Record(entity.AuditUpdateCustomerCategory,
		fmt.Sprintf("%s: %s → %s", customer.Name, oldCategory, newCategory))
	return nil
}

func (s *CustomerService) Delete(id string) error {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if customer != nil {
		s.audit.Record(entity.AuditDeleteCustomer, fmt.Sprintf("Deletou cliente: %s", customer.Name))
	}
	return nil
}
