package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type SaleRepository struct {
	store *store.Store
}

func NewSaleRepository(st *store.Store) *SaleRepository {
	return &SaleRepository{store: st}
}

func (r *SaleRepository) List() ([]entity.Sale, error) {
	var sales []entity.Sale
	if err := r.store.Read(store.CollectionSales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetByID returns nil when the sale does not exist.
func (r *SaleRepository) GetByID(id string) (*entity.Sale, error) {
	sales, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ID == id {
			return &sales[i], nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id and creation timestamp before persisting.
func (r *SaleRepository) Create(s *entity.Sale) error {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now()

	sales, err := r.List()
	if err != nil {
		return err
	}
	sales = append(sales, *s)
	return r.store.Write(store.CollectionSales, sales)
}

// Update replaces the sale by id. Unknown ids are a silent no-op.
func (r *SaleRepository) Update(s entity.Sale) error {
	sales, err := r.List()
	if err != nil {
		return err
	}
	for i := range sales {
		if sales[i].ID == s.ID {
			sales[i] = s
			return r.store.Write(store.CollectionSales, sales)
		}
	}
	return nil
}

// SaveAll overwrites the whole collection inside the delivery confirmation
// transaction.
func (r *SaleRepository) SaveAll(sales []entity.Sale) error {
	return r.store.Write(store.CollectionSales, sales)
}
