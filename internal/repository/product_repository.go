package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type ProductRepository struct {
	store *store.Store
}

func NewProductRepository(st *store.Store) *ProductRepository {
	return &ProductRepository{store: st}
}

func (r *ProductRepository) List() ([]entity.Product, error) {
	var products []entity.Product
	if err := r.store.Read(store.CollectionProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns nil when the product does not exist.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id and creation timestamps before persisting.
func (r *ProductRepository) Create(p *entity.Product) error {
	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	products, err := r.List()
	if err != nil {
		return err
	}
	products = append(products, *p)
	return r.store.Write(store.CollectionProducts, products)
}

// Update replaces the product by id and refreshes UpdatedAt. Unknown ids are
// a silent no-op.
func (r *ProductRepository) Update(p entity.Product) error {
	products, err := r.List()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			products[i] = p
			return r.store.Write(store.CollectionProducts, products)
		}
	}
	return nil
}

// Delete removes the product by id. Unknown ids are a silent no-op.
func (r *ProductRepository) Delete(id string) error {
	products, err := r.List()
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return r.store.Write(store.CollectionProducts, kept)
}

// SaveAll overwrites the whole collection. Used inside the delivery
// confirmation transaction where several stock levels change at once.
func (r *ProductRepository) SaveAll(products []entity.Product) error {
	return r.store.Write(store.CollectionProducts, products)
}

// Seeded reports whether the products collection has ever been written, so
// first-run seeding does not resurrect deleted catalog entries.
func (r *ProductRepository) Seeded() (bool, error) {
	return r.store.Has(store.CollectionProducts)
}
