package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(st *store.Store) *CustomerRepository {
	return &CustomerRepository{store: st}
}

func (r *CustomerRepository) List() ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := r.store.Read(store.CollectionCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByID returns nil when the customer does not exist.
func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	customers, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id and creation timestamp. New customers always
// start in the Novo tier with nothing spent.
func (r *CustomerRepository) Create(c *entity.Customer) error {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now()
	c.Category = entity.TierNovo
	c.TotalSpent = 0

	customers, err := r.List()
	if err != nil {
		return err
	}
	customers = append(customers, *c)
	return r.store.Write(store.CollectionCustomers, customers)
}

// Update replaces the customer by id. Unknown ids are a silent no-op.
func (r *CustomerRepository) Update(c entity.Customer) error {
	customers, err := r.List()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == c.ID {
			customers[i] = c
			return r.store.Write(store.CollectionCustomers, customers)
		}
	}
	return nil
}

// Delete removes the customer by id. Unknown ids are a silent no-op. Sales
// keep their name snapshots, so history survives the deletion.
func (r *CustomerRepository) Delete(id string) error {
	customers, err := r.List()
	if err != nil {
		return err
	}
	kept := customers[:0]
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return r.store.Write(store.CollectionCustomers, kept)
}
