package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(st *store.Store) *UserRepository {
	return &UserRepository{store: st}
}

func (r *UserRepository) List() ([]entity.User, error) {
	var users []entity.User
	if err := r.store.Read(store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns nil when the user does not exist.
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindByEmail matches case-insensitively. Returns nil when absent.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// EmailTaken reports whether another user (active or not) already holds the
// email. excludeID skips the user being edited.
func (r *UserRepository) EmailTaken(email, excludeID string) (bool, error) {
	users, err := r.List()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now()

	users, err := r.List()
	if err != nil {
		return err
	}
	users = append(users, *u)
	return r.store.Write(store.CollectionUsers, users)
}

// Update replaces the user by id. Unknown ids are a silent no-op.
func (r *UserRepository) Update(u entity.User) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return r.store.Write(store.CollectionUsers, users)
		}
	}
	return nil
}

// Delete removes the user by id. Unknown ids are a silent no-op.
func (r *UserRepository) Delete(id string) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return r.store.Write(store.CollectionUsers, kept)
}

// Seeded reports whether the users collection has ever been written.
func (r *UserRepository) Seeded() (bool, error) {
	return r.store.Has(store.CollectionUsers)
}

// CurrentUserRepository manages the singleton signed-in-user slot.
type CurrentUserRepository struct {
	store *store.Store
}

func NewCurrentUserRepository(st *store.Store) *CurrentUserRepository {
	return &CurrentUserRepository{store: st}
}

// Get returns nil when nobody is signed in.
func (r *CurrentUserRepository) Get() (*entity.User, error) {
	var users []entity.User
	if err := r.store.Read(store.CollectionCurrentUser, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *CurrentUserRepository) Set(u entity.User) error {
	return r.store.Write(store.CollectionCurrentUser, []entity.User{u})
}

func (r *CurrentUserRepository) Clear() error {
	return r.store.Delete(store.CollectionCurrentUser)
}
