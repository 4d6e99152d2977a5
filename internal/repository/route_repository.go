package repository

import (
	"github.com/google/uuid"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

type RouteRepository struct {
	store *store.Store
}

func NewRouteRepository(st *store.Store) *RouteRepository {
	return &RouteRepository{store: st}
}

func (r *RouteRepository) List() ([]entity.DeliveryRoute, error) {
	var routes []entity.DeliveryRoute
	if err := r.store.Read(store.CollectionDeliveryRoutes, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// GetByID returns nil when the route does not exist.
func (r *RouteRepository) GetByID(id string) (*entity.DeliveryRoute, error) {
	routes, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range routes {
		if routes[i].ID == id {
			return &routes[i], nil
		}
	}
	return nil, nil
}

func (r *RouteRepository) Create(route *entity.DeliveryRoute) error {
	route.ID = uuid.New().String()

	routes, err := r.List()
	if err != nil {
		return err
	}
	routes = append(routes, *route)
	return r.store.Write(store.CollectionDeliveryRoutes, routes)
}

// Update replaces the route by id. Unknown ids are a silent no-op.
func (r *RouteRepository) Update(route entity.DeliveryRoute) error {
	routes, err := r.List()
	if err != nil {
		return err
	}
	for i := range routes {
		if routes[i].ID == route.ID {
			routes[i] = route
			return r.store.Write(store.CollectionDeliveryRoutes, routes)
		}
	}
	return nil
}
