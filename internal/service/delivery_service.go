package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// Aracaju neighborhoods grouped by region, used to order route stops.
var aracajuNeighborhoods = map[string][]string{
	"Centro":     {"Centro", "São José", "Getémio Vargas", "Siqueira Campos"},
	"Zona Sul":   {"Atalaia", "Coroa do Meio", "Farolândia", "Grageru", "Jardins", "Luzia", "Ponta Verde", "São Conrado", "Treze de Julho"},
	"Zona Norte": {"18 do Forte", "América", "Cirurgia", "Cidade Nova", "Industrial", "Lamarão", "Novo Paraíso", "Palestina", "Santos Dumont"},
	"Zona Oeste": {"Aeroporto", "Capucho", "Jabotiana", "Jardim Centenário", "Olaria", "Porto Dantas", "Santa Maria", "Soledade"},
}

// Visit order: city center first, then outward.
var regionOrder = []string{"Centro", "Zona Sul", "Zona Norte", "Zona Oeste", "Outros"}

// DeliveryService batches confirmed sales into dispatch routes. Completing a
// route confirms delivery of every sale in it through the lifecycle engine.
type DeliveryService struct {
	routeRepo    *repository.RouteRepository
	saleRepo     *repository.SaleRepository
	customerRepo *repository.CustomerRepository
	sales        *SalesService
	audit        *AuditService
}

func NewDeliveryService(routeRepo *repository.RouteRepository, saleRepo *repository.SaleRepository, customerRepo *repository.CustomerRepository, sales *SalesService, audit *AuditService) *DeliveryService {
	return &DeliveryService{
		routeRepo:    routeRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		sales:        sales,
		audit:        audit,
	}
}

func (s *DeliveryService) ListRoutes() ([]entity.DeliveryRoute, error) {
	return s.routeRepo.List()
}

// PendingSales returns the sales eligible for routing (status Confirmada).
func (s *DeliveryService) PendingSales() ([]entity.Sale, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return nil, err
	}
	pending := sales[:0:0]
	for _, sale := range sales {
		if sale.Status == entity.SaleStatusConfirmada {
			pending = append(pending, sale)
		}
	}
	return pending, nil
}

type CreateRouteRequest struct {
	Name    string   `json:"name"`
	Date    string   `json:"date"`
	SaleIDs []string `json:"saleIds"`
}

// CreateRoute plans a route over the selected sales: stops are ordered by
// region then neighborhood, and the time estimate is 15 min per stop plus
// 10 min per distinct region plus a 30 min base.
func (s *DeliveryService) CreateRoute(req CreateRouteRequest) (*entity.DeliveryRoute, error) {
	if req.Name == "" || req.Date == "" {
		return nil, fmt.Errorf("route name and date are required")
	}
	if len(req.SaleIDs) == 0 {
		return nil, fmt.Errorf("route needs at least one sale")
	}

	selected, err := s.selectedSales(req.SaleIDs)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	customers, err := s.customerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	ordered := orderByRegion(selected, customers)

	var totalValue float64
	regions := map[string]bool{}
	for _, sale := range ordered {
		totalValue += sale.Total
		regions[regionFor(neighborhoodOf(sale, customers))] = true
	}
	estimated := len(ordered)*15 + len(regions)*10 + 30

	route := &entity.DeliveryRoute{
		Name:          req.Name,
		Date:          req.Date,
		Sales:         ordered,
		Status:        entity.RouteStatusPlanejada,
		TotalValue:    totalValue,
		EstimatedTime: estimated,
	}
	if err := s.routeRepo.Create(route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	s.audit.Record(entity.AuditCreateDeliveryRoute, fmt.Sprintf("Criou rota: %s", route.Name))
	return route, nil
}

// UpdateRoute replaces an existing route. Unknown ids are a silent no-op and
// leave no audit entry.
func (s *DeliveryService) UpdateRoute(route entity.DeliveryRoute) error {
	existing, err := s.routeRepo.GetByID(route.ID)
	if err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	if existing == nil {
		return nil
	}
	if err := s.routeRepo.Update(route); err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	s.audit.Record(entity.AuditUpdateDeliveryRoute, fmt.Sprintf("Atualizou rota: %s", route.Name))
	return nil
}

// CompleteRoute confirms delivery of every sale on the route, then marks the
// route Concluída. Sales already delivered are skipped by the engine's
// idempotent confirmation, so re-completing a route is harmless.
func (s *DeliveryService) CompleteRoute(routeID string) error {
	route, err := s.routeRepo.GetByID(routeID)
	if err != nil {
		return fmt.Errorf("complete route: %w", err)
	}
	if route == nil {
		return nil
	}
	for _, sale := range route.Sales {
		if err := s.sales.ConfirmDelivery(sale.ID); err != nil {
			return fmt.Errorf("complete route: %w", err)
		}
	}
	route.Status = entity.RouteStatusConcluida
	if err := s.routeRepo.Update(*route); err != nil {
		return fmt.Errorf("complete route: %w", err)
	}
	return nil
}

func (s *DeliveryService) selectedSales(ids []string) ([]entity.Sale, error) {
	all, err := s.saleRepo.List()
	if err != nil {
		return nil, err
	}
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var selected []entity.Sale
	for _, sale := range all {
		if wanted[sale.ID] {
			selected = append(selected, sale)
		}
	}
	return selected, nil
}

func neighborhoodOf(sale entity.Sale, customers []entity.Customer) string {
	for _, c := range customers {
		if c.Name == sale.CustomerName {
			return c.Address.Neighborhood
		}
	}
	return ""
}

// regionFor matches loosely in both directions so partial form input like
// "Farolandia Norte" still lands in the right region.
func regionFor(neighborhood string) string {
	if neighborhood == "" {
		return "Outros"
	}
	lower := strings.ToLower(neighborhood)
	for _, region := range regionOrder {
		for _, n := range aracajuNeighborhoods[region] {
			nl := strings.ToLower(n)
			if strings.Contains(nl, lower) || strings.Contains(lower, nl) {
				return region
			}
		}
	}
	return "Outros"
}

func orderByRegion(sales []entity.Sale, customers []entity.Customer) []entity.Sale {
	byRegion := map[string][]entity.Sale{}
	for _, sale := range sales {
		region := regionFor(neighborhoodOf(sale, customers))
		byRegion[region] = append(byRegion[region], sale)
	}

	var ordered []entity.Sale
	for _, region := range regionOrder {
		group := byRegion[region]
		sort.SliceStable(group, func(i, j int) bool {
			return neighborhoodOf(group[i], customers) < neighborhoodOf(group[j], customers)
		})
		ordered = append(ordered, group...)
	}
	return ordered
}
