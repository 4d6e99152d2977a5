package entity

import "time"

// Sale statuses. Entregue and Cancelada are terminal: the lifecycle engine
// rejects any further mutation once a sale reaches either.
const (
	SaleStatusPendente   = "Pendente"
	SaleStatusConfirmada = "Confirmada"
	SaleStatusEntregue   = "Entregue"
	SaleStatusCancelada  = "Cancelada"
)

type SaleItem struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"` // snapshot at time of sale
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Total         float64 `json:"total"`
	IsCustomPrice bool    `json:"isCustomPrice,omitempty"`
}

type Sale struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"` // snapshot, not re-derived
	Items        []SaleItem `json:"items"`
	Total        float64    `json:"total"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Terminal reports whether the sale can no longer be mutated.
func (s *Sale) Terminal() bool {
	return s.Status == SaleStatusEntregue || s.Status == SaleStatusCancelada
}

// ItemCount sums the quantities across all items (jars in the order).
func (s *Sale) ItemCount() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
