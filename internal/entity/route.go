package entity

// Delivery route statuses.
const (
	RouteStatusPlanejada   = "Planejada"
	RouteStatusEmAndamento = "Em Andamento"
	RouteStatusConcluida   = "Concluída"
)

// DeliveryRoute groups a batch of confirmed sales for dispatch. The route
// carries copies of the sales as they looked at planning time; completing a
// route confirms delivery of each contained sale by id.
type DeliveryRoute struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Date          string  `json:"date"`
	Sales         []Sale  `json:"sales"`
	Status        string  `json:"status"`
	TotalValue    float64 `json:"totalValue"`
	EstimatedTime int     `json:"estimatedTime"` // minutes
}
