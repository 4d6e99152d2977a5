package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// ReportService renders the daily summary text that gets pasted into the
// business's WhatsApp group. Free text for humans, not a machine format.
type ReportService struct {
	saleRepo    *repository.SaleRepository
	productRepo *repository.ProductRepository
}

func NewReportService(saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo, productRepo: productRepo}
}

// WhatsAppReport summarizes today's delivered sales: jars remaining and
// sold, money taken, and a per-sale breakdown.
func (s *ReportService) WhatsAppReport() (string, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return "", fmt.Errorf("whatsapp report: %w", err)
	}
	products, err := s.productRepo.List()
	if err != nil {
		return "", fmt.Errorf("whatsapp report: %w", err)
	}

	now := time.Now()
	today := now.Format(dateLayout)

	var todaySales []entity.Sale
	for _, sale := range sales {
		if sale.Status == entity.SaleStatusEntregue && sale.CreatedAt.Format(dateLayout) == today {
			todaySales = append(todaySales, sale)
		}
	}

	var totalSold int
	var totalRevenue float64
	for _, sale := range todaySales {
		totalSold += sale.ItemCount()
		totalRevenue += sale.Total
	}
	var totalStock int
	for _, p := range products {
		totalStock += p.Stock
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Relatório de Vendas - Cocadas (%s)\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "🍯 Total de Potes Restantes: %d\n", totalStock)
	fmt.Fprintf(&b, "🍯 Total de Potes Vendidos: %d\n", totalSold)
	fmt.Fprintf(&b, "💰 Total Arrecadado: R$%s\n", brl(totalRevenue))
	b.WriteString("=======================\n")
	b.WriteString("🧾 Detalhamento das Vendas:\n")

	for _, sale := range todaySales {
		fmt.Fprintf(&b, "%s %s\n", customerEmoji(sale.CustomerName), sale.CustomerName)
		fmt.Fprintf(&b, "%d potes\n", sale.ItemCount())
		fmt.Fprintf(&b, "💵 Valor: R$ %s\n\n", brl(sale.Total))
	}

	return b.String(), nil
}

// brl renders a value with the Brazilian decimal comma.
func brl(value float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", value), ".", ",", 1)
}

func customerEmoji(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "dona") || strings.Contains(lower, "maria") {
		return "👩‍🦰"
	}
	return "🧑"
}
