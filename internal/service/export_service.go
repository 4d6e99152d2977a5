package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// ExportService serializes full-collection snapshots to JSON documents. The
// field names and date formats are the ones the business already shares
// spreadsheets in, so they stay in Portuguese. There is no import path.
type ExportService struct {
	saleRepo     *repository.SaleRepository
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	userRepo     *repository.UserRepository
	auditRepo    *repository.AuditRepository
}

func NewExportService(saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository, customerRepo *repository.CustomerRepository, userRepo *repository.UserRepository, auditRepo *repository.AuditRepository) *ExportService {
	return &ExportService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
	}
}

type SaleRow struct {
	ID      string  `json:"id"`
	Cliente string  `json:"cliente"`
	Data    string  `json:"data"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
	Itens   int     `json:"itens"`
	Potes   int     `json:"potes"`
}

type ProductRow struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Categoria string  `json:"categoria"`
	Preco     float64 `json:"preco"`
	Estoque   int     `json:"estoque"`
	Criado    string  `json:"criado"`
}

type CustomerRow struct {
	ID           string  `json:"id"`
	Nome         string  `json:"nome"`
	Tipo         string  `json:"tipo"`
	Categoria    string  `json:"categoria"`
	TotalGasto   float64 `json:"totalGasto"`
	UltimaCompra string  `json:"ultimaCompra"`
}

type SalesSnapshot struct {
	Vendas   []SaleRow     `json:"vendas"`
	Produtos []ProductRow  `json:"produtos"`
	Clientes []CustomerRow `json:"clientes"`
}

const exportDateLayout = "02/01/2006"

// SalesSnapshot collects sales, products and customers into one document.
func (s *ExportService) SalesSnapshot() (*SalesSnapshot, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("sales snapshot: %w", err)
	}
	products, err := s.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("sales snapshot: %w", err)
	}
	customers, err := s.customerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("sales snapshot: %w", err)
	}

	snapshot := &SalesSnapshot{
		Vendas:   make([]SaleRow, 0, len(sales)),
		Produtos: make([]ProductRow, 0, len(products)),
		Clientes: make([]CustomerRow, 0, len(customers)),
	}
	for _, sale := range sales {
		snapshot.Vendas = append(snapshot.Vendas, SaleRow{
			ID:      sale.ID,
			Cliente: sale.CustomerName,
			Data:    sale.CreatedAt.Format(exportDateLayout),
			Status:  sale.Status,
			Total:   sale.Total,
			Itens:   len(sale.Items),
			Potes:   sale.ItemCount(),
		})
	}
	for _, p := range products {
		snapshot.Produtos = append(snapshot.Produtos, ProductRow{
			ID:        p.ID,
			Nome:      p.Name,
			Categoria: p.Category,
			Preco:     p.Price,
			Estoque:   p.Stock,
			Criado:    p.CreatedAt.Format(exportDateLayout),
		})
	}
	for _, c := range customers {
		last := "Nunca"
		if c.LastPurchase != nil {
			last = c.LastPurchase.Format(exportDateLayout)
		}
		snapshot.Clientes = append(snapshot.Clientes, CustomerRow{
			ID:           c.ID,
			Nome:         c.Name,
			Tipo:         c.Type,
			Categoria:    c.Category,
			TotalGasto:   c.TotalSpent,
			UltimaCompra: last,
		})
	}
	return snapshot, nil
}

// ExportedUser is a User with the credential replaced by a placeholder so a
// backup never carries hashes around.
type ExportedUser struct {
	entity.User
	Password string `json:"password"`
}

type Backup struct {
	Users      []ExportedUser    `json:"users"`
	AuditLogs  []entity.AuditLog `json:"auditLogs"`
	ExportDate time.Time         `json:"exportDate"`
}

// Backup bundles the redacted user roster with the audit log.
func (s *ExportService) Backup() (*Backup, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	logs, err := s.auditRepo.List()
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}

	exported := make([]ExportedUser, 0, len(users))
	for _, u := range users {
		exported = append(exported, ExportedUser{User: u.Sanitized(), Password: "***"})
	}
	return &Backup{Users: exported, AuditLogs: logs, ExportDate: time.Now()}, nil
}

// WriteSalesSnapshot writes the snapshot document into dir and returns the
// file path, named the way the original exports were.
func (s *ExportService) WriteSalesSnapshot(dir string) (string, error) {
	snapshot, err := s.SalesSnapshot()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("relatorio-cocada-nordestina-%s.json", time.Now().Format(dateLayout))
	return writeJSON(filepath.Join(dir, name), snapshot)
}

// WriteBackup writes the redacted backup document into dir.
func (s *ExportService) WriteBackup(dir string) (string, error) {
	backup, err := s.Backup()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("backup-cocada-nordestina-%s.json", time.Now().Format(dateLayout))
	return writeJSON(filepath.Join(dir, name), backup)
}

func writeJSON(path string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
