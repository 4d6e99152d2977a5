// Package store persists the system's collections. Each logical collection
// is one row holding a JSON-serialized array, read and written whole, which
// keeps the data format identical to the export/backup documents. Last write
// wins; there is no locking across processes.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Collection names. CollectionCurrentUser is a singleton slot, not an array.
const (
	CollectionProducts       = "cocada_products"
	CollectionCustomers      = "cocada_customers"
	CollectionSales          = "cocada_sales"
	CollectionDeliveryRoutes = "cocada_delivery_routes"
	CollectionUsers          = "cocada_users"
	CollectionAuditLogs      = "cocada_audit_logs"
	CollectionCurrentUser    = "cocada_current_user"
)

type collectionRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (collectionRow) TableName() string {
	return "collections"
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (creating if needed) the store at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	return newStore(db, log)
}

// OpenMemory opens a throwaway in-memory store, used by tests and dry runs.
func OpenMemory(log *zap.Logger) (*Store, error) {
	return Open(":memory:", log)
}

func newStore(db *gorm.DB, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate collections table: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Read loads a whole collection into out. A missing or unparseable row is
// treated as an empty collection: the store fails closed rather than
// propagating corruption to callers. out must be a pointer.
func (s *Store) Read(name string, out any) error {
	var row collectionRow
	err := s.db.Where("name = ?", name).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	if len(row.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(row.Data, out); err != nil {
		s.log.Warn("collection unparseable, treating as empty",
			zap.String("collection", name),
			zap.Error(err),
		)
		return nil
	}
	return nil
}

// Write replaces a whole collection with v.
func (s *Store) Write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", name, err)
	}
	row := collectionRow{Name: name, Data: data, UpdatedAt: time.Now()}
	err = s.db.Save(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}

// Delete drops a collection row entirely. Missing rows are a no-op.
func (s *Store) Delete(name string) error {
	err := s.db.Where("name = ?", name).Delete(&collectionRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", name, err)
	}
	return nil
}

// Has reports whether the collection row exists, regardless of content.
func (s *Store) Has(name string) (bool, error) {
	var count int64
	err := s.db.Model(&collectionRow{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check collection %s: %w", name, err)
	}
	return count > 0, nil
}

// Transaction runs fn against a store bound to a database transaction, so
// multi-collection updates (delivery confirmation touches sales and
// products) commit or roll back together.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log})
	})
}
