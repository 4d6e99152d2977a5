package entity

import "time"

// Audit action codes. The log itself stores free text so unknown codes are
// tolerated on read.
const (
	AuditLogin                  = "LOGIN"
	AuditLogout                 = "LOGOUT"
	AuditCreateProduct          = "CREATE_PRODUCT"
	AuditUpdateProduct          = "UPDATE_PRODUCT"
	AuditDeleteProduct          = "DELETE_PRODUCT"
	AuditUpdateStock            = "UPDATE_STOCK"
	AuditCreateCustomer         = "CREATE_CUSTOMER"
	AuditUpdateCustomer         = "UPDATE_CUSTOMER"
	AuditDeleteCustomer         = "DELETE_CUSTOMER"
	AuditUpdateCustomerCategory = "UPDATE_CUSTOMER_CATEGORY"
	AuditCreateSale             = "CREATE_SALE"
	AuditUpdateSale             = "UPDATE_SALE"
	AuditConfirmDelivery        = "CONFIRM_DELIVERY"
	AuditCreateDeliveryRoute    = "CREATE_DELIVERY_ROUTE"
	AuditUpdateDeliveryRoute    = "UPDATE_DELIVERY_ROUTE"
	AuditCreateUser             = "CREATE_USER"
	AuditUpdateUser             = "UPDATE_USER"
	AuditDeleteUser             = "DELETE_USER"
)

// MaxAuditEntries caps the audit log; entries beyond it are dropped oldest
// first on every append.
const MaxAuditEntries = 1000

// AuditLog is an append-only record of who did what. Entries are stored
// newest-first and are never edited.
type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"` // snapshot
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
