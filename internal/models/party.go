package models

import "time"

const (
	PartyTypeCustomer = "Customer"
	PartyTypeSupplier = "Supplier"

	DefaultCustomerType  = "Individual"
	DefaultCustomerGroup = "Individual"
	DefaultTerritory     = "All Territories"
	DefaultSupplierType  = "Company"
	DefaultSupplierGroup = "All Supplier Groups"
)

type Customer struct {
	Name          string    `gorm:"primaryKey;size:140" json:"name"`
	CustomerName  string    `gorm:"size:140;not null" json:"customer_name"`
	CustomerType  string    `gorm:"size:40;not null" json:"customer_type"`
	CustomerGroup string    `gorm:"size:140;not null" json:"customer_group"`
	Territory     string    `gorm:"size:140;not null" json:"territory"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Supplier struct {
	Name          string    `gorm:"primaryKey;size:140" json:"name"`
	SupplierName  string    `gorm:"size:140;not null" json:"supplier_name"`
	SupplierType  string    `gorm:"size:40;not null" json:"supplier_type"`
	SupplierGroup string    `gorm:"size:140;not null" json:"supplier_group"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
