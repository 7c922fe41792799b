package model

import "time"

const (
	TableName  = "vip_dining"
	EntityName = "reservation"

	FieldID           = "id"
	FieldCustomerName = "customer_name"
	FieldPhone        = "phone"
	FieldDiningDate   = "dining_date"
	FieldDiningTime   = "dining_time"
	FieldPartySize    = "party_size"
	FieldTableType    = "table_type"
	FieldOccasion     = "occasion"
	FieldCreatedAt    = "created_at"
)

// Reservation is one booked VIP dining slot. Rows are never updated once written.
type Reservation struct {
	ID           int64     `db:"id" generated:"true"`
	CustomerName string    `db:"customer_name"`
	Phone        string    `db:"phone"`
	DiningDate   string    `db:"dining_date"`
	DiningTime   string    `db:"dining_time"`
	PartySize    int       `db:"party_size"`
	TableType    string    `db:"table_type"`
	Occasion     string    `db:"occasion"`
	CreatedAt    time.Time `db:"created_at"`
}
