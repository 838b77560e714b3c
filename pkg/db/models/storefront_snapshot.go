package models

import "time"

// StorefrontSnapshot stores the serialized cart and order history of one session.
type StorefrontSnapshot struct {
	SessionKey string    `gorm:"column:session_key;type:varchar(128);primaryKey"`
	Version    int       `gorm:"column:version;not null"`
	Payload    string    `gorm:"column:payload;type:text;not null"`
	OrderCount int       `gorm:"column:order_count;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (StorefrontSnapshot) TableName() string {
	return "storefront_snapshots"
}
