package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopClosedDay marks a date the shop did not open. PaySalary decides whether
// staff are paid for the day despite having no attendance.
type ShopClosedDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_closed_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_shop_closed_date"`
	PaySalary bool      `gorm:"not null;default:false"`
	Reason    string
	Synced    bool `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}
