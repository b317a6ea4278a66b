package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AdCondition is the physical condition of a listed item.
type AdCondition string

const (
	ConditionNew     AdCondition = "new"
	ConditionLikeNew AdCondition = "like-new"
	ConditionGood    AdCondition = "good"
	ConditionFair    AdCondition = "fair"
	ConditionPoor    AdCondition = "poor"
)

// ValidCondition reports whether c is one of the recognized conditions.
func ValidCondition(c AdCondition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// AdSort enumerates the supported result orderings for ad queries.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// Ad represents a classified listing. Every ad carries at least one image
// URL and a non-negative price; the owner reference is set at creation and
// never changes.
type Ad struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Price       float64        `gorm:"not null;index" json:"price"`
	Category    string         `gorm:"not null;index" json:"category"`
	Condition   AdCondition    `gorm:"type:varchar(20);not null" json:"condition"`
	Location    string         `gorm:"not null" json:"location"`
	Images      pq.StringArray `gorm:"type:text[];not null" json:"images"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Ad) TableName() string {
	return "ads"
}
