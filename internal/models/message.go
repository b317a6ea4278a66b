package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a single buyer/seller message scoped to one ad. There is no
// separate thread entity: a thread is identified by the unordered participant
// pair plus the ad. PairLowID/PairHighID hold the normalized pair so the
// "either direction" thread query is a single indexed equality lookup.
type Message struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SenderID   uint       `gorm:"not null;index" json:"senderId"`
	ReceiverID uint       `gorm:"not null;index" json:"receiverId"`
	AdID       uint       `gorm:"not null;index;index:idx_messages_thread" json:"adId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	IsRead     bool       `gorm:"default:false" json:"read"`
	ReadAt     *time.Time `json:"readAt,omitempty"`

	PairLowID  uint `gorm:"not null;index:idx_messages_thread" json:"-"`
	PairHighID uint `gorm:"not null;index:idx_messages_thread" json:"-"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
	Ad       *Ad   `gorm:"foreignKey:AdID" json:"ad,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate normalizes the participant pair into the thread key columns.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	m.PairLowID, m.PairHighID = NormalizePair(m.SenderID, m.ReceiverID)
	return nil
}

// NormalizePair orders two participant IDs as (low, high).
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
