package database

import (
	"gorm.io/gorm"

	"github.com/kurrle/espresso-helper/internal/domain"
)

// Field length bounds enforced by the service layer before persistence.
const (
	BeanNameMaxLength    = 100
	BeanOriginMaxLength  = 100
	FlavorNotesMaxLength = 500
	NotesMaxLength       = 500
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// CoffeeBean is a named provenance/roast descriptor owned by one user.
// Active=false marks soft retirement: the bean disappears from selection
// lists but stays referenced by historical shots.
type CoffeeBean struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	User        User
	Name        string            `gorm:"size:100;not null"`
	Origin      string            `gorm:"size:100"`
	RoastLevel  domain.RoastLevel `gorm:"type:varchar(32);not null"`
	FlavorNotes string            `gorm:"size:500"`
	Active      bool              `gorm:"default:true"`
}

// EspressoShot records the measured facts of one extraction. BeanID is a
// soft reference: it may outlive the bean it points to, in which case the
// shot renders with an unknown bean.
type EspressoShot struct {
	gorm.Model
	UserID            uint `gorm:"index"`
	User              User
	BeanID            *uint
	Bean              *CoffeeBean `gorm:"foreignKey:BeanID"`
	GrindSize         float64
	DoseGrams         float64
	YieldGrams        float64
	ExtractionSeconds int
	Notes             string      `gorm:"size:500"`
	Review            *ShotReview `gorm:"foreignKey:ShotID"`
}

// BrewRatio is yield over dose, computed on read. DoseGrams is validated
// positive at creation time.
func (s *EspressoShot) BrewRatio() float64 {
	return s.YieldGrams / s.DoseGrams
}

// BeanName returns the linked bean's name, tolerating dangling references.
func (s *EspressoShot) BeanName() string {
	if s.Bean == nil {
		return "Unknown bean"
	}
	return s.Bean.Name
}

// ShotReview is the taste assessment of one shot. At most one review exists
// per shot; re-reviewing replaces the old row. Ownership is inherited from
// the parent shot, never stored here.
type ShotReview struct {
	gorm.Model
	ShotID       uint                `gorm:"uniqueIndex"`
	TasteProfile domain.TasteProfile `gorm:"type:varchar(32);not null"`
	Notes        string              `gorm:"size:500"`
}
