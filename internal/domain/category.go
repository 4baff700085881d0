package domain

// Category Model
type Category struct {
	ID       uint   `gorm:"primaryKey"`                                           // Primary key
	UserID   uint   `gorm:"not null;uniqueIndex:idx_category_user_name"`          // Owner
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_category_user_name"` // Unique per user
	IsIncome bool   `gorm:"not null;default:false"`                               // true = income, false = expense
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`        // Owner relation
}
