package models

import "time"

type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// NutritionRecord holds one user's food list for a calendar day. Date is the
// canonical YYYY-MM-DD key and totals always mirror Items at the last write.
type NutritionRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:uidx_nutrition_user_date" json:"userId"`
	Date          string     `gorm:"not null;uniqueIndex:uidx_nutrition_user_date" json:"date"`
	Items         []FoodItem `gorm:"serializer:json" json:"items"`
	TotalCalories float64    `gorm:"not null;default:0" json:"totalCalories"`
	TotalProtein  float64    `gorm:"not null;default:0" json:"totalProtein"`
	TotalFat      float64    `gorm:"not null;default:0" json:"totalFat"`
	TotalCarbs    float64    `gorm:"not null;default:0" json:"totalCarbs"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
