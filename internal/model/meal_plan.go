package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MealType string

const (
	MealBreakfast      MealType = "breakfast"
	MealMorningSnack   MealType = "morning_snack"
	MealLunch          MealType = "lunch"
	MealAfternoonSnack MealType = "afternoon_snack"
	MealDinner         MealType = "dinner"
	MealEveningSnack   MealType = "evening_snack"
)

type FoodItem struct {
	Name     string   `json:"name" validate:"notblank"`
	Quantity float64  `json:"quantity" validate:"gt=0"`
	Unit     string   `json:"unit" validate:"notblank"`
	Calories *float64 `json:"calories,omitempty" validate:"omitempty,gte=0"`
	ProteinG *float64 `json:"protein_g,omitempty" validate:"omitempty,gte=0"`
	CarbsG   *float64 `json:"carbs_g,omitempty" validate:"omitempty,gte=0"`
	FatG     *float64 `json:"fat_g,omitempty" validate:"omitempty,gte=0"`
}

type MealEntry struct {
	MealType MealType   `json:"meal_type" validate:"oneof=breakfast morning_snack lunch afternoon_snack dinner evening_snack"`
	Time     *string    `json:"time,omitempty" validate:"omitempty,hhmm"`
	Foods    []FoodItem `json:"foods" validate:"dive"`
	Notes    *string    `json:"notes,omitempty"`
}

// Meals is the ordered list of meal entries, stored as a JSON document
type Meals []MealEntry

func (m Meals) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Meals) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Meals{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported meals column type %T", src)
	}
	return json.Unmarshal(data, m)
}

// GormDataType makes AutoMigrate create a text column on every dialect
func (Meals) GormDataType() string {
	return "text"
}

type MealPlan struct {
	Base
	Owned
	PatientID     uuid.UUID       `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	Name          string          `json:"name" db:"name" gorm:"not null"`
	Description   *string         `json:"description" db:"description"`
	StartDate     *datatypes.Date `json:"start_date" db:"start_date"`
	EndDate       *datatypes.Date `json:"end_date" db:"end_date"`
	DailyCalories *float64        `json:"daily_calories" db:"daily_calories"`
	DailyProteinG *float64        `json:"daily_protein_g" db:"daily_protein_g"`
	DailyCarbsG   *float64        `json:"daily_carbs_g" db:"daily_carbs_g"`
	DailyFatG     *float64        `json:"daily_fat_g" db:"daily_fat_g"`
	Meals         Meals           `json:"meals" db:"meals"`
	Notes         *string         `json:"notes" db:"notes"`
	IsActive      bool            `json:"is_active" db:"is_active" gorm:"not null;default:false;index"`
}

type CreateMealPlanRequest struct {
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id"`
	Name          string    `json:"name" db:"name" validate:"notblank,max=200"`
	Description   *string   `json:"description" db:"description"`
	StartDate     *string   `json:"start_date" db:"-"`
	EndDate       *string   `json:"end_date" db:"-"`
	DailyCalories *float64  `json:"daily_calories" db:"daily_calories" validate:"omitempty,gt=0"`
	DailyProteinG *float64  `json:"daily_protein_g" db:"daily_protein_g" validate:"omitempty,gte=0"`
	DailyCarbsG   *float64  `json:"daily_carbs_g" db:"daily_carbs_g" validate:"omitempty,gte=0"`
	DailyFatG     *float64  `json:"daily_fat_g" db:"daily_fat_g" validate:"omitempty,gte=0"`
	Meals         Meals     `json:"meals" db:"meals" validate:"dive"`
	Notes         *string   `json:"notes" db:"notes"`
	IsActive      bool      `json:"is_active" db:"is_active"`
}

type UpdateMealPlanRequest struct {
	Name          Optional[string]  `json:"name" db:"name"`
	Description   Optional[string]  `json:"description" db:"description"`
	StartDate     Optional[string]  `json:"start_date" db:"-"`
	EndDate       Optional[string]  `json:"end_date" db:"-"`
	DailyCalories Optional[float64] `json:"daily_calories" db:"daily_calories"`
	DailyProteinG Optional[float64] `json:"daily_protein_g" db:"daily_protein_g"`
	DailyCarbsG   Optional[float64] `json:"daily_carbs_g" db:"daily_carbs_g"`
	DailyFatG     Optional[float64] `json:"daily_fat_g" db:"daily_fat_g"`
	Meals         Optional[Meals]   `json:"meals" db:"meals"`
	Notes         Optional[string]  `json:"notes" db:"notes"`
	IsActive      Optional[bool]    `json:"is_active" db:"is_active"`
}
