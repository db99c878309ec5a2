package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PostModel mirrors the 'posts' table. The recipe is stored as a JSONB document.
type PostModel struct {
	ID        uuid.UUID                           `gorm:"type:uuid;primaryKey"`
	CreatorID uuid.UUID                           `gorm:"type:uuid;not null;index:idx_posts_creator_id"`
	Type      string                              `gorm:"type:varchar(32);not null"`
	Title     string                              `gorm:"type:varchar(200)"`
	Content   string                              `gorm:"type:text"`
	Recipe    datatypes.JSONType[*RecipeDocument] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time                           `gorm:"not null;index:idx_posts_created_at"`
	UpdatedAt time.Time                           `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// RecipeDocument is the stored shape of a recipe, shared by the JSONB column and the
// document store so both drivers persist identical field names.
type RecipeDocument struct {
	Title              string               `json:"title" bson:"title"`
	Description        string               `json:"description,omitempty" bson:"description,omitempty"`
	BrewingMethod      string               `json:"brewingMethod" bson:"brewingMethod"`
	CoffeeBean         string               `json:"coffeeBean" bson:"coffeeBean"`
	GrindSize          string               `json:"grindSize" bson:"grindSize"`
	CoffeeWeight       float64              `json:"coffeeWeight" bson:"coffeeWeight"`
	WaterWeight        float64              `json:"waterWeight" bson:"waterWeight"`
	WaterTemperature   float64              `json:"waterTemperature" bson:"waterTemperature"`
	WaterToCoffeeRatio float64              `json:"waterToCoffeeRatio" bson:"waterToCoffeeRatio"`
	Bloom              *BloomDocument       `json:"bloom,omitempty" bson:"bloom,omitempty"`
	Steps              []RecipeStepDocument `json:"steps,omitempty" bson:"steps,omitempty"`
	TotalTime          float64              `json:"totalTime,omitempty" bson:"totalTime,omitempty"`
	AdditionalNotes    string               `json:"additionalNotes,omitempty" bson:"additionalNotes,omitempty"`
	Images             []string             `json:"images,omitempty" bson:"images,omitempty"`
}

// BloomDocument is the stored shape of a bloom phase.
type BloomDocument struct {
	Duration    float64 `json:"duration" bson:"duration"`
	WaterWeight float64 `json:"waterWeight" bson:"waterWeight"`
}

// RecipeStepDocument is the stored shape of a recipe step.
type RecipeStepDocument struct {
	StepNumber  int     `json:"stepNumber" bson:"stepNumber"`
	Description string  `json:"description" bson:"description"`
	Duration    float64 `json:"duration" bson:"duration"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
}
