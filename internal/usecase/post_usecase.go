package usecase

import (
	"context"

	"brewshare/internal/domain/entity"

	"github.com/google/uuid"
)

// PostUsecase defines the interface for post-related business operations.
type PostUsecase interface {
	CreatePost(ctx context.Context, creatorID uuid.UUID, input *CreatePostInput) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*entity.Post, error)
	ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Post, error)
	UpdatePost(ctx context.Context, callerID, postID uuid.UUID, input *UpdatePostInput) (*entity.Post, error)
}

// --- Input DTOs ---

// CreatePostInput defines the data required to create a post.
type CreatePostInput struct {
	Type    entity.PostType `json:"type" validate:"required,posttype"`
	Title   string          `json:"title" validate:"max=200"`
	Content string          `json:"content"`
	Recipe  *RecipeInput    `json:"recipe,omitempty" validate:"required_if=Type Recipe"`
}

// RecipeInput is a complete recipe as submitted on post creation.
// WaterToCoffeeRatio is derived and therefore not accepted here.
type RecipeInput struct {
	Title            string               `json:"title" validate:"required"`
	Description      string               `json:"description"`
	BrewingMethod    entity.BrewingMethod `json:"brewingMethod" validate:"required,brewmethod"`
	CoffeeBean       string               `json:"coffeeBean" validate:"required"`
	GrindSize        string               `json:"grindSize" validate:"required"`
	CoffeeWeight     float64              `json:"coffeeWeight" validate:"gt=0"`
	WaterWeight      float64              `json:"waterWeight" validate:"gt=0"`
	WaterTemperature *float64             `json:"waterTemperature,omitempty" validate:"omitempty,gt=0"`
	Bloom            *BloomInput          `json:"bloom,omitempty"`
	Steps            []RecipeStepInput    `json:"steps,omitempty" validate:"omitempty,dive"`
	TotalTime        float64              `json:"totalTime" validate:"gte=0"`
	AdditionalNotes  string               `json:"additionalNotes"`
	Images           []string             `json:"images,omitempty"`
}

// BloomInput describes the bloom phase of a recipe.
type BloomInput struct {
	Duration    float64 `json:"duration" validate:"gte=0"`
	WaterWeight float64 `json:"waterWeight" validate:"gte=0"`
}

// RecipeStepInput is one ordered brewing step.
type RecipeStepInput struct {
	StepNumber  int     `json:"stepNumber" validate:"gte=0"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	Image       string  `json:"image"`
}

// ToEntity converts the input into a recipe with derived fields filled in.
func (in *RecipeInput) ToEntity() *entity.Recipe {
	if in == nil {
		return nil
	}

	recipe := &entity.Recipe{
		Title:            in.Title,
		Description:      in.Description,
		BrewingMethod:    in.BrewingMethod,
		CoffeeBean:       in.CoffeeBean,
		GrindSize:        in.GrindSize,
		CoffeeWeight:     in.CoffeeWeight,
		WaterWeight:      in.WaterWeight,
		WaterTemperature: entity.DefaultWaterTemperature,
		TotalTime:        in.TotalTime,
		AdditionalNotes:  in.AdditionalNotes,
		Images:           append([]string(nil), in.Images...),
	}
	if in.WaterTemperature != nil {
		recipe.WaterTemperature = *in.WaterTemperature
	}
	if in.Bloom != nil {
		recipe.Bloom = &entity.Bloom{Duration: in.Bloom.Duration, WaterWeight: in.Bloom.WaterWeight}
	}
	for _, step := range in.Steps {
		recipe.Steps = append(recipe.Steps, entity.RecipeStep(step))
	}
	recipe.RecomputeRatio()

	return recipe
}

// UpdatePostInput carries the fields to change on a post. Nil fields are left untouched.
type UpdatePostInput struct {
	Type    *entity.PostType `json:"type,omitempty" validate:"omitempty,posttype"`
	Title   *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string          `json:"content,omitempty"`
	Recipe  *RecipePatch     `json:"recipe,omitempty"`
}

// RecipePatch carries independently settable recipe leaves.
type RecipePatch struct {
	Title              *string               `json:"title,omitempty" validate:"omitempty,min=1"`
	Description        *string               `json:"description,omitempty"`
	BrewingMethod      *entity.BrewingMethod `json:"brewingMethod,omitempty" validate:"omitempty,brewmethod"`
	CoffeeBean         *string               `json:"coffeeBean,omitempty" validate:"omitempty,min=1"`
	GrindSize          *string               `json:"grindSize,omitempty" validate:"omitempty,min=1"`
	CoffeeWeight       *float64              `json:"coffeeWeight,omitempty" validate:"omitempty,gt=0"`
	WaterWeight        *float64              `json:"waterWeight,omitempty" validate:"omitempty,gt=0"`
	WaterTemperature   *float64              `json:"waterTemperature,omitempty" validate:"omitempty,gt=0"`
	WaterToCoffeeRatio *float64              `json:"waterToCoffeeRatio,omitempty" validate:"omitempty,gte=0"`
	Bloom              *BloomPatch           `json:"bloom,omitempty"`
	Steps              *[]RecipeStepInput    `json:"steps,omitempty" validate:"omitempty,dive"`
	TotalTime          *float64              `json:"totalTime,omitempty" validate:"omitempty,gte=0"`
	AdditionalNotes    *string               `json:"additionalNotes,omitempty"`
	Images             *[]string             `json:"images,omitempty"`
}

// BloomPatch carries independently settable bloom leaves.
type BloomPatch struct {
	Duration    *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	WaterWeight *float64 `json:"waterWeight,omitempty" validate:"omitempty,gte=0"`
}

