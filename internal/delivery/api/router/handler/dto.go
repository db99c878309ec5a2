package handler

import (
	"time"

	"brewshare/internal/domain/entity"
	"brewshare/internal/usecase"

	"github.com/google/uuid"
)

// AccountResponse is the public view of an account. It never carries the password hash.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User      *AccountResponse `json:"user"`
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"` // seconds
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID        uuid.UUID       `json:"id"`
	Creator   uuid.UUID       `json:"creator"`
	Type      entity.PostType `json:"type"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Recipe    *RecipeResponse `json:"recipe,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// RecipeResponse mirrors entity.Recipe with camelCase JSON names.
type RecipeResponse struct {
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	BrewingMethod      entity.BrewingMethod `json:"brewingMethod"`
	CoffeeBean         string               `json:"coffeeBean"`
	GrindSize          string               `json:"grindSize"`
	CoffeeWeight       float64              `json:"coffeeWeight"`
	WaterWeight        float64              `json:"waterWeight"`
	WaterTemperature   float64              `json:"waterTemperature"`
	WaterToCoffeeRatio float64              `json:"waterToCoffeeRatio"`
	Bloom              *BloomResponse       `json:"bloom,omitempty"`
	Steps              []RecipeStepResponse `json:"steps"`
	TotalTime          float64              `json:"totalTime"`
	AdditionalNotes    string               `json:"additionalNotes"`
	Images             []string             `json:"images"`
}

// BloomResponse describes the bloom phase.
type BloomResponse struct {
	Duration    float64 `json:"duration"`
	WaterWeight float64 `json:"waterWeight"`
}

// RecipeStepResponse is one ordered brewing step.
type RecipeStepResponse struct {
	StepNumber  int     `json:"stepNumber"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Image       string  `json:"image"`
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		User:      newAccountResponse(output.Account),
		Token:     output.Token,
		ExpiresIn: int64(output.ExpiresIn / time.Second),
	}
}

func newAccountResponse(account *entity.Account) *AccountResponse {
	if account == nil {
		return nil
	}

	return &AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}

func newPostResponse(post *entity.Post) *PostResponse {
	if post == nil {
		return nil
	}

	return &PostResponse{
		ID:        post.ID,
		Creator:   post.CreatorID,
		Type:      post.Type,
		Title:     post.Title,
		Content:   post.Content,
		Recipe:    newRecipeResponse(post.Recipe),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func newPostResponses(posts []*entity.Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, newPostResponse(post))
	}

	return out
}

func newRecipeResponse(recipe *entity.Recipe) *RecipeResponse {
	if recipe == nil {
		return nil
	}

	out := &RecipeResponse{
		Title:              recipe.Title,
		Description:        recipe.Description,
		BrewingMethod:      recipe.BrewingMethod,
		CoffeeBean:         recipe.CoffeeBean,
		GrindSize:          recipe.GrindSize,
		CoffeeWeight:       recipe.CoffeeWeight,
		WaterWeight:        recipe.WaterWeight,
		WaterTemperature:   recipe.WaterTemperature,
		WaterToCoffeeRatio: recipe.WaterToCoffeeRatio,
		Steps:              make([]RecipeStepResponse, 0, len(recipe.Steps)),
		TotalTime:          recipe.TotalTime,
		AdditionalNotes:    recipe.AdditionalNotes,
		Images:             append([]string{}, recipe.Images...),
	}
	if recipe.Bloom != nil {
		out.Bloom = &BloomResponse{Duration: recipe.Bloom.Duration, WaterWeight: recipe.Bloom.WaterWeight}
	}
	for _, step := range recipe.Steps {
		out.Steps = append(out.Steps, RecipeStepResponse(step))
	}

	return out
}
