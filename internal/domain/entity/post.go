package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PostType is the closed set of post kinds.
type PostType string

const (
	PostTypeRecipe       PostType = "Recipe"
	PostTypeCoffeeReview PostType = "Coffee review"
	PostTypeCafeReview   PostType = "Cafe review"
)

// String returns the string representation of the PostType.
func (t PostType) String() string {
	return string(t)
}

// IsValid checks if the PostType is one of the known values.
func (t PostType) IsValid() bool {
	switch t {
	case PostTypeRecipe, PostTypeCoffeeReview, PostTypeCafeReview:
		return true
	default:
		return false
	}
}

// BrewingMethod is the closed set of supported brewing methods.
type BrewingMethod string

const (
	BrewingMethodPourOver    BrewingMethod = "Pour Over"
	BrewingMethodAeropress   BrewingMethod = "Aeropress"
	BrewingMethodFrenchPress BrewingMethod = "French Press"
	BrewingMethodEspresso    BrewingMethod = "Espresso"
	BrewingMethodColdBrew    BrewingMethod = "Cold Brew"
	BrewingMethodSiphon      BrewingMethod = "Siphon"
)

// String returns the string representation of the BrewingMethod.
func (m BrewingMethod) String() string {
	return string(m)
}

// IsValid checks if the BrewingMethod is one of the known values.
func (m BrewingMethod) IsValid() bool {
	switch m {
	case BrewingMethodPourOver, BrewingMethodAeropress, BrewingMethodFrenchPress,
		BrewingMethodEspresso, BrewingMethodColdBrew, BrewingMethodSiphon:
		return true
	default:
		return false
	}
}

// DefaultWaterTemperature is used when a recipe does not specify one (degrees Celsius).
const DefaultWaterTemperature = 100.0

// Post is a piece of content owned by exactly one account.
type Post struct {
	ID        uuid.UUID
	CreatorID uuid.UUID // Ownership anchor. Set at creation and never changed.
	Type      PostType
	Title     string
	Content   string
	Recipe    *Recipe // Present for recipe posts.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recipe is the brewing recipe embedded in a post.
type Recipe struct {
	Title              string
	Description        string
	BrewingMethod      BrewingMethod
	CoffeeBean         string
	GrindSize          string
	CoffeeWeight       float64 // grams
	WaterWeight        float64 // grams
	WaterTemperature   float64
	WaterToCoffeeRatio float64 // Derived from WaterWeight / CoffeeWeight unless overridden.
	Bloom              *Bloom
	Steps              []RecipeStep
	TotalTime          float64 // seconds
	AdditionalNotes    string
	Images             []string
}

// Bloom describes the optional pre-infusion stage.
type Bloom struct {
	Duration    float64 // seconds
	WaterWeight float64 // grams
}

// RecipeStep is a single ordered instruction.
type RecipeStep struct {
	StepNumber  int
	Description string
	Duration    float64 // seconds
	Image       string
}

// NewPost builds a post owned by creatorID with a time-ordered ID.
func NewPost(creatorID uuid.UUID, postType PostType, title, content string, recipe *Recipe) *Post {
	now := time.Now().UTC()

	return &Post{
		ID:        uuid.Must(uuid.NewV7()),
		CreatorID: creatorID,
		Type:      postType,
		Title:     title,
		Content:   content,
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy reports whether accountID created the post.
func (p *Post) IsOwnedBy(accountID uuid.UUID) bool {
	return p.CreatorID == accountID
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Recipe = p.Recipe.Clone()

	return &cloned
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	cloned := *r
	if r.Bloom != nil {
		bloom := *r.Bloom
		cloned.Bloom = &bloom
	}
	cloned.Steps = slices.Clone(r.Steps)
	cloned.Images = slices.Clone(r.Images)

	return &cloned
}

// RecomputeRatio refreshes the derived water-to-coffee ratio.
// A zero coffee weight leaves the ratio at zero.
func (r *Recipe) RecomputeRatio() {
	if r.CoffeeWeight == 0 {
		r.WaterToCoffeeRatio = 0

		return
	}
	r.WaterToCoffeeRatio = r.WaterWeight / r.CoffeeWeight
}

// IsComplete reports whether every required recipe field carries a value.
func (r *Recipe) IsComplete() bool {
	return r.Title != "" &&
		r.BrewingMethod.IsValid() &&
		r.CoffeeBean != "" &&
		r.GrindSize != "" &&
		r.CoffeeWeight > 0 &&
		r.WaterWeight > 0
}
