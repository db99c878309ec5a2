package impl

import (
	"time"

	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/usecase"

	"github.com/pkg/errors"
)

// applyPostPatch returns a new post with the patch applied on top of current.
// current is never modified.
func applyPostPatch(current *entity.Post, patch *usecase.UpdatePostInput, now time.Time) (*entity.Post, error) {
	next := current.Clone()

	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Content != nil {
		next.Content = *patch.Content
	}
	if patch.Recipe != nil {
		next.Recipe = applyRecipePatch(next.Recipe, patch.Recipe)
		if !next.Recipe.IsComplete() {
			return nil, errors.WithStack(domainerrors.ErrRecipeIncomplete)
		}
	}

	if next.Type == entity.PostTypeRecipe && next.Recipe == nil {
		return nil, errors.WithStack(domainerrors.ErrRecipeRequired)
	}

	next.UpdatedAt = now

	return next, nil
}

// applyRecipePatch returns a new recipe with the present leaves of patch applied.
// A nil base starts from an empty recipe with the default water temperature.
//
// The ratio is recomputed right after each weight is applied, and an explicit
// ratio in the same patch is applied last so it wins.
func applyRecipePatch(base *entity.Recipe, patch *usecase.RecipePatch) *entity.Recipe {
	next := base.Clone()
	if next == nil {
		next = &entity.Recipe{WaterTemperature: entity.DefaultWaterTemperature}
	}

	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.BrewingMethod != nil {
		next.BrewingMethod = *patch.BrewingMethod
	}
	if patch.CoffeeBean != nil {
		next.CoffeeBean = *patch.CoffeeBean
	}
	if patch.GrindSize != nil {
		next.GrindSize = *patch.GrindSize
	}
	if patch.WaterWeight != nil {
		next.WaterWeight = *patch.WaterWeight
		next.RecomputeRatio()
	}
	if patch.CoffeeWeight != nil {
		next.CoffeeWeight = *patch.CoffeeWeight
		next.RecomputeRatio()
	}
	if patch.WaterTemperature != nil {
		next.WaterTemperature = *patch.WaterTemperature
	}
	if patch.Bloom != nil {
		bloom := entity.Bloom{}
		if next.Bloom != nil {
			bloom = *next.Bloom
		}
		if patch.Bloom.Duration != nil {
			bloom.Duration = *patch.Bloom.Duration
		}
		if patch.Bloom.WaterWeight != nil {
			bloom.WaterWeight = *patch.Bloom.WaterWeight
		}
		next.Bloom = &bloom
	}
	if patch.Steps != nil {
		steps := make([]entity.RecipeStep, 0, len(*patch.Steps))
		for _, step := range *patch.Steps {
			steps = append(steps, entity.RecipeStep(step))
		}
		next.Steps = steps
	}
	if patch.TotalTime != nil {
		next.TotalTime = *patch.TotalTime
	}
	if patch.AdditionalNotes != nil {
		next.AdditionalNotes = *patch.AdditionalNotes
	}
	if patch.Images != nil {
		next.Images = append([]string{}, *patch.Images...)
	}

	if patch.WaterToCoffeeRatio != nil {
		next.WaterToCoffeeRatio = *patch.WaterToCoffeeRatio
	}

	return next
}
