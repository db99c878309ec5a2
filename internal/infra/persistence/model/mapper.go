package model

import (
	"brewshare/internal/domain/entity"

	"gorm.io/datatypes"
)

// ToAccountDomain maps a database model to a domain entity.
func ToAccountDomain(data *AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// FromAccountDomain maps a domain entity to a database model.
func FromAccountDomain(data *entity.Account) *AccountModel {
	if data == nil {
		return nil
	}

	return &AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// ToPostDomain maps a database model to a domain entity.
func ToPostDomain(data *PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		CreatorID: data.CreatorID,
		Type:      entity.PostType(data.Type),
		Title:     data.Title,
		Content:   data.Content,
		Recipe:    ToRecipeDomain(data.Recipe.Data()),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// FromPostDomain maps a domain entity to a database model.
func FromPostDomain(data *entity.Post) *PostModel {
	if data == nil {
		return nil
	}

	return &PostModel{
		ID:        data.ID,
		CreatorID: data.CreatorID,
		Type:      data.Type.String(),
		Title:     data.Title,
		Content:   data.Content,
		Recipe:    datatypes.NewJSONType(FromRecipeDomain(data.Recipe)),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// ToRecipeDomain maps a stored recipe document to a domain recipe.
func ToRecipeDomain(doc *RecipeDocument) *entity.Recipe {
	if doc == nil {
		return nil
	}

	recipe := &entity.Recipe{
		Title:              doc.Title,
		Description:        doc.Description,
		BrewingMethod:      entity.BrewingMethod(doc.BrewingMethod),
		CoffeeBean:         doc.CoffeeBean,
		GrindSize:          doc.GrindSize,
		CoffeeWeight:       doc.CoffeeWeight,
		WaterWeight:        doc.WaterWeight,
		WaterTemperature:   doc.WaterTemperature,
		WaterToCoffeeRatio: doc.WaterToCoffeeRatio,
		TotalTime:          doc.TotalTime,
		AdditionalNotes:    doc.AdditionalNotes,
		Images:             doc.Images,
	}
	if doc.Bloom != nil {
		recipe.Bloom = &entity.Bloom{Duration: doc.Bloom.Duration, WaterWeight: doc.Bloom.WaterWeight}
	}
	for _, step := range doc.Steps {
		recipe.Steps = append(recipe.Steps, entity.RecipeStep(step))
	}

	return recipe
}

// FromRecipeDomain maps a domain recipe to its stored document.
func FromRecipeDomain(recipe *entity.Recipe) *RecipeDocument {
	if recipe == nil {
		return nil
	}

	doc := &RecipeDocument{
		Title:              recipe.Title,
		Description:        recipe.Description,
		BrewingMethod:      recipe.BrewingMethod.String(),
		CoffeeBean:         recipe.CoffeeBean,
		GrindSize:          recipe.GrindSize,
		CoffeeWeight:       recipe.CoffeeWeight,
		WaterWeight:        recipe.WaterWeight,
		WaterTemperature:   recipe.WaterTemperature,
		WaterToCoffeeRatio: recipe.WaterToCoffeeRatio,
		TotalTime:          recipe.TotalTime,
		AdditionalNotes:    recipe.AdditionalNotes,
		Images:             recipe.Images,
	}
	if recipe.Bloom != nil {
		doc.Bloom = &BloomDocument{Duration: recipe.Bloom.Duration, WaterWeight: recipe.Bloom.WaterWeight}
	}
	for _, step := range recipe.Steps {
		doc.Steps = append(doc.Steps, RecipeStepDocument(step))
	}

	return doc
}
