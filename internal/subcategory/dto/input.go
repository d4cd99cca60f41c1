package dto

import (
	"strings"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

type CreateSubcategoryInput struct {
	RestaurantID  string
	CategoryID    string
	Title         string
	TitleEN       string
	TitleIT       string
	TitleES       string
	Description   string
	DescriptionEN string
	DescriptionIT string
	DescriptionES string
}

func (in *CreateSubcategoryInput) Validate() error {
	if in.RestaurantID == "" {
		return apperr.Validationf("restaurant id is required")
	}
	if in.CategoryID == "" {
		return apperr.Validationf("parent category is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("subcategory title is required")
	}
	return nil
}

type UpdateSubcategoryInput struct {
	ID            string
	RestaurantID  string
	Title         string
	TitleEN       string
	TitleIT       string
	TitleES       string
	Description   string
	DescriptionEN string
	DescriptionIT string
	DescriptionES string
	Status        string
}

func (in *UpdateSubcategoryInput) Validate() error {
	if in.ID == "" {
		return apperr.Validationf("subcategory id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("subcategory title is required")
	}
	return nil
}
