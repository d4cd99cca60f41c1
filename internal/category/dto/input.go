package dto

import (
	"strings"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

type CreateCategoryInput struct {
	RestaurantID  string
	Title         string
	TitleEN       string
	TitleIT       string
	TitleES       string
	Description   string
	DescriptionEN string
	DescriptionIT string
	DescriptionES string
}

func (in *CreateCategoryInput) Validate() error {
	if in.RestaurantID == "" {
		return apperr.Validationf("restaurant id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("category title is required")
	}
	return nil
}

type UpdateCategoryInput struct {
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

func (in *UpdateCategoryInput) Validate() error {
	if in.ID == "" {
		return apperr.Validationf("category id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("category title is required")
	}
	return nil
}
