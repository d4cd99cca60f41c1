package dto

import (
	"strings"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

type CreateMenuItemInput struct {
	RestaurantID  string
	SubcategoryID string
	Title         string
	TitleEN       string
	TitleIT       string
	TitleES       string
	Description   string
	DescriptionEN string
	DescriptionIT string
	DescriptionES string
	Price         float64
	ImageURL      string
	ModelGLBURL   string
	ModelUSDZURL  string
	IsSpecial     bool
}

func (in *CreateMenuItemInput) Validate() error {
	if in.RestaurantID == "" {
		return apperr.Validationf("restaurant id is required")
	}
	if in.SubcategoryID == "" {
		return apperr.Validationf("parent subcategory is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("item title is required")
	}
	if in.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	return nil
}

type UpdateMenuItemInput struct {
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
	Price         float64
	ImageURL      string
	ModelGLBURL   string
	ModelUSDZURL  string
	IsSpecial     bool
	Status        string
}

func (in *UpdateMenuItemInput) Validate() error {
	if in.ID == "" {
		return apperr.Validationf("item id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("item title is required")
	}
	if in.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	return nil
}
