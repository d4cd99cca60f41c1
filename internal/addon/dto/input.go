package dto

import (
	"strings"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

// CreateAddonInput attaches the add-on to a subcategory when SubcategoryID
// is set, to a category for legacy-style rows when only CategoryID is set,
// and creates a global add-on when neither is.
type CreateAddonInput struct {
	RestaurantID  string
	SubcategoryID string
	CategoryID    string
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
}

func (in *CreateAddonInput) Validate() error {
	if in.RestaurantID == "" {
		return apperr.Validationf("restaurant id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("addon title is required")
	}
	if in.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	return nil
}

type UpdateAddonInput struct {
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
	Status        string
}

func (in *UpdateAddonInput) Validate() error {
	if in.ID == "" {
		return apperr.Validationf("addon id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("addon title is required")
	}
	if in.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	return nil
}
