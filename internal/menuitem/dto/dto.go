package dto

type MenuItemFilters struct {
	RestaurantID  string
	SubcategoryID string
	Status        string
	IsSpecial     *bool
}
