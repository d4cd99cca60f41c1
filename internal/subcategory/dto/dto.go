package dto

type SubcategoryFilters struct {
	RestaurantID string
	CategoryID   string // empty means all of the restaurant's subcategories
	Status       string
}
