package dto

type CategoryFilters struct {
	RestaurantID string
	Status       string // empty means any
}
