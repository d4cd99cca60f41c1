package dto

type AddonFilters struct {
	RestaurantID  string
	SubcategoryID string
	CategoryID    string
	Status        string
}
