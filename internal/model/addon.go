package model

// Addon normally hangs off a subcategory and stores its restaurant directly.
// Legacy rows have a nil RestaurantID and reference a category instead; their
// owner is resolved through that parent. Rows with neither parent are global
// and always keep sort_order 1.
type Addon struct {
	BaseModel
	SubcategoryID *string `db:"subcategory_id" json:"subcategory_id"`
	CategoryID    *string `db:"category_id" json:"category_id"`
	RestaurantID  *string `db:"restaurant_id" json:"restaurant_id"`
	Title         string  `db:"title" json:"title"`
	TitleEN       *string `db:"title_en" json:"title_en"`
	TitleIT       *string `db:"title_it" json:"title_it"`
	TitleES       *string `db:"title_es" json:"title_es"`
	Description   *string `db:"description" json:"description"`
	DescriptionEN *string `db:"description_en" json:"description_en"`
	DescriptionIT *string `db:"description_it" json:"description_it"`
	DescriptionES *string `db:"description_es" json:"description_es"`
	Price         float64 `db:"price" json:"price"`
	ImageURL      *string `db:"image_url" json:"image_url"`
	SortOrder     int     `db:"sort_order" json:"sort_order"`
	Status        string  `db:"status" json:"status"`
}
