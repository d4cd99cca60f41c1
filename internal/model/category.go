package model

// Category is the top level of a restaurant's menu tree. SortOrder is unique
// among the restaurant's categories; values from different restaurants are
// not comparable.
type Category struct {
	BaseModel
	RestaurantID  string  `db:"restaurant_id" json:"restaurant_id"`
	Title         string  `db:"title" json:"title"`
	TitleEN       *string `db:"title_en" json:"title_en"`
	TitleIT       *string `db:"title_it" json:"title_it"`
	TitleES       *string `db:"title_es" json:"title_es"`
	Description   *string `db:"description" json:"description"`
	DescriptionEN *string `db:"description_en" json:"description_en"`
	DescriptionIT *string `db:"description_it" json:"description_it"`
	DescriptionES *string `db:"description_es" json:"description_es"`
	SortOrder     int     `db:"sort_order" json:"sort_order"`
	Status        string  `db:"status" json:"status"`
}

// Subcategory groups items inside a category. Exactly one subcategory per
// category carries IsDefault; it is created alongside the category and holds
// items that do not need a named section.
type Subcategory struct {
	BaseModel
	CategoryID    string  `db:"category_id" json:"category_id"`
	RestaurantID  string  `db:"restaurant_id" json:"restaurant_id"`
	IsDefault     bool    `db:"is_default" json:"is_default"`
	Title         string  `db:"title" json:"title"`
	TitleEN       *string `db:"title_en" json:"title_en"`
	TitleIT       *string `db:"title_it" json:"title_it"`
	TitleES       *string `db:"title_es" json:"title_es"`
	Description   *string `db:"description" json:"description"`
	DescriptionEN *string `db:"description_en" json:"description_en"`
	DescriptionIT *string `db:"description_it" json:"description_it"`
	DescriptionES *string `db:"description_es" json:"description_es"`
	SortOrder     int     `db:"sort_order" json:"sort_order"`
	Status        string  `db:"status" json:"status"`
}
