package model

// MenuItem belongs to a subcategory; its restaurant is resolved through the
// parent. IsSpecial only changes where the item is rendered (the specials
// section), not where it is stored.
type MenuItem struct {
	BaseModel
	SubcategoryID string  `db:"subcategory_id" json:"subcategory_id"`
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
	ModelGLBURL   *string `db:"model_glb_url" json:"model_glb_url"`
	ModelUSDZURL  *string `db:"model_usdz_url" json:"model_usdz_url"`
	IsSpecial     bool    `db:"is_special" json:"is_special"`
	SortOrder     int     `db:"sort_order" json:"sort_order"`
	Status        string  `db:"status" json:"status"`
}
