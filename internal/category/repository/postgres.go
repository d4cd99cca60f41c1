package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/category/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (
            id, restaurant_id, title, title_en, title_it, title_es,
            description, description_en, description_it, description_es,
            sort_order, status, created_at, updated_at
        )
        VALUES (
            :id, :restaurant_id, :title, :title_en, :title_it, :title_es,
            :description, :description_en, :description_it, :description_es,
            :sort_order, :status, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		return apperr.Persistence(err, "insert category")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence(err, "find category")
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	var categories []model.Category

	query := `SELECT * FROM categories WHERE restaurant_id = $1`
	args := []interface{}{f.RestaurantID}
	if f.Status != "" {
		query += ` AND status = $2`
		args = append(args, f.Status)
	}
	query += ` ORDER BY sort_order ASC`

	if err := r.DB.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, apperr.Persistence(err, "list categories")
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	// The restaurant predicate re-applies ownership at write time.
	query := `
        UPDATE categories
        SET title = :title,
            title_en = :title_en,
            title_it = :title_it,
            title_es = :title_es,
            description = :description,
            description_en = :description_en,
            description_it = :description_it,
            description_es = :description_es,
            sort_order = :sort_order,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND restaurant_id = :restaurant_id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		return apperr.Persistence(err, "update category")
	}
	return nil
}

// Delete removes the category and everything under it, child tables first.
// The statements are deliberately independent (no multi-entity transaction);
// a crash mid-cascade leaves orphans that the next delete attempt clears.
func (r *PGRepository) Delete(ctx context.Context, id, restaurantID string) error {
	owned := `EXISTS (SELECT 1 FROM categories c WHERE c.id = $1 AND c.restaurant_id = $2)`

	statements := []string{
		`DELETE FROM addons
         WHERE (category_id = $1
                OR subcategory_id IN (SELECT id FROM subcategories WHERE category_id = $1))
           AND ` + owned,
		`DELETE FROM menu_items
         WHERE subcategory_id IN (SELECT id FROM subcategories WHERE category_id = $1)
           AND ` + owned,
		`DELETE FROM subcategories WHERE category_id = $1 AND ` + owned,
		`DELETE FROM categories WHERE id = $1 AND restaurant_id = $2`,
	}
	for _, query := range statements {
		if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
			return apperr.Persistence(err, "cascade delete category")
		}
	}
	return nil
}

// RestaurantIDs lists every restaurant that owns at least one category. The
// cache warmer uses it to know which catalogs to prebuild.
func (r *PGRepository) RestaurantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	query := `SELECT DISTINCT restaurant_id FROM categories ORDER BY restaurant_id`
	if err := r.DB.SelectContext(ctx, &ids, query); err != nil {
		return nil, apperr.Persistence(err, "list restaurants")
	}
	return ids, nil
}

func (r *PGRepository) Siblings(restaurantID string) ordering.SiblingStore {
	return &siblingStore{db: r.DB, restaurantID: restaurantID}
}

type siblingStore struct {
	db           *sqlx.DB
	restaurantID string
}

func (s *siblingStore) Siblings(ctx context.Context) ([]ordering.Sibling, error) {
	var siblings []ordering.Sibling
	query := `SELECT id, sort_order FROM categories WHERE restaurant_id = $1 ORDER BY sort_order ASC`
	rows, err := s.db.QueryContext(ctx, query, s.restaurantID)
	if err != nil {
		return nil, apperr.Persistence(err, "list category siblings")
	}
	defer rows.Close()
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.SortOrder); err != nil {
			return nil, apperr.Persistence(err, "scan category sibling")
		}
		siblings = append(siblings, sib)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err, "list category siblings")
	}
	return siblings, nil
}

func (s *siblingStore) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	query := `UPDATE categories SET sort_order = $1, updated_at = now() WHERE id = $2 AND restaurant_id = $3`
	if _, err := s.db.ExecContext(ctx, query, sortOrder, id, s.restaurantID); err != nil {
		return apperr.Persistence(err, "set category sort order")
	}
	return nil
}
