package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/subcategory/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Subcategory) error {
	query := `
        INSERT INTO subcategories (
            id, category_id, restaurant_id, is_default,
            title, title_en, title_it, title_es,
            description, description_en, description_it, description_es,
            sort_order, status, created_at, updated_at
        )
        VALUES (
            :id, :category_id, :restaurant_id, :is_default,
            :title, :title_en, :title_it, :title_es,
            :description, :description_en, :description_it, :description_es,
            :sort_order, :status, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		return apperr.Persistence(err, "insert subcategory")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Subcategory, error) {
	var sub model.Subcategory
	query := `SELECT * FROM subcategories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &sub, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence(err, "find subcategory")
	}
	return &sub, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SubcategoryFilters) ([]model.Subcategory, error) {
	var subs []model.Subcategory

	conditions := []string{"restaurant_id = :restaurant_id"}
	args := map[string]interface{}{"restaurant_id": f.RestaurantID}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	query := "SELECT * FROM subcategories WHERE " + strings.Join(conditions, " AND ") + " ORDER BY sort_order ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Persistence(err, "list subcategories")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &subs, args); err != nil {
		return nil, apperr.Persistence(err, "list subcategories")
	}
	return subs, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Subcategory) error {
	query := `
        UPDATE subcategories
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
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		return apperr.Persistence(err, "update subcategory")
	}
	return nil
}

// Delete removes the subcategory with its menu items and add-ons, children
// first, as independent statements (see the category repository for the
// crash-mid-cascade tradeoff).
func (r *PGRepository) Delete(ctx context.Context, id, restaurantID string) error {
	owned := `EXISTS (SELECT 1 FROM subcategories s WHERE s.id = $1 AND s.restaurant_id = $2)`

	statements := []string{
		`DELETE FROM addons WHERE subcategory_id = $1 AND ` + owned,
		`DELETE FROM menu_items WHERE subcategory_id = $1 AND ` + owned,
		`DELETE FROM subcategories WHERE id = $1 AND restaurant_id = $2`,
	}
	for _, query := range statements {
		if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
			return apperr.Persistence(err, "cascade delete subcategory")
		}
	}
	return nil
}

func (r *PGRepository) Siblings(categoryID, restaurantID string) ordering.SiblingStore {
	return &siblingStore{db: r.DB, categoryID: categoryID, restaurantID: restaurantID}
}

type siblingStore struct {
	db           *sqlx.DB
	categoryID   string
	restaurantID string
}

func (s *siblingStore) Siblings(ctx context.Context) ([]ordering.Sibling, error) {
	var siblings []ordering.Sibling
	query := `SELECT id, sort_order FROM subcategories
              WHERE category_id = $1 AND restaurant_id = $2 ORDER BY sort_order ASC`
	rows, err := s.db.QueryContext(ctx, query, s.categoryID, s.restaurantID)
	if err != nil {
		return nil, apperr.Persistence(err, "list subcategory siblings")
	}
	defer rows.Close()
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.SortOrder); err != nil {
			return nil, apperr.Persistence(err, "scan subcategory sibling")
		}
		siblings = append(siblings, sib)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err, "list subcategory siblings")
	}
	return siblings, nil
}

func (s *siblingStore) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	query := `UPDATE subcategories SET sort_order = $1, updated_at = now()
              WHERE id = $2 AND restaurant_id = $3`
	if _, err := s.db.ExecContext(ctx, query, sortOrder, id, s.restaurantID); err != nil {
		return apperr.Persistence(err, "set subcategory sort order")
	}
	return nil
}
