package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tavolo/menu-catalog-service/internal/addon/dto"
	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

// ownedByRestaurant covers all three ownership shapes: a direct tenant
// reference, a subcategory parent, or a legacy category parent.
const ownedByRestaurant = `(
    addons.restaurant_id = :guard_restaurant_id
    OR EXISTS (
        SELECT 1 FROM subcategories s
        WHERE s.id = addons.subcategory_id AND s.restaurant_id = :guard_restaurant_id
    )
    OR EXISTS (
        SELECT 1 FROM categories c
        WHERE c.id = addons.category_id AND c.restaurant_id = :guard_restaurant_id
    )
)`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Addon) error {
	query := `
        INSERT INTO addons (
            id, subcategory_id, category_id, restaurant_id,
            title, title_en, title_it, title_es,
            description, description_en, description_it, description_es,
            price, image_url, sort_order, status, created_at, updated_at
        )
        VALUES (
            :id, :subcategory_id, :category_id, :restaurant_id,
            :title, :title_en, :title_it, :title_es,
            :description, :description_en, :description_it, :description_es,
            :price, :image_url, :sort_order, :status, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, a); err != nil {
		return apperr.Persistence(err, "insert addon")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Addon, error) {
	var addon model.Addon
	query := `SELECT * FROM addons WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &addon, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence(err, "find addon")
	}
	return &addon, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AddonFilters) ([]model.Addon, error) {
	var addons []model.Addon

	conditions := []string{}
	args := map[string]interface{}{}

	if f.RestaurantID != "" {
		conditions = append(conditions, `(
            addons.restaurant_id = :restaurant_id
            OR EXISTS (
                SELECT 1 FROM subcategories s
                WHERE s.id = addons.subcategory_id AND s.restaurant_id = :restaurant_id
            )
            OR EXISTS (
                SELECT 1 FROM categories c
                WHERE c.id = addons.category_id AND c.restaurant_id = :restaurant_id
            )
        )`)
		args["restaurant_id"] = f.RestaurantID
	}
	if f.SubcategoryID != "" {
		conditions = append(conditions, "subcategory_id = :subcategory_id")
		args["subcategory_id"] = f.SubcategoryID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	query := "SELECT * FROM addons" + whereClause + " ORDER BY sort_order ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Persistence(err, "list addons")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &addons, args); err != nil {
		return nil, apperr.Persistence(err, "list addons")
	}
	return addons, nil
}

func (r *PGRepository) Update(ctx context.Context, a *model.Addon, restaurantID string) error {
	query := `
        UPDATE addons
        SET title = :title,
            title_en = :title_en,
            title_it = :title_it,
            title_es = :title_es,
            description = :description,
            description_en = :description_en,
            description_it = :description_it,
            description_es = :description_es,
            price = :price,
            image_url = :image_url,
            sort_order = :sort_order,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND ` + ownedByRestaurant

	arg := struct {
		*model.Addon
		GuardRestaurantID string `db:"guard_restaurant_id"`
	}{a, restaurantID}

	if _, err := r.DB.NamedExecContext(ctx, query, arg); err != nil {
		return apperr.Persistence(err, "update addon")
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id, restaurantID string) error {
	query := `DELETE FROM addons
              WHERE id = $1 AND (
                  addons.restaurant_id = $2
                  OR EXISTS (
                      SELECT 1 FROM subcategories s
                      WHERE s.id = addons.subcategory_id AND s.restaurant_id = $2
                  )
                  OR EXISTS (
                      SELECT 1 FROM categories c
                      WHERE c.id = addons.category_id AND c.restaurant_id = $2
                  )
              )`
	if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
		return apperr.Persistence(err, "delete addon")
	}
	return nil
}

func (r *PGRepository) Siblings(subcategoryID, categoryID *string, restaurantID string) ordering.SiblingStore {
	return &siblingStore{
		db:            r.DB,
		subcategoryID: subcategoryID,
		categoryID:    categoryID,
		restaurantID:  restaurantID,
	}
}

type siblingStore struct {
	db            *sqlx.DB
	subcategoryID *string
	categoryID    *string
	restaurantID  string
}

func (s *siblingStore) scope() (clause string, parentID string) {
	if s.subcategoryID != nil {
		return "subcategory_id = $1", *s.subcategoryID
	}
	if s.categoryID != nil {
		return "category_id = $1", *s.categoryID
	}
	return "", ""
}

func (s *siblingStore) Siblings(ctx context.Context) ([]ordering.Sibling, error) {
	clause, parentID := s.scope()
	if clause == "" {
		// Global add-ons do not compete for order with scoped ones.
		return nil, nil
	}

	var siblings []ordering.Sibling
	query := `SELECT id, sort_order FROM addons WHERE ` + clause + ` ORDER BY sort_order ASC`
	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, apperr.Persistence(err, "list addon siblings")
	}
	defer rows.Close()
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.SortOrder); err != nil {
			return nil, apperr.Persistence(err, "scan addon sibling")
		}
		siblings = append(siblings, sib)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err, "list addon siblings")
	}
	return siblings, nil
}

func (s *siblingStore) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	query := `UPDATE addons SET sort_order = $1, updated_at = now()
              WHERE id = $2 AND (
                  addons.restaurant_id = $3
                  OR EXISTS (
                      SELECT 1 FROM subcategories sc
                      WHERE sc.id = addons.subcategory_id AND sc.restaurant_id = $3
                  )
                  OR EXISTS (
                      SELECT 1 FROM categories c
                      WHERE c.id = addons.category_id AND c.restaurant_id = $3
                  )
              )`
	if _, err := s.db.ExecContext(ctx, query, sortOrder, id, s.restaurantID); err != nil {
		return apperr.Persistence(err, "set addon sort order")
	}
	return nil
}
