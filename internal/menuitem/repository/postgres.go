package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

// ownedBySubcategory re-applies the tenant predicate at write time through
// the parent subcategory.
const ownedBySubcategory = `EXISTS (
    SELECT 1 FROM subcategories s
    WHERE s.id = menu_items.subcategory_id AND s.restaurant_id = :guard_restaurant_id
)`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.MenuItem) error {
	query := `
        INSERT INTO menu_items (
            id, subcategory_id,
            title, title_en, title_it, title_es,
            description, description_en, description_it, description_es,
            price, image_url, model_glb_url, model_usdz_url,
            is_special, sort_order, status, created_at, updated_at
        )
        VALUES (
            :id, :subcategory_id,
            :title, :title_en, :title_it, :title_es,
            :description, :description_en, :description_it, :description_es,
            :price, :image_url, :model_glb_url, :model_usdz_url,
            :is_special, :sort_order, :status, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, m); err != nil {
		return apperr.Persistence(err, "insert menu item")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	query := `SELECT * FROM menu_items WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence(err, "find menu item")
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MenuItemFilters) ([]model.MenuItem, error) {
	var items []model.MenuItem

	conditions := []string{}
	args := map[string]interface{}{}

	if f.RestaurantID != "" {
		conditions = append(conditions, `EXISTS (
            SELECT 1 FROM subcategories s
            WHERE s.id = menu_items.subcategory_id AND s.restaurant_id = :restaurant_id
        )`)
		args["restaurant_id"] = f.RestaurantID
	}
	if f.SubcategoryID != "" {
		conditions = append(conditions, "subcategory_id = :subcategory_id")
		args["subcategory_id"] = f.SubcategoryID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.IsSpecial != nil {
		conditions = append(conditions, "is_special = :is_special")
		args["is_special"] = *f.IsSpecial
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	query := "SELECT * FROM menu_items" + whereClause + " ORDER BY sort_order ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Persistence(err, "list menu items")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, apperr.Persistence(err, "list menu items")
	}
	return items, nil
}

func (r *PGRepository) Update(ctx context.Context, m *model.MenuItem, restaurantID string) error {
	query := `
        UPDATE menu_items
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
            model_glb_url = :model_glb_url,
            model_usdz_url = :model_usdz_url,
            is_special = :is_special,
            sort_order = :sort_order,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND ` + ownedBySubcategory

	arg := struct {
		*model.MenuItem
		GuardRestaurantID string `db:"guard_restaurant_id"`
	}{m, restaurantID}

	if _, err := r.DB.NamedExecContext(ctx, query, arg); err != nil {
		return apperr.Persistence(err, "update menu item")
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id, restaurantID string) error {
	query := `DELETE FROM menu_items
              WHERE id = $1 AND EXISTS (
                  SELECT 1 FROM subcategories s
                  WHERE s.id = menu_items.subcategory_id AND s.restaurant_id = $2
              )`
	if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
		return apperr.Persistence(err, "delete menu item")
	}
	return nil
}

func (r *PGRepository) Siblings(subcategoryID, restaurantID string) ordering.SiblingStore {
	return &siblingStore{db: r.DB, subcategoryID: subcategoryID, restaurantID: restaurantID}
}

type siblingStore struct {
	db            *sqlx.DB
	subcategoryID string
	restaurantID  string
}

func (s *siblingStore) Siblings(ctx context.Context) ([]ordering.Sibling, error) {
	var siblings []ordering.Sibling
	query := `SELECT m.id, m.sort_order FROM menu_items m
              JOIN subcategories sc ON sc.id = m.subcategory_id
              WHERE m.subcategory_id = $1 AND sc.restaurant_id = $2
              ORDER BY m.sort_order ASC`
	rows, err := s.db.QueryContext(ctx, query, s.subcategoryID, s.restaurantID)
	if err != nil {
		return nil, apperr.Persistence(err, "list menu item siblings")
	}
	defer rows.Close()
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.SortOrder); err != nil {
			return nil, apperr.Persistence(err, "scan menu item sibling")
		}
		siblings = append(siblings, sib)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err, "list menu item siblings")
	}
	return siblings, nil
}

func (s *siblingStore) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	query := `UPDATE menu_items SET sort_order = $1, updated_at = now()
              WHERE id = $2 AND EXISTS (
                  SELECT 1 FROM subcategories sc
                  WHERE sc.id = menu_items.subcategory_id AND sc.restaurant_id = $3
              )`
	if _, err := s.db.ExecContext(ctx, query, sortOrder, id, s.restaurantID); err != nil {
		return apperr.Persistence(err, "set menu item sort order")
	}
	return nil
}
