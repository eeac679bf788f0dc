package catalog

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
	"github.com/aromacraft/storefront-backend/pkg/pagination"
)

// Repository wires the catalog read paths to the database.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	Filters    ListFilters
	Sort       SortMode
	Pagination pagination.Params
}

// ListProducts applies the filters, sort, and cursor and returns one page
// plus the cursor for the next one.
func (r *Repository) ListProducts(ctx context.Context, query listQuery) ([]models.Product, string, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Product{})

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("category = ?", *filter.Category)
	}
	if filter.Roast != nil {
		qb = qb.Where("roast_level = ?", *filter.Roast)
	}
	if filter.Origin != nil {
		qb = qb.Where("LOWER(origin) = ?", strings.ToLower(*filter.Origin))
	}
	if filter.PriceMin != nil {
		qb = qb.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("price <= ?", *filter.PriceMax)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(COALESCE(origin, '')) LIKE ? OR LOWER(tasting_notes) LIKE ? OR LOWER(brew_methods) LIKE ?)",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	qb = applySort(qb, query.Sort, cursor).Limit(limitWithBuffer)

	var records []models.Product
	if err := qb.Find(&records).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > pageSize {
		records = records[:pageSize]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			SortValue: sortValue(query.Sort, last),
			ID:        last.ID,
		})
	}
	return records, nextCursor, nil
}

// Recommended returns the flagged products for the cart page, strongest
// rated first.
func (r *Repository) Recommended(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 3
	}
	var records []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("recommended = ?", true).
		Order("rating_count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func applySort(qb *gorm.DB, sort SortMode, cursor *pagination.Cursor) *gorm.DB {
	switch sort {
	case SortPriceAsc:
		if cursor != nil {
			qb = qb.Where("(price > ?) OR (price = ? AND id > ?)", cursor.SortValue, cursor.SortValue, cursor.ID)
		}
		return qb.Order("price ASC").Order("id ASC")
	case SortPriceDesc:
		if cursor != nil {
			qb = qb.Where("(price < ?) OR (price = ? AND id > ?)", cursor.SortValue, cursor.SortValue, cursor.ID)
		}
		return qb.Order("price DESC").Order("id ASC")
	case SortRating:
		if cursor != nil {
			qb = qb.Where("(rating_count < ?) OR (rating_count = ? AND id > ?)", cursor.SortValue, cursor.SortValue, cursor.ID)
		}
		return qb.Order("rating_count DESC").Order("id ASC")
	default:
		if cursor != nil {
			qb = qb.Where("(name > ?) OR (name = ? AND id > ?)", cursor.SortValue, cursor.SortValue, cursor.ID)
		}
		return qb.Order("name ASC").Order("id ASC")
	}
}

func sortValue(sort SortMode, product models.Product) string {
	switch sort {
	case SortPriceAsc, SortPriceDesc:
		return product.Price.String()
	case SortRating:
		return strconv.Itoa(product.RatingCount)
	default:
		return product.Name
	}
}
