package persistence

import (
	"strings"

	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY against injection via filter input.
var allowedOrderColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"sku":              true,
	"code":             true,
	"reference_number": true,
	"due_date":         true,
	"priority":         true,
	"quantity":         true,
	"unit_price":       true,
}

// applyPagination applies page/size and ordering from a shared.Filter-shaped
// input. Unknown order columns fall back to created_at.
func applyPagination(query *gorm.DB, page, pageSize int, orderBy, orderDir string) *gorm.DB {
	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query = query.Offset(offset).Limit(pageSize)
	}

	column := "created_at"
	if allowedOrderColumns[orderBy] {
		column = orderBy
	}
	direction := "DESC"
	if strings.EqualFold(orderDir, "asc") {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}
