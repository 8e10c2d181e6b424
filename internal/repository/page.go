package repository

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize  = 5
	MaxPageSize      = 100
	DefaultSortField = "id"
)

// PageRequest is a normalized, zero-based page selection sorted
// ascending by Field.
type PageRequest struct {
	Number int
	Size   int
	Field  string
}

// NewPageRequest clamps a negative page number to 0, a non-positive
// size to DefaultPageSize and an empty field to DefaultSortField. The
// size is capped at MaxPageSize and the number so that the offset fits
// in an int.
func NewPageRequest(number, size int, field string) PageRequest {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if number < 0 {
		number = 0
	}
	if maxNumber := math.MaxInt / size; number > maxNumber {
		number = maxNumber
	}
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultSortField
	}
	return PageRequest{Number: number, Size: size, Field: field}
}

func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// sortColumns maps accepted sort attributes (JSON names and column
// names) onto columns of one table.
type sortColumns map[string]string

func (s sortColumns) column(field string) (string, error) {
	if col, ok := s[field]; ok {
		return col, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortField, field)
}

func paginate(q *gorm.DB, page PageRequest, col string) *gorm.DB {
	return q.
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: col}}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Offset(page.Offset()).
		Limit(page.Size)
}
