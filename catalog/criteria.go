package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey selects the ordering applied to a filtered result set.
type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortNewest     SortKey = "newest"
	SortRatingDesc SortKey = "rating-desc"
)

// AllCategories is the reserved category slug meaning "no category constraint".
const AllCategories = "all"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var validSortKeys = map[SortKey]bool{
	SortFeatured:   true,
	SortNameAsc:    true,
	SortNameDesc:   true,
	SortPriceAsc:   true,
	SortPriceDesc:  true,
	SortNewest:     true,
	SortRatingDesc: true,
}

// Criteria is the full set of filter/sort/pagination parameters accepted by
// the query engine. The zero value means "no constraints, first page,
// default page size, featured ordering".
type Criteria struct {
	CategorySlug  string
	Search        string
	Sort          SortKey
	FeaturedOnly  bool
	AvailableOnly bool
	Brand         string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Page          int
	PageSize      int
}

// InvalidCriteriaError reports criteria fields that failed validation.
// The engine returns it without producing partial results.
type InvalidCriteriaError struct {
	Fields map[string]string
}

func (e *InvalidCriteriaError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid criteria: " + strings.Join(parts, "; ")
}

// Validate checks the structurally constrained fields. Pagination values are
// never an error; they are corrected during normalization instead.
func (c Criteria) Validate() error {
	fields := map[string]string{}

	if c.Sort != "" && !validSortKeys[c.Sort] {
		fields["sort"] = fmt.Sprintf("unknown sort key %q", string(c.Sort))
	}
	if c.MinPrice != nil && c.MinPrice.IsNegative() {
		fields["minPrice"] = "must not be negative"
	}
	if c.MaxPrice != nil && c.MaxPrice.IsNegative() {
		fields["maxPrice"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &InvalidCriteriaError{Fields: fields}
	}
	return nil
}

// normalized returns a copy with whitespace-only search treated as absent,
// the "all" sentinel collapsed to no constraint, the default sort applied,
// and pagination corrected to valid bounds.
func (c Criteria) normalized() Criteria {
	c.Search = strings.TrimSpace(c.Search)
	if c.CategorySlug == AllCategories {
		c.CategorySlug = ""
	}
	if c.Sort == "" {
		c.Sort = SortFeatured
	}
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize < 1 {
		c.PageSize = 1
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	return c
}
