// Package catalog implements the storefront's catalog query engine: a pure,
// deterministic filter/sort/paginate pipeline over product collections, plus
// the shared discount derivation helpers.
//
// The engine performs no I/O and never mutates its inputs, so concurrent
// callers need no coordination. The caller is responsible for handing it a
// consistent snapshot of products and categories.
package catalog

import (
	"sort"
	"strings"

	"delyloco-backend/models"
)

// Result is one page of a catalog query plus the derived aggregates the
// storefront needs to render pagers and category badges.
type Result struct {
	// Items is the requested page of the filtered, sorted product list.
	Items []models.Product
	// TotalCount is the number of matching products before pagination.
	TotalCount int
	// CategoryCounts maps every known category slug to the number of
	// products matching all filters except the category filter itself.
	// Categories with no matches are present with a zero count.
	CategoryCounts map[string]int
	// UncategorizedCount tracks matching products without a category.
	UncategorizedCount int
	Page               int
	PageSize           int
}

// Query filters, sorts and paginates products according to crit.
//
// Filters apply in a fixed order (availability, featured, brand, price
// range, search, category); CategoryCounts are derived before the category
// filter so badge counts reflect the other active constraints. All sorts
// are stable: repeated queries over unchanged data return identical order.
func Query(products []models.Product, categories []models.Category, crit Criteria) (*Result, error) {
	if err := crit.Validate(); err != nil {
		return nil, err
	}
	crit = crit.normalized()

	slugByID := make(map[uint]string, len(categories))
	for _, c := range categories {
		slugByID[c.ID] = c.Slug
	}

	// Steps 1-5: every predicate except the category constraint.
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if crit.AvailableOnly && p.Stock <= 0 {
			continue
		}
		if crit.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if crit.Brand != "" && (p.Brand == nil || *p.Brand != crit.Brand) {
			continue
		}
		if crit.MinPrice != nil && p.Price.Cmp(*crit.MinPrice) < 0 {
			continue
		}
		if crit.MaxPrice != nil && p.Price.Cmp(*crit.MaxPrice) > 0 {
			continue
		}
		if crit.Search != "" && !matchesSearch(p, crit.Search) {
			continue
		}
		matched = append(matched, p)
	}

	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.Slug] = 0
	}
	uncategorized := 0
	for _, p := range matched {
		slug, ok := productCategorySlug(p, slugByID)
		if !ok {
			uncategorized++
			continue
		}
		counts[slug]++
	}

	// Step 6: category constraint.
	items := matched
	if crit.CategorySlug != "" {
		items = make([]models.Product, 0, len(matched))
		for _, p := range matched {
			if slug, ok := productCategorySlug(p, slugByID); ok && slug == crit.CategorySlug {
				items = append(items, p)
			}
		}
	}

	sortProducts(items, crit.Sort)

	total := len(items)
	start := (crit.Page - 1) * crit.PageSize
	if start > total {
		start = total
	}
	end := start + crit.PageSize
	if end > total {
		end = total
	}

	return &Result{
		Items:              items[start:end],
		TotalCount:         total,
		CategoryCounts:     counts,
		UncategorizedCount: uncategorized,
		Page:               crit.Page,
		PageSize:           crit.PageSize,
	}, nil
}

// productCategorySlug resolves a product's category slug, preferring the
// preloaded association and falling back to the category collection. A
// dangling category reference is treated the same as no category.
func productCategorySlug(p models.Product, slugByID map[uint]string) (string, bool) {
	if p.Category != nil {
		return p.Category.Slug, true
	}
	if p.CategoryID == nil {
		return "", false
	}
	slug, ok := slugByID[*p.CategoryID]
	return slug, ok
}

// matchesSearch is a case-insensitive unanchored substring match across
// name, description and brand.
func matchesSearch(p models.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), q) {
		return true
	}
	if p.Brand != nil && strings.Contains(strings.ToLower(*p.Brand), q) {
		return true
	}
	return false
}

func sortProducts(items []models.Product, key SortKey) {
	switch key {
	case SortFeatured:
		// Featured first, ties broken by creation time descending.
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].IsFeatured != items[j].IsFeatured {
				return items[i].IsFeatured
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) > strings.ToLower(items[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.Cmp(items[j].Price) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.Cmp(items[j].Price) > 0
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortRatingDesc:
		// Ties broken by review count descending.
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Rating != items[j].Rating {
				return items[i].Rating > items[j].Rating
			}
			return items[i].ReviewCount > items[j].ReviewCount
		})
	}
}
