package catalog

import (
	"reflect"
	"testing"
	"time"

	"delyloco-backend/models"

	"github.com/shopspring/decimal"
)

func strp(s string) *string { return &s }

func decp(i int64) *decimal.Decimal {
	d := decimal.NewFromInt(i)
	return &d
}

func uintp(u uint) *uint { return &u }

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Platos Especiales", Slug: "platos-especiales", IsActive: true},
		{ID: 2, Name: "Bebidas", Slug: "bebidas", IsActive: true},
		{ID: 3, Name: "Postres", Slug: "postres", IsActive: true},
	}
}

func testProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Dely Loco Especial", Slug: "dely-loco-especial",
			Description: strp("Plato de la casa"), Price: decimal.NewFromInt(80000),
			OriginalPrice: decp(100000), CategoryID: uintp(1), IsFeatured: true,
			Stock: 10, Rating: 4.8, ReviewCount: 132, CreatedAt: baseTime.Add(3 * time.Hour),
		},
		{
			ID: 2, Name: "Bandeja Paisa", Slug: "bandeja-paisa",
			Price: decimal.NewFromInt(32000), CategoryID: uintp(1),
			Stock: 5, Rating: 4.6, ReviewCount: 87, CreatedAt: baseTime.Add(2 * time.Hour),
		},
		{
			ID: 3, Name: "Limonada de Coco", Slug: "limonada-de-coco",
			Price: decimal.NewFromInt(9000), CategoryID: uintp(2), Brand: strp("Dely Loco"),
			Stock: 0, Rating: 4.9, ReviewCount: 201, CreatedAt: baseTime.Add(1 * time.Hour),
		},
		{
			ID: 4, Name: "Gaseosa 400ml", Slug: "gaseosa-400ml",
			Price: decimal.NewFromInt(5000), CategoryID: uintp(2), Brand: strp("Postobón"),
			Stock: 120, Rating: 4.0, ReviewCount: 12, CreatedAt: baseTime.Add(4 * time.Hour),
		},
		{
			ID: 5, Name: "Otro Plato", Slug: "otro-plato",
			Price: decimal.NewFromInt(20000), Stock: 3,
			Rating: 3.5, ReviewCount: 4, CreatedAt: baseTime,
		},
	}
}

func mustQuery(t *testing.T, products []models.Product, categories []models.Category, crit Criteria) *Result {
	t.Helper()
	result, err := Query(products, categories, crit)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	return result
}

func itemIDs(result *Result) []uint {
	ids := make([]uint, 0, len(result.Items))
	for _, p := range result.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestQueryNoCriteriaReturnsEverything(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{})

	if result.TotalCount != 5 {
		t.Errorf("expected totalCount 5, got %d", result.TotalCount)
	}
	if len(result.Items) != 5 {
		t.Errorf("expected 5 items, got %d", len(result.Items))
	}
	if result.Page != 1 || result.PageSize != DefaultPageSize {
		t.Errorf("expected default pagination 1/%d, got %d/%d", DefaultPageSize, result.Page, result.PageSize)
	}
}

func TestQueryPriceRangeScenarioA(t *testing.T) {
	products := make([]models.Product, 0, 5)
	for i, price := range []int64{10, 20, 30, 40, 50} {
		products = append(products, models.Product{
			ID:    uint(i + 1),
			Name:  "P" + string(rune('A'+i)),
			Price: decimal.NewFromInt(price),
			Stock: 1,
		})
	}

	result := mustQuery(t, products, nil, Criteria{
		MinPrice: decp(20),
		MaxPrice: decp(40),
		Sort:     SortPriceAsc,
	})

	if result.TotalCount != 3 {
		t.Fatalf("expected totalCount 3, got %d", result.TotalCount)
	}
	var prices []string
	for _, p := range result.Items {
		prices = append(prices, p.Price.String())
	}
	want := []string{"20", "30", "40"}
	if !reflect.DeepEqual(prices, want) {
		t.Errorf("expected prices %v, got %v", want, prices)
	}
}

func TestQuerySearchScenarioB(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Search: "loco"})

	found := map[string]bool{}
	for _, p := range result.Items {
		found[p.Slug] = true
	}
	if !found["dely-loco-especial"] {
		t.Error(`expected "loco" to match "Dely Loco Especial"`)
	}
	if !found["limonada-de-coco"] {
		t.Error(`expected "loco" to match brand "Dely Loco"`)
	}
	if found["otro-plato"] {
		t.Error(`did not expect "loco" to match "Otro Plato"`)
	}
}

func TestQuerySearchWhitespaceOnlyIsAbsent(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Search: "   "})
	if result.TotalCount != 5 {
		t.Errorf("whitespace-only search should match everything, got %d", result.TotalCount)
	}
}

func TestQuerySortPriceDescScenarioC(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "B", Price: decimal.NewFromInt(30)},
		{ID: 3, Name: "C", Price: decimal.NewFromInt(20)},
	}

	result := mustQuery(t, products, nil, Criteria{Sort: SortPriceDesc})

	var prices []string
	for _, p := range result.Items {
		prices = append(prices, p.Price.String())
	}
	want := []string{"30", "20", "10"}
	if !reflect.DeepEqual(prices, want) {
		t.Errorf("expected prices %v, got %v", want, prices)
	}
}

func TestQueryPaginationScenarioE(t *testing.T) {
	products := make([]models.Product, 0, 5)
	for i := 0; i < 5; i++ {
		products = append(products, models.Product{
			ID:        uint(i + 1),
			Name:      "P" + string(rune('a'+i)),
			Price:     decimal.NewFromInt(int64(i + 1)),
			CreatedAt: baseTime.Add(-time.Duration(i) * time.Minute),
		})
	}

	result := mustQuery(t, products, nil, Criteria{Sort: SortNewest, Page: 2, PageSize: 2})

	if result.TotalCount != 5 {
		t.Fatalf("expected totalCount 5, got %d", result.TotalCount)
	}
	want := []uint{3, 4}
	if !reflect.DeepEqual(itemIDs(result), want) {
		t.Errorf("expected page 2 items %v, got %v", want, itemIDs(result))
	}
}

func TestQueryPaginationCompleteness(t *testing.T) {
	products := testProducts()
	var all []uint
	for page := 1; ; page++ {
		result := mustQuery(t, products, testCategories(), Criteria{Sort: SortNameAsc, Page: page, PageSize: 2})
		if len(result.Items) == 0 {
			break
		}
		all = append(all, itemIDs(result)...)
	}

	full := mustQuery(t, products, testCategories(), Criteria{Sort: SortNameAsc})
	if !reflect.DeepEqual(all, itemIDs(full)) {
		t.Errorf("concatenated pages %v differ from full set %v", all, itemIDs(full))
	}
}

func TestQueryPaginationPastEndIsEmpty(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Page: 99, PageSize: 10})
	if len(result.Items) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(result.Items))
	}
	if result.TotalCount != 5 {
		t.Errorf("totalCount should be unaffected by page, got %d", result.TotalCount)
	}
}

func TestQueryPaginationCorrectsInvalidValues(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Page: -3, PageSize: -1})
	if result.Page != 1 {
		t.Errorf("expected page corrected to 1, got %d", result.Page)
	}
	if result.PageSize != 1 {
		t.Errorf("expected pageSize corrected to 1, got %d", result.PageSize)
	}

	result = mustQuery(t, testProducts(), testCategories(), Criteria{PageSize: 5000})
	if result.PageSize != MaxPageSize {
		t.Errorf("expected pageSize clamped to %d, got %d", MaxPageSize, result.PageSize)
	}
}

func TestQueryMinAboveMaxIsEmptyNotError(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{
		MinPrice: decp(50000),
		MaxPrice: decp(10000),
	})
	if result.TotalCount != 0 {
		t.Errorf("expected empty result, got %d", result.TotalCount)
	}
}

func TestQueryExactPriceBoundary(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{
		MinPrice: decp(32000),
		MaxPrice: decp(32000),
	})
	if result.TotalCount != 1 || result.Items[0].Slug != "bandeja-paisa" {
		t.Errorf("expected only the exact-price match, got %v", itemIDs(result))
	}
}

func TestQueryAvailableOnly(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{AvailableOnly: true})
	for _, p := range result.Items {
		if p.Stock <= 0 {
			t.Errorf("product %s has no stock but passed availableOnly", p.Slug)
		}
	}
	if result.TotalCount != 4 {
		t.Errorf("expected 4 available products, got %d", result.TotalCount)
	}
}

func TestQueryFeaturedOnly(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{FeaturedOnly: true})
	if result.TotalCount != 1 || result.Items[0].Slug != "dely-loco-especial" {
		t.Errorf("expected only the featured product, got %v", itemIDs(result))
	}
}

func TestQueryBrandIsExactAndCaseSensitive(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Brand: "Postobón"})
	if result.TotalCount != 1 || result.Items[0].Slug != "gaseosa-400ml" {
		t.Errorf("expected exact brand match, got %v", itemIDs(result))
	}

	result = mustQuery(t, testProducts(), testCategories(), Criteria{Brand: "postobón"})
	if result.TotalCount != 0 {
		t.Errorf("brand matching must be case-sensitive, got %d matches", result.TotalCount)
	}
}

func TestQueryCategoryFilterAndAllSentinel(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{CategorySlug: "bebidas"})
	if result.TotalCount != 2 {
		t.Errorf("expected 2 bebidas, got %d", result.TotalCount)
	}

	all := mustQuery(t, testProducts(), testCategories(), Criteria{CategorySlug: AllCategories})
	if all.TotalCount != 5 {
		t.Errorf(`"all" sentinel must behave like no category filter, got %d`, all.TotalCount)
	}
}

func TestQueryCategoryCountsIgnoreCategoryFilter(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{CategorySlug: "bebidas"})

	want := map[string]int{"platos-especiales": 2, "bebidas": 2, "postres": 0}
	if !reflect.DeepEqual(result.CategoryCounts, want) {
		t.Errorf("expected counts %v, got %v", want, result.CategoryCounts)
	}
	if result.UncategorizedCount != 1 {
		t.Errorf("expected 1 uncategorized product, got %d", result.UncategorizedCount)
	}
}

func TestQueryCategoryCountsReflectOtherFilters(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{AvailableOnly: true, CategorySlug: "bebidas"})

	// Limonada has no stock, so bebidas drops to 1
	if result.CategoryCounts["bebidas"] != 1 {
		t.Errorf("expected bebidas count 1 under availableOnly, got %d", result.CategoryCounts["bebidas"])
	}

	// Counts plus uncategorized must add up to the pre-category-filter total
	sum := result.UncategorizedCount
	for _, n := range result.CategoryCounts {
		sum += n
	}
	unfiltered := mustQuery(t, testProducts(), testCategories(), Criteria{AvailableOnly: true})
	if sum != unfiltered.TotalCount {
		t.Errorf("count sum %d does not match pre-category total %d", sum, unfiltered.TotalCount)
	}
}

func TestQueryFilterConjunction(t *testing.T) {
	crit := Criteria{
		AvailableOnly: true,
		Search:        "a",
		MinPrice:      decp(1000),
		MaxPrice:      decp(90000),
		CategorySlug:  "platos-especiales",
	}
	result := mustQuery(t, testProducts(), testCategories(), crit)

	for _, p := range result.Items {
		if p.Stock <= 0 {
			t.Errorf("%s violates availableOnly", p.Slug)
		}
		if p.Price.Cmp(*crit.MinPrice) < 0 || p.Price.Cmp(*crit.MaxPrice) > 0 {
			t.Errorf("%s violates price range", p.Slug)
		}
		if p.CategoryID == nil || *p.CategoryID != 1 {
			t.Errorf("%s violates category filter", p.Slug)
		}
		if !matchesSearch(p, crit.Search) {
			t.Errorf("%s violates search filter", p.Slug)
		}
	}
}

func TestQueryFeaturedSortTiesBrokenByNewest(t *testing.T) {
	result := mustQuery(t, testProducts(), testCategories(), Criteria{Sort: SortFeatured})

	// Featured product first, then the rest newest-first.
	want := []uint{1, 4, 2, 3, 5}
	if !reflect.DeepEqual(itemIDs(result), want) {
		t.Errorf("expected order %v, got %v", want, itemIDs(result))
	}
}

func TestQueryRatingSortTiesBrokenByReviews(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Rating: 4.5, ReviewCount: 10},
		{ID: 2, Name: "B", Rating: 4.5, ReviewCount: 50},
		{ID: 3, Name: "C", Rating: 4.9, ReviewCount: 2},
	}
	result := mustQuery(t, products, nil, Criteria{Sort: SortRatingDesc})

	want := []uint{3, 2, 1}
	if !reflect.DeepEqual(itemIDs(result), want) {
		t.Errorf("expected order %v, got %v", want, itemIDs(result))
	}
}

func TestQueryNameSortIsCaseInsensitive(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "banana"},
		{ID: 2, Name: "Arepa"},
		{ID: 3, Name: "CAFE"},
	}
	result := mustQuery(t, products, nil, Criteria{Sort: SortNameAsc})

	want := []uint{2, 1, 3}
	if !reflect.DeepEqual(itemIDs(result), want) {
		t.Errorf("expected order %v, got %v", want, itemIDs(result))
	}
}

func TestQueryIsDeterministic(t *testing.T) {
	products := testProducts()
	categories := testCategories()
	crit := Criteria{Sort: SortFeatured, Search: "a"}

	first := mustQuery(t, products, categories, crit)
	second := mustQuery(t, products, categories, crit)

	if !reflect.DeepEqual(itemIDs(first), itemIDs(second)) {
		t.Errorf("repeated query returned different order: %v vs %v", itemIDs(first), itemIDs(second))
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	products := testProducts()
	var inputOrder []uint
	for _, p := range products {
		inputOrder = append(inputOrder, p.ID)
	}

	mustQuery(t, products, testCategories(), Criteria{Sort: SortPriceDesc})

	var after []uint
	for _, p := range products {
		after = append(after, p.ID)
	}
	if !reflect.DeepEqual(inputOrder, after) {
		t.Errorf("input slice was reordered: %v -> %v", inputOrder, after)
	}
}

func TestQueryUnknownSortKeyIsInvalidCriteria(t *testing.T) {
	_, err := Query(testProducts(), testCategories(), Criteria{Sort: "cheapest"})
	if err == nil {
		t.Fatal("expected an error for unknown sort key")
	}
	invalid, ok := err.(*InvalidCriteriaError)
	if !ok {
		t.Fatalf("expected InvalidCriteriaError, got %T", err)
	}
	if _, present := invalid.Fields["sort"]; !present {
		t.Errorf("expected sort field error, got %v", invalid.Fields)
	}
}

func TestQueryNegativePriceBoundIsInvalidCriteria(t *testing.T) {
	_, err := Query(testProducts(), testCategories(), Criteria{MinPrice: decp(-5)})
	if err == nil {
		t.Fatal("expected an error for negative minPrice")
	}
	if _, ok := err.(*InvalidCriteriaError); !ok {
		t.Fatalf("expected InvalidCriteriaError, got %T", err)
	}
}
