package product

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func testCatalog() []Product {
	return []Product{
		{ID: "p1", Name: "Paracetamol 500mg", Category: "Thuốc không kê đơn", Description: "Giảm đau, hạ sốt", Price: 25000},
		{ID: "p2", Name: "Vitamin C 1000", Category: "Thực phẩm chức năng", Description: "Tăng sức đề kháng", Price: 120000},
		{ID: "p3", Name: "Amoxicillin", Category: "Thuốc kê đơn", Description: "Kháng sinh", Price: 80000},
		{ID: "p4", Name: "Máy đo huyết áp", Category: "Thiết bị y tế", Description: "Đo huyết áp bắp tay", Price: 950000},
		{ID: "p5", Name: "Kem chống nắng", Category: "Sản phẩm làm đẹp", Description: "SPF 50, dịu nhẹ cho da", Price: 310000},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

// ============================================
// Filter Tests
// ============================================

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"no filters", "", "", []string{"p1", "p2", "p3", "p4", "p5"}},
		{"blank query ignored", "   ", "", []string{"p1", "p2", "p3", "p4", "p5"}},
		{"query matches name", "vitamin", "", []string{"p2"}},
		{"query is case-insensitive", "PARACETAMOL", "", []string{"p1"}},
		{"query matches description", "kháng", "", []string{"p2", "p3"}},
		{"query matches category", "thiết bị", "", []string{"p4"}},
		{"category substring", "", "kê đơn", []string{"p1", "p3"}},
		{"category is case-insensitive", "", "THUỐC KÊ ĐƠN", []string{"p1", "p3"}},
		{"both filters apply together", "kháng", "thuốc", []string{"p3"}},
		{"no match", "insulin", "", []string{}},
		{"category excludes query match", "vitamin", "thiết bị", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testCatalog(), tt.query, tt.category)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	catalog := testCatalog()
	for i := 0; i < 20; i++ {
		catalog = append(catalog, Product{
			ID:          gofakeit.UUID(),
			Name:        gofakeit.ProductName(),
			Category:    gofakeit.RandomString([]string{"Thuốc kê đơn", "Thiết bị y tế", "Chăm sóc sức khỏe"}),
			Description: gofakeit.ProductDescription(),
		})
	}

	cases := [][2]string{{"", ""}, {"a", ""}, {"", "thuốc"}, {"e", "y tế"}, {"kháng", "kê"}}
	for _, c := range cases {
		once := Filter(catalog, c[0], c[1])
		twice := Filter(once, c[0], c[1])
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Filter(%q, %q) not idempotent (-once +twice):\n%s", c[0], c[1], diff)
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)

	got := Filter(catalog, "vitamin", "")
	got[0].Name = "changed"

	assert.Equal(t, before, ids(catalog))
	assert.Equal(t, "Vitamin C 1000", catalog[1].Name)
}

func TestFilter_Deterministic(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, Filter(catalog, "a", "t"), Filter(catalog, "a", "t"))
}

// ============================================
// Categories / Selection Tests
// ============================================

func TestCategories(t *testing.T) {
	catalog := append(testCatalog(),
		Product{ID: "p6", Category: "Thuốc kê đơn"},
		Product{ID: "p7", Category: ""},
	)

	assert.Equal(t, []string{
		"Thuốc không kê đơn",
		"Thực phẩm chức năng",
		"Thuốc kê đơn",
		"Thiết bị y tế",
		"Sản phẩm làm đẹp",
	}, Categories(catalog))
	assert.Empty(t, Categories(nil))
}

func TestSelectByIDs(t *testing.T) {
	got := SelectByIDs(testCatalog(), []string{"p4", "missing", "p1"})
	assert.Equal(t, []string{"p1", "p4"}, ids(got))

	assert.Empty(t, SelectByIDs(testCatalog(), nil))
}

func TestFind(t *testing.T) {
	p, ok := Find(testCatalog(), "p3")
	assert.True(t, ok)
	assert.Equal(t, "Amoxicillin", p.Name)

	_, ok = Find(testCatalog(), "nope")
	assert.False(t, ok)
}
