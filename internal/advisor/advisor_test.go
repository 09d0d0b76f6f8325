package advisor

import (
	"sync"
	"testing"

	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []product.Product{
	{ID: "1", Name: "Paracetamol 500mg", Description: "Thuốc hạ sốt, giảm đau", Category: "Thuốc không kê đơn", Price: 15000, InStock: true},
	{ID: "2", Name: "Siro ho Prospan", Description: "Siro ho thảo dược", Category: "Thuốc không kê đơn", Price: 85000, InStock: true},
	{ID: "3", Name: "Vitamin C 1000mg", Description: "Tăng sức đề kháng", Category: "Thực phẩm chức năng", Price: 120000, InStock: false},
	{ID: "4", Name: "Men vi sinh Enterogermina", Description: "Hỗ trợ tiêu hóa", Category: "Thuốc không kê đơn", Price: 9000, InStock: true},
	{ID: "5", Name: "Máy đo huyết áp Omron", Description: "Đo huyết áp bắp tay", Category: "Thiết bị y tế", Price: 950000, InStock: true},
	{ID: "6", Name: "Omega 3", Description: "Dầu cá", Category: "Thực phẩm chức năng", Price: 300000, InStock: true},
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Đau đầu", "dau dau"},
		{"SỐT cao", "sot cao"},
		{"Tiêu chảy", "tieu chay"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestContainsPhrase(t *testing.T) {
	words := tokens("Tôi bị đau bụng và tiêu chảy")

	assert.True(t, containsPhrase(words, []string{"dau", "bung"}))
	assert.True(t, containsPhrase(words, []string{"tieu", "chay"}))
	assert.False(t, containsPhrase(words, []string{"bung", "dau"}))
	assert.False(t, containsPhrase(words, nil))
}

func TestAdvise_MatchesIgnoringDiacritics(t *testing.T) {
	a := Default()

	for _, msg := range []string{"Tôi bị sốt", "toi bi sot", "TÔI BỊ SỐT!!"} {
		reply := a.Advise(msg, testCatalog)
		assert.Equal(t, "fever", reply.Rule, msg)
	}
}

func TestAdvise_SuggestsProducts(t *testing.T) {
	reply := Default().Advise("con tôi bị đau đầu", testCatalog)

	require.Equal(t, "fever", reply.Rule)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "1", reply.Products[0].ID)
	assert.NotEmpty(t, reply.Disclaimer)
}

func TestAdvise_WholeWordsOnly(t *testing.T) {
	// "không" must not trigger the cough rule
	reply := Default().Advise("không có gì", testCatalog)

	assert.Empty(t, reply.Rule)
	assert.Equal(t, Fallback, reply.Message)
	assert.NotNil(t, reply.Products)
	assert.Empty(t, reply.Products)
}

func TestAdvise_PriorityWins(t *testing.T) {
	reply := Default().Advise("tôi bị sốt và khó thở", testCatalog)

	assert.Equal(t, "emergency", reply.Rule)
	assert.Empty(t, reply.Products)
}

func TestAdvise_TiesKeepTableOrder(t *testing.T) {
	a := New([]Rule{
		{Name: "first", Priority: 1, Keywords: []string{"ho"}},
		{Name: "second", Priority: 1, Keywords: []string{"ho"}},
	}, 0)

	assert.Equal(t, "first", a.Advise("ho", nil).Rule)
}

func TestAdvise_InStockFirstAndLimit(t *testing.T) {
	a := New([]Rule{
		{Name: "supplements", Keywords: []string{"vitamin"}, Products: InCategory("thuc pham chuc nang")},
	}, 1)

	reply := a.Advise("Vitamin", testCatalog)

	require.Len(t, reply.Products, 1)
	assert.Equal(t, "6", reply.Products[0].ID)
}

func TestAdvise_Categories(t *testing.T) {
	tests := []struct {
		msg     string
		rule    string
		product string
	}{
		{"ho khan mấy ngày", "respiratory", "2"},
		{"bị tiêu chảy", "digestive", "4"},
		{"muốn mua máy đo huyết áp", "monitoring", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			reply := Default().Advise(tt.msg, testCatalog)

			assert.Equal(t, tt.rule, reply.Rule)
			ids := make([]string, 0, len(reply.Products))
			for _, p := range reply.Products {
				ids = append(ids, p.ID)
			}
			assert.Contains(t, ids, tt.product)
		})
	}
}

func TestAdvise_Concurrent(t *testing.T) {
	a := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "fever", a.Advise("sốt", testCatalog).Rule)
		}()
	}
	wg.Wait()
}
