// Package advisor answers free-text symptom questions from a static,
// prioritized rule table and suggests matching products from the catalog.
package advisor

import (
	"sort"
	"strings"

	"github.com/example/pharmacare-storefront/internal/domain/product"
)

const (
	DefaultLimit = 5

	Disclaimer = "Thông tin chỉ mang tính chất tham khảo. Vui lòng hỏi ý kiến bác sĩ hoặc dược sĩ để được chẩn đoán và điều trị chính xác."
	Fallback   = "Xin lỗi, tôi chưa hiểu rõ triệu chứng của bạn. Bạn có thể mô tả cụ thể hơn, ví dụ: sốt, ho, đau bụng, dị ứng?"
)

// Predicate selects products relevant to a rule.
type Predicate func(p product.Product) bool

// Rule maps a set of keywords onto a response. Any keyword matching as a
// whole phrase fires the rule.
type Rule struct {
	Name     string
	Priority int
	Keywords []string
	Response string
	Products Predicate
}

// Reply is the advisor's answer to one message.
type Reply struct {
	Rule       string            `json:"rule"`
	Message    string            `json:"message"`
	Disclaimer string            `json:"disclaimer"`
	Products   []product.Product `json:"products"`
}

type compiledRule struct {
	Rule
	phrases [][]string
}

// Advisor is safe for concurrent use.
type Advisor struct {
	rules []compiledRule
	limit int
}

// New builds an advisor over rules; higher priority wins, ties keep table order.
func New(rules []Rule, limit int) *Advisor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		c := compiledRule{Rule: r}
		for _, k := range r.Keywords {
			if words := tokens(k); len(words) > 0 {
				c.phrases = append(c.phrases, words)
			}
		}
		compiled = append(compiled, c)
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return &Advisor{rules: compiled, limit: limit}
}

// Default returns the advisor with the built-in rule table.
func Default() *Advisor {
	return New(DefaultRules(), DefaultLimit)
}

// Advise picks the first matching rule for message and suggests products
// from catalog. In-stock products are listed first.
func (a *Advisor) Advise(message string, catalog []product.Product) Reply {
	words := tokens(message)
	for _, r := range a.rules {
		if !r.matches(words) {
			continue
		}
		return Reply{
			Rule:       r.Name,
			Message:    r.Response,
			Disclaimer: Disclaimer,
			Products:   a.suggest(r.Products, catalog),
		}
	}
	return Reply{
		Message:    Fallback,
		Disclaimer: Disclaimer,
		Products:   []product.Product{},
	}
}

func (r compiledRule) matches(words []string) bool {
	for _, phrase := range r.phrases {
		if containsPhrase(words, phrase) {
			return true
		}
	}
	return false
}

func (a *Advisor) suggest(pred Predicate, catalog []product.Product) []product.Product {
	out := []product.Product{}
	if pred == nil {
		return out
	}
	for _, p := range catalog {
		if pred(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InStock && !out[j].InStock
	})
	if len(out) > a.limit {
		out = out[:a.limit]
	}
	return out
}

// Mentions matches products whose name, description or category contains
// any of terms, ignoring case and diacritics.
func Mentions(terms ...string) Predicate {
	folded := make([]string, 0, len(terms))
	for _, t := range terms {
		if f := Fold(strings.TrimSpace(t)); f != "" {
			folded = append(folded, f)
		}
	}
	return func(p product.Product) bool {
		haystack := Fold(p.Name + " " + p.Description + " " + p.Category)
		for _, t := range folded {
			if strings.Contains(haystack, t) {
				return true
			}
		}
		return false
	}
}

// InCategory matches products whose category contains category.
func InCategory(category string) Predicate {
	want := Fold(category)
	return func(p product.Product) bool {
		return strings.Contains(Fold(p.Category), want)
	}
}
