package favorites

import (
	"errors"

	"github.com/example/pharmacare-storefront/internal/domain/product"
)

var ErrInvalidProduct = errors.New("product id is required")

// IDSet is an ordered set of product ids. Methods return new sets.
type IDSet []string

func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s IDSet) Add(id string) IDSet {
	if s.Contains(id) {
		return s.clone()
	}
	return append(s.clone(), id)
}

func (s IDSet) Remove(id string) IDSet {
	out := make(IDSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle removes id when present and adds it otherwise.
func (s IDSet) Toggle(id string) IDSet {
	if s.Contains(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}

// Normalize drops empty and repeated ids, keeping first occurrences.
func Normalize(ids []string) IDSet {
	out := make(IDSet, 0, len(ids))
	for _, id := range ids {
		if id != "" && !out.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s IDSet) clone() IDSet {
	out := make(IDSet, len(s))
	copy(out, s)
	return out
}

// View pairs the id set with the catalog products it selects.
type View struct {
	IDs      IDSet             `json:"ids"`
	Products []product.Product `json:"products"`
}
