package product

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyComment       = errors.New("comment is required")
)

// Product is owned by the remote catalog and never mutated locally.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	Thumbnail     string   `json:"thumbnail"`
	PreviewImages []string `json:"previewImages"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	Reviews       []Review `json:"reviews"`
	InStock       bool     `json:"inStock"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UserName  string    `json:"userName"`
}

// Validate checks the fields a shopper supplies.
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.Comment == "" {
		return ErrEmptyComment
	}
	return nil
}
