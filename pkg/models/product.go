package models

import (
	"sort"
	"time"
)

// Product is a single catalog entry. The catalog is loaded once at startup
// and never mutated afterwards, so products can be shared across requests
// without copying.
type Product struct {
	ID                 string      `json:"product_id" db:"id"`
	Name               string      `json:"name" db:"name"`
	Slug               string      `json:"slug" db:"slug"`
	Category           string      `json:"category" db:"category"`
	Brand              string      `json:"brand" db:"brand"`
	Description        string      `json:"description" db:"description"`
	Price              float64     `json:"price" db:"price"`
	ListPrice          float64     `json:"list_price" db:"list_price"`
	CountInStock       int         `json:"count_in_stock" db:"count_in_stock"`
	Tags               []string    `json:"tags" db:"tags"`
	Colors             []string    `json:"colors" db:"colors"`
	Sizes              []string    `json:"sizes" db:"sizes"`
	Images             []string    `json:"images" db:"images"`
	AvgRating          float64     `json:"avg_rating" db:"avg_rating"`
	NumReviews         int         `json:"num_reviews" db:"num_reviews"`
	RatingDistribution interface{} `json:"rating_distribution,omitempty" db:"rating_distribution"`
	NumSales           int         `json:"num_sales" db:"num_sales"`
	IsPublished        *bool       `json:"is_published,omitempty" db:"is_published"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// Catalog is a read-only product collection keyed by product ID. IDs() returns
// a stable sorted order so candidate iteration is deterministic regardless of
// map iteration order.
type Catalog struct {
	products map[string]Product
	ids      []string
}

func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make(map[string]Product, len(products)),
		ids:      make([]string, 0, len(products)),
	}
	for _, p := range products {
		if _, dup := c.products[p.ID]; dup {
			continue
		}
		c.products[p.ID] = p
		c.ids = append(c.ids, p.ID)
	}
	sort.Strings(c.ids)
	return c
}

func (c *Catalog) Get(productID string) (Product, bool) {
	p, ok := c.products[productID]
	return p, ok
}

// IDs returns all product IDs in sorted order. Callers must not mutate the
// returned slice.
func (c *Catalog) IDs() []string {
	return c.ids
}

func (c *Catalog) Len() int {
	return len(c.products)
}
