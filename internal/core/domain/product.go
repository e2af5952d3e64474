package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
)

// Category groups products for filtering and reporting.
type Category struct {
	ID        int       `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (c Category) EntityID() int { return c.ID }

// Subcategory is a second-level grouping owned by a Category.
type Subcategory struct {
	ID         int       `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	CategoryID int       `json:"categoryId" bson:"category_id"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

func (s Subcategory) EntityID() int { return s.ID }

// Product is a catalogue entry.
type Product struct {
	ID            int          `json:"id" bson:"_id"`
	Name          string       `json:"name" bson:"name"`
	Price         float64      `json:"price" bson:"price"`
	Stock         int          `json:"stock" bson:"stock"`
	CategoryID    int          `json:"categoryId" bson:"category_id"`
	SubcategoryID int          `json:"subcategoryId" bson:"subcategory_id"`
	ISBN          string       `json:"isbn" bson:"isbn"`
	CreatedAt     time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updated_at"`
	Category      *Category    `json:"category,omitempty" bson:"-"`
	Subcategory   *Subcategory `json:"subcategory,omitempty" bson:"-"`
}

func (p Product) EntityID() int { return p.ID }
