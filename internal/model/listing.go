package model

import "time"

// Listing represents a property row from the structured store.
type Listing struct {
	PropertyID   string     `json:"property_id" db:"property_id"`
	Title        *string    `json:"title,omitempty" db:"title"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Location     *string    `json:"location,omitempty" db:"location"`
	City         *string    `json:"city,omitempty" db:"city"`
	Price        *float64   `json:"price,omitempty" db:"price"`
	Bedrooms     *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int       `json:"bathrooms,omitempty" db:"bathrooms"`
	SquareFeet   *float64   `json:"square_feet,omitempty" db:"square_feet"`
	PropertyType *string    `json:"property_type,omitempty" db:"property_type"`
	Status       *string    `json:"status,omitempty" db:"status"`
	ListedDate   *time.Time `json:"listed_date,omitempty" db:"listed_date"`
}

// Statistics summarizes the structured catalog.
type Statistics struct {
	Total           int      `json:"total"`
	AvgPrice        float64  `json:"avg_price"`
	MinPrice        float64  `json:"min_price"`
	MaxPrice        float64  `json:"max_price"`
	SampleLocations []string `json:"sample_locations"`
}

// RetrievalResult is one candidate returned by the vector store, with its
// similarity score and a provenance citation naming the source.
type RetrievalResult struct {
	PropertyID string  `json:"property_id"`
	Title      string  `json:"title,omitempty"`
	Location   string  `json:"location,omitempty"`
	City       string  `json:"city,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Score      float64 `json:"similarity_score"`
	Provenance string  `json:"citation"`
}
