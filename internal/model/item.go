package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item represents a user-created content record
type Item struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title     string              `json:"title" bson:"title"`
	Content   string              `json:"content" bson:"content"`
	Owner     *primitive.ObjectID `json:"owner,omitempty" bson:"owner,omitempty"` // creator, when the request was authenticated
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CreateItemRequest is used for creating a new item
type CreateItemRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

// UpdateItemRequest allows partial updates; nil fields are left untouched
type UpdateItemRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// SearchParams are the query parameters of GET /api/items/search
type SearchParams struct {
	Query string `form:"q"`
	Page  int    `form:"page,default=1" validate:"min=1"`
	Limit int    `form:"limit,default=10" validate:"min=1,max=50"`
}

// Pagination describes the window of a search result set
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// SearchResult pairs one page of items with its pagination window
type SearchResult struct {
	Items      []Item     `json:"results"`
	Pagination Pagination `json:"pagination"`
}
