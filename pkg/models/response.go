package models

import (
	"encoding/json"
	"time"
)

// Envelope is the uniform wrapper every API endpoint returns.
// Exactly one of Data or Error is populated.
type Envelope struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	Data      json.RawMessage    `json:"data,omitempty"`
	Error     string             `json:"error,omitempty"`
	Code      string             `json:"code,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time          `json:"timestamp,omitempty"`
}

// ValidationDetail describes one invalid field in a VALIDATION_ERROR response.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination describes one page of a listed collection. Page is 1-indexed.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination builds pagination metadata consistently (totalPages = ceil(total/limit)).
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// PaginatedResponse is the generic shape of list endpoints.
type PaginatedResponse[T any] struct {
	Data []T        `json:"data"`
	Meta Pagination `json:"meta"`
}
