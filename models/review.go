package models

import "time"

type Review struct {
	ID        string    `bson:"id" json:"id"`
	ServiceID string    `bson:"serviceId" json:"serviceId"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Language  string    `bson:"language" json:"language"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewInput is what a citizen submits.
type ReviewInput struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"max=2000"`
	Language string `json:"language"`
}

// Page describes a slice of a larger result set.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPage computes TotalPages for the given position.
func NewPage(page, limit int, total int64) Page {
	p := Page{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return p
}
