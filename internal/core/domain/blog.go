package domain

import "time"

// Categories a blog post may be filed under.
var BlogCategories = []string{
	"Research",
	"Sustainability",
	"Innovation",
	"Future",
	"Quality",
	"Global Health",
}

const DefaultBlogAuthor = "Admin"

// ValidCategory reports whether c is one of BlogCategories.
func ValidCategory(c string) bool {
	for _, known := range BlogCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Blog is a post shown on the public site once published.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"isPublished"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
