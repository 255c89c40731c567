package models

import (
	"regexp"
	"strings"
	"time"

	"scorekeeper/pkg/coursematch"
)

// Course is an entry of the known course catalog. Slug is the id exposed to callers.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Slug      string    `gorm:"size:64;uniqueIndex;not null" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Active    bool      `gorm:"default:true;index" json:"active"`
}

// CatalogEntry converts the row into the resolver's catalog shape.
func (c Course) CatalogEntry() coursematch.Course {
	return coursematch.Course{ID: c.Slug, Name: c.Name}
}

var slugDropRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a catalog id from a course name ("Bogey's Bonanza" -> "bogey-s-bonanza").
func Slugify(name string) string {
	return strings.Trim(slugDropRE.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
