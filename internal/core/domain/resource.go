package domain

import (
	"strings"
	"time"
)

const (
	KindPaper  = "paper"
	KindCourse = "course"
	KindBlog   = "blog"
	KindVideo  = "video"
)

// Resource is an item of one of the public collections (papers, courses,
// blogs, videos). Implementations are pointer types.
type Resource interface {
	ResourceID() string
	SetResourceID(id string)
	// Validate checks required fields before the item is persisted.
	Validate() error
	// Stamp sets timestamps and derived fields before the item is persisted.
	Stamp(now time.Time)
}

// Publishable is implemented by resources with a draft/published flag.
type Publishable interface {
	IsPublished() bool
}

// Patch is a typed partial update for a resource: nil fields are kept.
type Patch[T Resource] interface {
	ApplyTo(item T)
}

// ResourceFilter narrows a collection listing.
type ResourceFilter struct {
	PublishedOnly bool
}

// Timestamps is embedded by every resource.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (t *Timestamps) stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid("%s is required", field)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
