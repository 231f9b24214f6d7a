package domain

import (
	"time"

	"github.com/gosimple/slug"
)

type Blog struct {
	ID          string   `json:"id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Slug        string   `json:"slug" bson:"slug"`
	Content     string   `json:"content" bson:"content"`
	Tags        []string `json:"tags" bson:"tags"`
	Published   bool     `json:"published" bson:"published"`
	WordCount   int      `json:"wordCount" bson:"word_count"`
	ReadingTime int      `json:"readingTime" bson:"reading_time"`

	Timestamps `bson:",inline"`
}

// NewBlog returns a blog with defaults applied: published, no tags.
func NewBlog() *Blog { return &Blog{Published: true, Tags: []string{}} }

func (b *Blog) ResourceID() string      { return b.ID }
func (b *Blog) SetResourceID(id string) { b.ID = id }
func (b *Blog) IsPublished() bool       { return b.Published }

func (b *Blog) Validate() error {
	if err := required("title", b.Title); err != nil {
		return err
	}
	return required("content", b.Content)
}

// Stamp refreshes the slug and reading statistics from the current content.
func (b *Blog) Stamp(now time.Time) {
	b.Tags = nonNil(b.Tags)
	b.Slug = slug.Make(b.Title)
	stats := ReadingStats(b.Content)
	b.WordCount = stats.WordCount
	b.ReadingTime = stats.Minutes
	b.stamp(now)
}

type BlogPatch struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
}

func (p BlogPatch) ApplyTo(item *Blog) {
	setString(&item.Title, p.Title)
	setString(&item.Content, p.Content)
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.Published != nil {
		item.Published = *p.Published
	}
}
