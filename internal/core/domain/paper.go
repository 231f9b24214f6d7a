package domain

import (
	"cmp"
	"time"
)

type Paper struct {
	ID      string   `json:"id" bson:"_id"`
	Title   string   `json:"title" bson:"title"`
	Authors []string `json:"authors" bson:"authors"`
	Journal string   `json:"journal,omitempty" bson:"journal,omitempty"`
	Year    int      `json:"year,omitempty" bson:"year,omitempty"`
	Link    string   `json:"link,omitempty" bson:"link,omitempty"`

	Timestamps `bson:",inline"`
}

func NewPaper() *Paper { return &Paper{Authors: []string{}} }

// ComparePapers orders papers by publication year, most recent first.
func ComparePapers(a, b *Paper) int { return cmp.Compare(b.Year, a.Year) }

func (p *Paper) ResourceID() string      { return p.ID }
func (p *Paper) SetResourceID(id string) { p.ID = id }

func (p *Paper) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	for _, a := range p.Authors {
		if err := required("author name", a); err != nil {
			return err
		}
	}
	return nil
}

func (p *Paper) Stamp(now time.Time) {
	p.Authors = nonNil(p.Authors)
	p.stamp(now)
}

type PaperPatch struct {
	Title   *string   `json:"title"`
	Authors *[]string `json:"authors"`
	Journal *string   `json:"journal"`
	Year    *int      `json:"year"`
	Link    *string   `json:"link"`
}

func (p PaperPatch) ApplyTo(item *Paper) {
	setString(&item.Title, p.Title)
	if p.Authors != nil {
		item.Authors = *p.Authors
	}
	setString(&item.Journal, p.Journal)
	if p.Year != nil {
		item.Year = *p.Year
	}
	setString(&item.Link, p.Link)
}
