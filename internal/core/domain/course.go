package domain

import "time"

type Course struct {
	ID              string   `json:"id" bson:"_id"`
	Title           string   `json:"title" bson:"title"`
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
	Semester        string   `json:"semester,omitempty" bson:"semester,omitempty"`
	Image           string   `json:"image,omitempty" bson:"image,omitempty"`
	YouTubePlaylist string   `json:"youtubePlaylist,omitempty" bson:"youtube_playlist,omitempty"`
	Materials       []string `json:"materials" bson:"materials"`

	Timestamps `bson:",inline"`
}

func NewCourse() *Course { return &Course{Materials: []string{}} }

func (c *Course) ResourceID() string      { return c.ID }
func (c *Course) SetResourceID(id string) { c.ID = id }

func (c *Course) Validate() error {
	return required("title", c.Title)
}

func (c *Course) Stamp(now time.Time) {
	c.Materials = nonNil(c.Materials)
	c.stamp(now)
}

type CoursePatch struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Semester        *string   `json:"semester"`
	Image           *string   `json:"image"`
	YouTubePlaylist *string   `json:"youtubePlaylist"`
	Materials       *[]string `json:"materials"`
}

func (p CoursePatch) ApplyTo(item *Course) {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Semester, p.Semester)
	setString(&item.Image, p.Image)
	setString(&item.YouTubePlaylist, p.YouTubePlaylist)
	if p.Materials != nil {
		item.Materials = *p.Materials
	}
}
