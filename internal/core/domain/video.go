package domain

import "time"

const (
	PlatformYouTube   = "youtube"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformOther     = "other"
)

type Video struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	URL         string `json:"url" bson:"url"`
	Platform    string `json:"platform" bson:"platform"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Published   bool   `json:"published" bson:"published"`

	Timestamps `bson:",inline"`
}

// NewVideo returns a published YouTube video, the defaults for new items.
func NewVideo() *Video { return &Video{Platform: PlatformYouTube, Published: true} }

func (v *Video) ResourceID() string      { return v.ID }
func (v *Video) SetResourceID(id string) { v.ID = id }
func (v *Video) IsPublished() bool       { return v.Published }

func (v *Video) Validate() error {
	if err := required("title", v.Title); err != nil {
		return err
	}
	if err := required("url", v.URL); err != nil {
		return err
	}
	switch v.Platform {
	case PlatformYouTube, PlatformFacebook, PlatformInstagram, PlatformOther:
		return nil
	default:
		return Invalid("platform must be one of: youtube facebook instagram other")
	}
}

func (v *Video) Stamp(now time.Time) { v.stamp(now) }

type VideoPatch struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Platform    *string `json:"platform"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}

func (p VideoPatch) ApplyTo(item *Video) {
	setString(&item.Title, p.Title)
	setString(&item.URL, p.URL)
	setString(&item.Platform, p.Platform)
	setString(&item.Description, p.Description)
	if p.Published != nil {
		item.Published = *p.Published
	}
}
