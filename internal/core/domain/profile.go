package domain

import (
	"strings"
	"time"
)

// ProfileKey is the fixed document key of the singleton profile.
const ProfileKey = "profile"

type Contact struct {
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
}

type Socials struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
}

// Profile is the public identity of the portfolio owner. At most one exists.
type Profile struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Designation string    `json:"designation,omitempty" bson:"designation,omitempty"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	About       string    `json:"about,omitempty" bson:"about,omitempty"`
	Contact     Contact   `json:"contact" bson:"contact"`
	Socials     Socials   `json:"socials" bson:"socials"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

type ContactPatch struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
}

type SocialsPatch struct {
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
	YouTube   *string `json:"youtube"`
}

// ProfilePatch is a partial profile write. Merge rules:
//   - a nil field keeps the stored value;
//   - scalar fields replace the stored value;
//   - Contact and Socials merge key by key, never replacing the whole block.
type ProfilePatch struct {
	Name        *string       `json:"name"`
	Designation *string       `json:"designation"`
	Bio         *string       `json:"bio"`
	About       *string       `json:"about"`
	Contact     *ContactPatch `json:"contact"`
	Socials     *SocialsPatch `json:"socials"`
	Photo       *string       `json:"photo"`
}

// Normalize trims the name and designation.
func (p *ProfilePatch) Normalize() {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.Designation != nil {
		v := strings.TrimSpace(*p.Designation)
		p.Designation = &v
	}
}

// Validate rejects a patch that would blank the required name.
func (p ProfilePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name is required")
	}
	return nil
}

// HasName reports whether the patch carries a name, which creation requires.
func (p ProfilePatch) HasName() bool {
	return p.Name != nil && strings.TrimSpace(*p.Name) != ""
}

// ApplyTo merges the patch onto profile following the documented rules.
func (p ProfilePatch) ApplyTo(profile *Profile) {
	setString(&profile.Name, p.Name)
	setString(&profile.Designation, p.Designation)
	setString(&profile.Bio, p.Bio)
	setString(&profile.About, p.About)
	setString(&profile.Photo, p.Photo)
	if c := p.Contact; c != nil {
		setString(&profile.Contact.Email, c.Email)
		setString(&profile.Contact.Phone, c.Phone)
		setString(&profile.Contact.Website, c.Website)
	}
	if s := p.Socials; s != nil {
		setString(&profile.Socials.Facebook, s.Facebook)
		setString(&profile.Socials.Instagram, s.Instagram)
		setString(&profile.Socials.LinkedIn, s.LinkedIn)
		setString(&profile.Socials.YouTube, s.YouTube)
	}
}

// SetFields flattens the patch into stored field paths, nested blocks as
// dotted keys, so a document store can merge it atomically.
func (p ProfilePatch) SetFields() map[string]any {
	out := make(map[string]any)
	put := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	put("name", p.Name)
	put("designation", p.Designation)
	put("bio", p.Bio)
	put("about", p.About)
	put("photo", p.Photo)
	if c := p.Contact; c != nil {
		put("contact.email", c.Email)
		put("contact.phone", c.Phone)
		put("contact.website", c.Website)
	}
	if s := p.Socials; s != nil {
		put("socials.facebook", s.Facebook)
		put("socials.instagram", s.Instagram)
		put("socials.linkedin", s.LinkedIn)
		put("socials.youtube", s.YouTube)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
