package models

import "encoding/json"

// Portfolio is the single profile record of a deployment.
type Portfolio struct {
	ProfilePicURL string            `json:"profile_pic_url"`
	Bio           string            `json:"bio"`
	Email         string            `json:"email"`
	SocialLinks   map[string]string `json:"social_links"`
	AboutContent  string            `json:"about_content"`
	Projects      []Project         `json:"projects"`
	Experience    []Experience      `json:"experience"`
	UpdatedAt     int64             `json:"updated_at,omitempty"`
}

// PortfolioUpdate is a partial Portfolio. Nil fields are left untouched by
// the server merge.
type PortfolioUpdate struct {
	ProfilePicURL *string            `json:"profile_pic_url,omitempty"`
	Bio           *string            `json:"bio,omitempty"`
	Email         *string            `json:"email,omitempty"`
	SocialLinks   *map[string]string `json:"social_links,omitempty"`
	AboutContent  *string            `json:"about_content,omitempty"`
	Projects      *[]Project         `json:"projects,omitempty"`
	Experience    *[]Experience      `json:"experience,omitempty"`
}

// Empty reports whether u carries no field at all.
func (u PortfolioUpdate) Empty() bool {
	return u.ProfilePicURL == nil && u.Bio == nil && u.Email == nil && u.SocialLinks == nil &&
		u.AboutContent == nil && u.Projects == nil && u.Experience == nil
}

// Apply merges the present fields of u into p.
func (u PortfolioUpdate) Apply(p *Portfolio) {
	if u.ProfilePicURL != nil {
		p.ProfilePicURL = *u.ProfilePicURL
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.SocialLinks != nil {
		p.SocialLinks = *u.SocialLinks
	}
	if u.AboutContent != nil {
		p.AboutContent = *u.AboutContent
	}
	if u.Projects != nil {
		p.Projects = *u.Projects
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
}

// Project is one entry of Portfolio.Projects.
type Project struct {
	ID           ID       `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

func (p Project) Key() ID { return p.ID }

func (p Project) WithKey(id ID) Project {
	p.ID = id
	return p
}

// Experience is one entry of Portfolio.Experience. EndDate nil means the
// position is ongoing. Dates are Unix seconds.
//
// Title and Company are canonical. Older records used position and
// organization; those names are read as a fallback and never written.
type Experience struct {
	ID           ID       `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	StartDate    int64    `json:"start_date"`
	EndDate      *int64   `json:"end_date"`
	Technologies []string `json:"technologies"`
}

func (e *Experience) UnmarshalJSON(b []byte) error {
	type plain Experience
	var aux struct {
		plain
		Position     string `json:"position"`
		Organization string `json:"organization"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*e = Experience(aux.plain)
	if e.Title == "" {
		e.Title = aux.Position
	}
	if e.Company == "" {
		e.Company = aux.Organization
	}
	return nil
}

func (e Experience) Key() ID { return e.ID }

func (e Experience) WithKey(id ID) Experience {
	e.ID = id
	return e
}

// Ongoing reports whether the position has no end date.
func (e Experience) Ongoing() bool { return e.EndDate == nil }

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.Technologies = append([]string(nil), p.Technologies...)
	return p
}

// Clone returns a copy that shares no slices or pointers with e.
func (e Experience) Clone() Experience {
	e.Technologies = append([]string(nil), e.Technologies...)
	if e.EndDate != nil {
		end := *e.EndDate
		e.EndDate = &end
	}
	return e
}
