package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/folio/internal/models"
)

// NewProjects returns the project collection of the portfolio.
func NewProjects(api PortfolioAPI) *Collection[models.Project] {
	return NewCollection(
		func(ctx context.Context) ([]models.Project, error) {
			p, err := api.Get(ctx)
			if err != nil {
				return nil, err
			}
			return p.Projects, nil
		},
		func(ctx context.Context, items []models.Project) error {
			_, err := api.Update(ctx, models.PortfolioUpdate{Projects: &items})
			return err
		},
		func() models.Project {
			return models.Project{Technologies: []string{}}
		},
	)
}

// NewExperiences returns the experience collection of the portfolio. New
// entries start now and are ongoing.
func NewExperiences(api PortfolioAPI, now func() time.Time) *Collection[models.Experience] {
	if now == nil {
		now = time.Now
	}
	return NewCollection(
		func(ctx context.Context) ([]models.Experience, error) {
			p, err := api.Get(ctx)
			if err != nil {
				return nil, err
			}
			return p.Experience, nil
		},
		func(ctx context.Context, items []models.Experience) error {
			_, err := api.Update(ctx, models.PortfolioUpdate{Experience: &items})
			return err
		},
		func() models.Experience {
			return models.Experience{StartDate: now().Unix(), Technologies: []string{}}
		},
	)
}

// DefaultSocialPlatforms are the links the profile form always offers.
var DefaultSocialPlatforms = []string{"twitter", "linkedin", "github", "instagram"}

// ProfileForm is the edit buffer of the profile screen.
type ProfileForm struct {
	api      PortfolioAPI
	original models.Portfolio

	ProfilePicURL string
	Bio           string
	Email         string
	SocialLinks   map[string]string
	AboutContent  string
}

func NewProfileForm(api PortfolioAPI) *ProfileForm {
	return &ProfileForm{api: api}
}

// Load fills the form from the server.
func (f *ProfileForm) Load(ctx context.Context) error {
	p, err := f.api.Get(ctx)
	if err != nil {
		return err
	}
	f.reset(*p)
	return nil
}

func (f *ProfileForm) reset(p models.Portfolio) {
	f.original = p
	f.ProfilePicURL = p.ProfilePicURL
	f.Bio = p.Bio
	f.Email = p.Email
	f.AboutContent = p.AboutContent

	f.SocialLinks = make(map[string]string, len(p.SocialLinks)+len(DefaultSocialPlatforms))
	for _, name := range DefaultSocialPlatforms {
		f.SocialLinks[name] = ""
	}
	for k, v := range p.SocialLinks {
		f.SocialLinks[k] = v
	}
}

// Changes returns an update carrying only the fields that differ from what
// was loaded.
func (f *ProfileForm) Changes() models.PortfolioUpdate {
	var u models.PortfolioUpdate
	if f.ProfilePicURL != f.original.ProfilePicURL {
		u.ProfilePicURL = models.Ptr(f.ProfilePicURL)
	}
	if f.Bio != f.original.Bio {
		u.Bio = models.Ptr(f.Bio)
	}
	if f.Email != f.original.Email {
		u.Email = models.Ptr(f.Email)
	}
	if f.AboutContent != f.original.AboutContent {
		u.AboutContent = models.Ptr(f.AboutContent)
	}
	if links := compactLinks(f.SocialLinks); !sameLinks(links, f.original.SocialLinks) {
		u.SocialLinks = &links
	}
	return u
}

// Save sends the changed fields. It reports false when there was nothing to
// send.
func (f *ProfileForm) Save(ctx context.Context) (bool, error) {
	u := f.Changes()
	if u.Empty() {
		return false, nil
	}

	p, err := f.api.Update(ctx, u)
	if err != nil {
		return false, err
	}
	f.reset(*p)
	return true, nil
}

func compactLinks(links map[string]string) map[string]string {
	out := make(map[string]string, len(links))
	for k, v := range links {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func sameLinks(a, b map[string]string) bool {
	b = compactLinks(b)
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
