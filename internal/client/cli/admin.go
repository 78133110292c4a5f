package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
)

const (
	dashboardPath      = "/admin/dashboard"
	editProfilePath    = "/admin/edit-profile"
	editProjectsPath   = "/admin/edit-projects"
	editExperiencePath = "/admin/edit-experience"
	manageBlogsPath    = "/admin/manage-blogs"

	monthLayout = "2006-01"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in.")
		return a.Dashboard(ctx)
	}

	a.loggingIn = true
	pctx, err := a.enter(ctx, common.LoginPath)
	a.loggingIn = false
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(pctx, email, password); err != nil {
		return err
	}
	a.logger.Info(ctx, "admin logged in", "email", email)
	a.println("Login successful.")
	return a.Dashboard(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear stored session", "error", err)
	}
	if _, err := a.enter(ctx, "/"); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.auth.Refresh(ctx); err != nil {
		return err
	}
	a.println("Session refreshed.")
	return nil
}

// requireAdmin is the route gate for admin actions that have no page of
// their own.
func (a *App) requireAdmin() error {
	if a.isLoggedIn() {
		return nil
	}
	a.router.Enter(common.LoginPath, a.isLoggedIn)
	return errLoginRequired
}

func (a *App) Dashboard(ctx context.Context) error {
	if _, err := a.enter(ctx, dashboardPath); err != nil {
		return err
	}

	stats, live, err := services.Load(a.page, func(ctx context.Context) (services.Stats, error) {
		return services.Dashboard(ctx, a.api.Portfolio, a.api.Blogs)
	})
	if !live {
		return nil
	}
	if err != nil {
		return err
	}

	blogs := strconv.Itoa(stats.Blogs)
	if stats.MoreBlogs {
		blogs += "+"
	}
	a.println("Dashboard")
	a.printf("  Blog posts: %s\n  Projects:   %d\n  Experience: %d\n", blogs, stats.Projects, stats.Experience)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	pctx, err := a.enter(ctx, editProfilePath)
	if err != nil {
		return err
	}

	form := services.NewProfileForm(a.api.Portfolio)
	if err := form.Load(pctx); err != nil {
		return err
	}

	a.println("Edit profile (press Enter to keep the current value)")
	fields := []struct {
		label string
		value *string
	}{
		{"Profile picture URL", &form.ProfilePicURL},
		{"Bio", &form.Bio},
		{"Email", &form.Email},
	}
	for _, f := range fields {
		if *f.value, err = GetTextWithDefault(a.reader, f.label, *f.value, a.out); err != nil {
			return err
		}
	}

	for _, name := range socialPlatforms(form.SocialLinks) {
		v, err := GetTextWithDefault(a.reader, name+" URL ('-' to clear)", form.SocialLinks[name], a.out)
		if err != nil {
			return err
		}
		if v == "-" {
			v = ""
		}
		form.SocialLinks[name] = v
	}

	about, err := GetMultiline(a.reader, "About (HTML, empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if about != "" {
		form.AboutContent = about
	}

	saved, err := form.Save(pctx)
	if err != nil {
		return err
	}
	if !saved {
		a.println("No changes to save.")
		return nil
	}
	a.println("Profile updated successfully!")
	return nil
}

// socialPlatforms lists the default platforms first, then any others in
// name order.
func socialPlatforms(links map[string]string) []string {
	names := append([]string(nil), services.DefaultSocialPlatforms...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	var extra []string
	for n := range links {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func (a *App) EditProjects(ctx context.Context, args []string) error {
	return editCollection(ctx, a, editProjectsPath, &a.projects,
		func() *services.Collection[models.Project] { return services.NewProjects(a.api.Portfolio) },
		a.promptProject, a.printProject, args)
}

func (a *App) EditExperience(ctx context.Context, args []string) error {
	return editCollection(ctx, a, editExperiencePath, &a.experiences,
		func() *services.Collection[models.Experience] { return services.NewExperiences(a.api.Portfolio, a.now) },
		a.promptExperience, a.printExperience, args)
}

// editCollection runs one subcommand of a collection screen. Entering the
// screen loads the collection; leaving it drops unsaved edits.
func editCollection[T services.Entry[T]](
	ctx context.Context,
	a *App,
	path string,
	coll **services.Collection[T],
	create func() *services.Collection[T],
	prompt func(T) (T, error),
	show func(int, T),
	args []string,
) error {
	pctx, onPage := a.stay(path)
	if !onPage || *coll == nil {
		var err error
		if pctx, err = a.enter(ctx, path); err != nil {
			return err
		}
		c := create()
		if err := c.Load(pctx); err != nil {
			return err
		}
		*coll = c
	}
	c := *coll

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		items := c.Items()
		if len(items) == 0 {
			a.println("Nothing here yet. Type 'add' after the command to create an entry.")
		}
		for i, it := range items {
			show(i, it)
		}
		if _, editing := c.Buffer(); editing {
			a.println("An entry is open for editing: 'update' to apply it, 'cancel' to drop it.")
		}

	case "add":
		pos := c.Add()
		if err := fillBuffer(c, prompt); err != nil {
			return err
		}
		a.printf("Entry %d added. 'update' applies the changes, 'save' publishes the list.\n", pos+1)

	case "edit":
		i, err := position(args)
		if err != nil {
			return err
		}
		if err := c.Edit(i); err != nil {
			return err
		}
		if err := fillBuffer(c, prompt); err != nil {
			return err
		}
		a.println("Edited. 'update' applies the changes.")

	case "update":
		if err := c.Update(); err != nil {
			return err
		}
		a.println("Updated locally. 'save' publishes the list.")

	case "cancel":
		c.Cancel()

	case "delete":
		i, err := position(args)
		if err != nil {
			return err
		}
		err = c.Delete(i, func(T) bool {
			return Confirm(a.reader, fmt.Sprintf("Delete entry %d?", i+1), a.out)
		})
		if errors.Is(err, services.ErrNotConfirmed) {
			a.println("Kept.")
			return nil
		}
		if err != nil {
			return err
		}
		a.println("Deleted locally. 'save' publishes the list.")

	case "save":
		if err := c.Save(pctx); err != nil {
			return err
		}
		a.println("Saved.")

	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}
	return nil
}

func fillBuffer[T services.Entry[T]](c *services.Collection[T], prompt func(T) (T, error)) error {
	buf, _ := c.Buffer()
	buf, err := prompt(buf)
	if err != nil {
		return err
	}
	return c.SetBuffer(buf)
}

// position parses the 1-based entry number in args[1].
func position(args []string) (int, error) {
	if len(args) < 2 {
		return 0, errors.New("entry number required")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid entry number %q", args[1])
	}
	return n - 1, nil
}

func (a *App) promptProject(p models.Project) (models.Project, error) {
	var err error
	if p.Title, err = GetTextWithDefault(a.reader, "Title", p.Title, a.out); err != nil {
		return p, err
	}
	if p.Description, err = GetTextWithDefault(a.reader, "Description", p.Description, a.out); err != nil {
		return p, err
	}
	if p.ImageURL, err = GetTextWithDefault(a.reader, "Image URL", p.ImageURL, a.out); err != nil {
		return p, err
	}
	tech, err := GetTextWithDefault(a.reader, "Technologies (comma separated)", strings.Join(p.Technologies, ", "), a.out)
	if err != nil {
		return p, err
	}
	p.Technologies = services.ParseTags(tech)
	if p.Link, err = GetTextWithDefault(a.reader, "Link", p.Link, a.out); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) promptExperience(e models.Experience) (models.Experience, error) {
	var err error
	if e.Title, err = GetTextWithDefault(a.reader, "Title", e.Title, a.out); err != nil {
		return e, err
	}
	if e.Company, err = GetTextWithDefault(a.reader, "Company", e.Company, a.out); err != nil {
		return e, err
	}
	if e.Description, err = GetTextWithDefault(a.reader, "Description", e.Description, a.out); err != nil {
		return e, err
	}

	start, err := GetTextWithDefault(a.reader, "Start (YYYY-MM)", a.month(e.StartDate), a.out)
	if err != nil {
		return e, err
	}
	if e.StartDate, err = a.parseMonth(start); err != nil {
		return e, err
	}

	end := "present"
	if e.EndDate != nil {
		end = a.month(*e.EndDate)
	}
	if end, err = GetTextWithDefault(a.reader, "End (YYYY-MM or 'present')", end, a.out); err != nil {
		return e, err
	}
	if strings.EqualFold(end, "present") {
		e.EndDate = nil
	} else {
		ts, err := a.parseMonth(end)
		if err != nil {
			return e, err
		}
		e.EndDate = &ts
	}

	tech, err := GetTextWithDefault(a.reader, "Technologies (comma separated)", strings.Join(e.Technologies, ", "), a.out)
	if err != nil {
		return e, err
	}
	e.Technologies = services.ParseTags(tech)
	return e, nil
}

func (a *App) month(unix int64) string {
	return time.Unix(unix, 0).In(a.loc).Format(monthLayout)
}

func (a *App) parseMonth(s string) (int64, error) {
	t, err := time.ParseInLocation(monthLayout, s, a.loc)
	if err != nil {
		return 0, common.Invalid(fmt.Sprintf("Invalid date %q, expected YYYY-MM", s))
	}
	return t.Unix(), nil
}

func (a *App) Posts(ctx context.Context, args []string) error {
	pctx, onPage := a.stay(manageBlogsPath)
	if !onPage || a.blogs == nil {
		var err error
		if pctx, err = a.enter(ctx, manageBlogsPath); err != nil {
			return err
		}
		m := services.NewBlogManager(a.api.Blogs)
		if err := m.Load(pctx); err != nil {
			return err
		}
		a.blogs = m
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		posts := a.blogs.Posts()
		if len(posts) == 0 {
			a.println("No posts yet. 'posts new' writes one.")
		}
		for _, b := range posts {
			a.printf("%-36s %-20s %s\n    /%s\n", b.BlogID, services.PostDate(b.PublishedAt, a.loc), b.Title, b.Slug)
		}

	case "new":
		e := services.NewBlogEditor(nil)
		if err := a.promptPost(e); err != nil {
			return err
		}
		b, err := a.blogs.Create(pctx, e)
		if err != nil {
			return err
		}
		a.printf("Created %q at /blog/%s\n", b.Title, b.Slug)

	case "edit":
		if len(args) < 2 {
			return errors.New("usage: posts edit <id>")
		}
		existing, ok := a.blogs.Find(args[1])
		if !ok {
			a.println(services.PostNotFoundTitle)
			return nil
		}
		e := services.NewBlogEditor(&existing)
		if err := a.promptPost(e); err != nil {
			return err
		}
		if _, err := a.blogs.Update(pctx, existing.BlogID, e); err != nil {
			return err
		}
		a.println("Post updated.")

	case "delete":
		if len(args) < 2 {
			return errors.New("usage: posts delete <id>")
		}
		existing, ok := a.blogs.Find(args[1])
		if !ok {
			a.println(services.PostNotFoundTitle)
			return nil
		}
		err := a.blogs.Delete(pctx, existing.BlogID, func() bool {
			return Confirm(a.reader, fmt.Sprintf("Delete %q?", existing.Title), a.out)
		})
		if errors.Is(err, services.ErrNotConfirmed) {
			a.println("Kept.")
			return nil
		}
		if err != nil {
			return err
		}
		a.println("Post deleted.")

	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}
	return nil
}

func (a *App) promptPost(e *services.BlogEditor) error {
	title, err := GetTextWithDefault(a.reader, "Title", e.Title(), a.out)
	if err != nil {
		return err
	}
	e.SetTitle(title)

	s, err := GetSimpleText(a.reader, fmt.Sprintf("Slug [%s]", e.Slug()), a.out)
	if err != nil {
		return err
	}
	if s != "" {
		e.SetSlug(s)
	}

	content, err := GetMultiline(a.reader, "Content (HTML)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		e.Content = content
	}

	if e.FeaturedImageURL, err = GetTextWithDefault(a.reader, "Featured image URL", e.FeaturedImageURL, a.out); err != nil {
		return err
	}
	tags, err := GetTextWithDefault(a.reader, "Tags (comma separated)", strings.Join(e.Tags, ", "), a.out)
	if err != nil {
		return err
	}
	e.SetTags(tags)
	if e.Category, err = GetTextWithDefault(a.reader, "Category", e.Category, a.out); err != nil {
		return err
	}
	if e.SEODescription, err = GetTextWithDefault(a.reader, "SEO description (150-160 chars)", e.SEODescription, a.out); err != nil {
		return err
	}
	return nil
}

// Comments handles "comments delete <id>".
func (a *App) Comments(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 2 || args[0] != "delete" {
		return errors.New("usage: comments delete <id>")
	}
	if !Confirm(a.reader, "Delete comment "+args[1]+"?", a.out) {
		a.println("Kept.")
		return nil
	}
	if err := a.api.Comments.Delete(ctx, args[1]); err != nil {
		return err
	}
	if a.post != nil {
		kept := a.post.Comments[:0]
		for _, c := range a.post.Comments {
			if c.CommentID != args[1] {
				kept = append(kept, c)
			}
		}
		a.post.Comments = kept
	}
	a.println("Comment deleted.")
	return nil
}
