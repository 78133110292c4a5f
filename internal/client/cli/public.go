package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/models"
)

var (
	errUsageRead   = errors.New("usage: read <slug>")
	errNoPostOpen  = errors.New("open a post first with 'read <slug>'")
	htmlTag        = regexp.MustCompile(`<[^>]*>`)
	blankLineRunes = regexp.MustCompile(`\n{3,}`)
)

// fetchPortfolio loads the portfolio for the page at path. ok is false when
// the user left the page before it arrived.
func (a *App) fetchPortfolio(ctx context.Context, path string) (*models.Portfolio, bool, error) {
	if _, err := a.enter(ctx, path); err != nil {
		return nil, false, err
	}
	p, live, err := services.Load(a.page, a.api.Portfolio.Get)
	if !live || err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (a *App) Home(ctx context.Context) error {
	p, ok, err := a.fetchPortfolio(ctx, "/")
	if !ok {
		return err
	}

	if p.ProfilePicURL != "" {
		a.println("Photo:", p.ProfilePicURL)
	}
	a.println(p.Bio)
	if p.Email != "" {
		a.println("Email:", p.Email)
	}

	names := make([]string, 0, len(p.SocialLinks))
	for name, link := range p.SocialLinks {
		if link != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		a.printf("  %-10s %s\n", name, p.SocialLinks[name])
	}
	return nil
}

func (a *App) About(ctx context.Context) error {
	p, ok, err := a.fetchPortfolio(ctx, "/about")
	if !ok {
		return err
	}
	a.println(plainText(p.AboutContent))
	return nil
}

func (a *App) Projects(ctx context.Context) error {
	p, ok, err := a.fetchPortfolio(ctx, "/projects")
	if !ok {
		return err
	}
	if len(p.Projects) == 0 {
		a.println("No projects yet.")
		return nil
	}
	for i, pr := range p.Projects {
		a.printProject(i, pr)
	}
	return nil
}

func (a *App) Experience(ctx context.Context) error {
	p, ok, err := a.fetchPortfolio(ctx, "/experience")
	if !ok {
		return err
	}
	if len(p.Experience) == 0 {
		a.println("No experience yet.")
		return nil
	}
	for i, e := range p.Experience {
		a.printExperience(i, e)
	}
	return nil
}

// Blogs shows the public post list. "more" loads the next page, "retry"
// repeats a failed load.
func (a *App) Blogs(ctx context.Context, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	pctx, onPage := a.stay("/blog")
	if !onPage || a.feed == nil {
		var err error
		if pctx, err = a.enter(ctx, "/blog"); err != nil {
			return err
		}
		a.feed = services.NewBlogFeed(a.api.Blogs)
		sub = ""
	}

	var err error
	switch sub {
	case "":
		err = a.feed.Load(pctx)
	case "more":
		err = a.feed.More(pctx)
	case "retry":
		err = a.feed.Retry(pctx)
	default:
		return errors.New("usage: blogs [more|retry]")
	}
	if a.page.Closed() {
		return nil
	}
	if err != nil {
		a.println(services.FeedErrorMessage)
		a.println("Type 'blogs retry' to try again.")
		return nil
	}

	posts := a.feed.Posts()
	if len(posts) == 0 {
		a.println("No blog posts yet.")
	}
	for _, b := range posts {
		line := fmt.Sprintf("%-24s %s", services.PostDate(b.PublishedAt, a.loc), b.Title)
		if b.ReadingTime != nil {
			line += fmt.Sprintf(" (%d min read)", *b.ReadingTime)
		}
		a.printf("%s\n    read %s\n", line, b.Slug)
	}
	if a.feed.HasMore() {
		a.println("Type 'blogs more' for older posts.")
	}
	return nil
}

// Read opens a post with its comments and likes.
func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsageRead
	}
	slugOrID := args[0]
	path := "/blog/" + slugOrID

	if _, err := a.enter(ctx, path); err != nil {
		return err
	}
	v, live, err := services.Load(a.page, func(ctx context.Context) (*services.BlogView, error) {
		return services.OpenPost(ctx, a.api.Blogs, a.api.Comments, a.api.Likes, slugOrID)
	})
	if !live {
		return nil
	}
	if err != nil {
		return err
	}
	if v.NotFound {
		a.post = nil
		a.println(services.PostNotFoundTitle)
		return nil
	}

	a.post, a.postPath = v, path
	b := v.Post
	a.println(b.Title)
	a.println(strings.Repeat("=", len(b.Title)))
	meta := []string{services.PostDate(b.PublishedAt, a.loc)}
	if b.ReadingTime != nil {
		meta = append(meta, fmt.Sprintf("%d min read", *b.ReadingTime))
	}
	if b.Category != "" {
		meta = append(meta, b.Category)
	}
	a.println(strings.Join(meta, " · "))
	if len(b.Tags) > 0 {
		a.println("Tags:", strings.Join(b.Tags, ", "))
	}
	a.println()
	a.println(plainText(b.Content))
	a.println()
	a.printLikes()
	a.printComments()
	return nil
}

// currentPost returns the post the user is reading, if they are still on it.
func (a *App) currentPost() (*services.BlogView, context.Context, error) {
	if a.post == nil || a.post.Post == nil {
		return nil, nil, errNoPostOpen
	}
	ctx, ok := a.stay(a.postPath)
	if !ok {
		return nil, nil, errNoPostOpen
	}
	return a.post, ctx, nil
}

func (a *App) Like(ctx context.Context) error {
	v, pctx, err := a.currentPost()
	if err != nil {
		return err
	}

	sent, err := v.Likes.Like(pctx)
	if err != nil {
		return err
	}
	if !sent {
		a.println("You already liked this post.")
		return nil
	}
	a.printLikes()
	return nil
}

func (a *App) Comment(ctx context.Context) error {
	v, pctx, err := a.currentPost()
	if err != nil {
		return err
	}

	var in models.CommentInput
	if in.AuthorName, err = GetSimpleText(a.reader, "Your name", a.out); err != nil {
		return err
	}
	if in.AuthorEmail, err = GetSimpleText(a.reader, "Your email (not shown)", a.out); err != nil {
		return err
	}
	if in.Content, err = GetMultiline(a.reader, "Comment", a.out); err != nil {
		return err
	}

	if _, err := v.AddComment(pctx, a.api.Comments, in); err != nil {
		return err
	}
	a.println("Comment posted.")
	return nil
}

func (a *App) printLikes() {
	st := a.post.Likes.Status()
	mark := ""
	if st.HasLiked {
		mark = " (you liked this)"
	}
	a.printf("♥ %d%s\n", st.LikesCount, mark)
}

func (a *App) printComments() {
	a.printf("Comments (%d)\n", len(a.post.Comments))
	for _, c := range a.post.Comments {
		a.printf("  %s, %s\n    %s\n", c.AuthorName, services.PostDate(c.CreatedAt, a.loc), c.Content)
	}
}

func (a *App) printProject(i int, p models.Project) {
	a.printf("%d. %s\n", i+1, p.Title)
	if p.Description != "" {
		a.printf("   %s\n", p.Description)
	}
	if len(p.Technologies) > 0 {
		a.printf("   [%s]\n", strings.Join(p.Technologies, ", "))
	}
	if p.Link != "" {
		a.printf("   %s\n", p.Link)
	}
}

func (a *App) printExperience(i int, e models.Experience) {
	a.printf("%d. %s @ %s (%s)\n", i+1, e.Title, e.Company, services.ExperiencePeriod(e, a.loc))
	if e.Description != "" {
		a.printf("   %s\n", e.Description)
	}
	if len(e.Technologies) > 0 {
		a.printf("   [%s]\n", strings.Join(e.Technologies, ", "))
	}
}

// plainText drops markup from stored HTML for terminal display.
func plainText(html string) string {
	s := strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n\n", "&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">").Replace(html)
	s = htmlTag.ReplaceAllString(s, "")
	s = blankLineRunes.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
