package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/go-chi/chi/v5"
)

// Authenticator resolves an access token to the admin email.
type Authenticator interface {
	Authenticate(accessToken string) (string, error)
}

type AuthService interface {
	Authenticator
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type PortfolioService interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Update(ctx context.Context, u models.PortfolioUpdate) (*models.Portfolio, error)
}

type BlogService interface {
	List(ctx context.Context, limit int, lastKey string) (*models.BlogPage, error)
	Get(ctx context.Context, slugOrID string) (*models.Blog, error)
	Create(ctx context.Context, author string, in models.BlogInput) (*models.Blog, error)
	Update(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

type CommentService interface {
	List(ctx context.Context, blogID string) ([]models.Comment, error)
	Create(ctx context.Context, blogID string, in models.CommentInput) (*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type LikeService interface {
	Status(ctx context.Context, blogID, visitor string) (*models.LikeStatus, error)
	Add(ctx context.Context, blogID, visitor string) (*models.LikeStatus, error)
}

// Services are the use cases the API exposes.
type Services struct {
	Auth      AuthService
	Portfolio PortfolioService
	Blogs     BlogService
	Comments  CommentService
	Likes     LikeService
}

type handler struct {
	Services
	logger logging.Logger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- auth ---

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.Auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pair)
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pair)
}

// --- portfolio ---

func (h *handler) getPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.Portfolio.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *handler) updatePortfolio(w http.ResponseWriter, r *http.Request) {
	var u models.PortfolioUpdate
	if err := decodeJSON(r, &u); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.Portfolio.Update(r.Context(), u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// --- blogs ---

func (h *handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, r, common.Invalid("Invalid limit"))
			return
		}
		limit = n
	}

	page, err := h.Blogs.List(r.Context(), limit, q.Get("last_key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (h *handler) getBlog(w http.ResponseWriter, r *http.Request) {
	b, err := h.Blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *handler) createBlog(w http.ResponseWriter, r *http.Request) {
	var in models.BlogInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.Blogs.Create(r.Context(), EmailFromContext(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (h *handler) updateBlog(w http.ResponseWriter, r *http.Request) {
	var in models.BlogInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.Blogs.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *handler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.Blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, "Blog deleted successfully")
}

// --- comments ---

func (h *handler) listComments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Comments.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *handler) createComment(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.Comments.Create(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (h *handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.Comments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, "Comment deleted successfully")
}

// --- likes ---

func (h *handler) getLikes(w http.ResponseWriter, r *http.Request) {
	st, err := h.Likes.Status(r.Context(), chi.URLParam(r, "id"), visitorID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

func (h *handler) addLike(w http.ResponseWriter, r *http.Request) {
	st, err := h.Likes.Add(r.Context(), chi.URLParam(r, "id"), visitorID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st)
}
