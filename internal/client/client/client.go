package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/nav"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
)

const defaultUserAgent = "folio-cli/1.0"

// Client talks to the folio REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	hooks      []Hook
	logger     logging.Logger
	userAgent  string

	Portfolio *PortfolioService
	Blogs     *BlogsService
	Comments  *CommentsService
	Likes     *LikesService
	Auth      *AuthService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides common.DefaultAPIURL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets the underlying HTTP client. It is copied, not mutated.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// WithHooks adds pipeline stages between bearer auth and the 401 guard.
func WithHooks(hooks ...Hook) Option {
	return func(c *Client) {
		c.hooks = append(c.hooks, hooks...)
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New builds a client bound to sess. navigator may be nil when there is no
// admin area to leave, as in scripts.
func New(sess Session, navigator nav.Navigator, opts ...Option) *Client {
	c := &Client{
		baseURL:   common.DefaultAPIURL,
		logger:    logging.Discard(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	var hc http.Client
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	hooks := []Hook{UserAgent(c.userAgent), BearerAuth(sess)}
	hooks = append(hooks, c.hooks...)
	hooks = append(hooks, UnauthorizedGuard(sess, navigator, c.logger), RequestLogger(c.logger))

	hc.Transport = &pipeline{hooks: hooks, next: next}
	c.httpClient = &hc

	c.Portfolio = &PortfolioService{client: c}
	c.Blogs = &BlogsService{client: c}
	c.Comments = &CommentsService{client: c}
	c.Likes = &LikesService{client: c}
	c.Auth = &AuthService{client: c}

	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }
