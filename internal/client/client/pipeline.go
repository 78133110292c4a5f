package client

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/nav"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
)

// Hook is one stage of the request pipeline. Either function may be nil.
type Hook struct {
	Name         string
	BeforeSend   func(req *http.Request)
	AfterReceive func(req *http.Request, resp *http.Response)
}

// TokenSource yields the current access token.
type TokenSource interface {
	AccessToken() (string, bool)
}

// Session is the part of the session store the client depends on.
type Session interface {
	TokenSource
	Clear(ctx context.Context) error
}

type pipeline struct {
	hooks []Hook
	next  http.RoundTripper
}

func (p *pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	// A RoundTripper must not modify the caller's request.
	req = req.Clone(req.Context())

	for _, h := range p.hooks {
		if h.BeforeSend != nil {
			h.BeforeSend(req)
		}
	}

	resp, err := p.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	for i := len(p.hooks) - 1; i >= 0; i-- {
		if h := p.hooks[i]; h.AfterReceive != nil {
			h.AfterReceive(req, resp)
		}
	}
	return resp, nil
}

// BearerAuth attaches the current access token to every request.
func BearerAuth(tokens TokenSource) Hook {
	return Hook{
		Name: "bearer-auth",
		BeforeSend: func(req *http.Request) {
			if token, ok := tokens.AccessToken(); ok && token != "" {
				req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
			}
		},
	}
}

// UnauthorizedGuard clears the session on any 401 and sends an admin user
// back to the login page.
func UnauthorizedGuard(sess Session, navigator nav.Navigator, logger logging.Logger) Hook {
	return Hook{
		Name: "unauthorized-guard",
		AfterReceive: func(req *http.Request, resp *http.Response) {
			if resp.StatusCode != http.StatusUnauthorized {
				return
			}

			// The session must be cleared even if the caller has already given up.
			ctx := context.WithoutCancel(req.Context())
			if err := sess.Clear(ctx); err != nil {
				logger.Error(ctx, "failed to clear session after 401", "error", err)
			}

			if navigator == nil {
				return
			}
			if loc := navigator.Location(); nav.IsAdminPath(loc) {
				logger.Info(ctx, "session expired, redirecting to login", "from", loc)
				navigator.Navigate(common.LoginPath)
			}
		},
	}
}

// UserAgent sets the User-Agent header.
func UserAgent(ua string) Hook {
	return Hook{
		Name: "user-agent",
		BeforeSend: func(req *http.Request) {
			req.Header.Set("User-Agent", ua)
		},
	}
}

type startKey struct{}

// RequestLogger logs every completed round trip at debug level.
func RequestLogger(logger logging.Logger) Hook {
	return Hook{
		Name: "request-logger",
		BeforeSend: func(req *http.Request) {
			*req = *req.WithContext(context.WithValue(req.Context(), startKey{}, time.Now()))
		},
		AfterReceive: func(req *http.Request, resp *http.Response) {
			args := []any{"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode}
			if start, ok := req.Context().Value(startKey{}).(time.Time); ok {
				args = append(args, "duration", time.Since(start).String())
			}
			logger.Debug(req.Context(), "api request", args...)
		},
	}
}
