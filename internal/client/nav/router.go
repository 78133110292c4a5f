// Package nav tracks where the user currently is in the client and gates
// the admin area.
package nav

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/folio/internal/common"
)

// Navigator is what the API client needs to redirect after a 401.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// IsAdminPath reports whether path lies under the admin prefix.
func IsAdminPath(path string) bool {
	return path == common.AdminPrefix || strings.HasPrefix(path, common.AdminPrefix+"/")
}

// Router is the client's Navigator. It is safe for concurrent use because
// the 401 redirect can fire from any in-flight request.
type Router struct {
	mu      sync.RWMutex
	current string
	history []string
	onEnter func(path string)
}

func NewRouter(start string) *Router {
	if start == "" {
		start = "/"
	}
	return &Router{current: start}
}

// OnNavigate registers fn to be called after every location change.
func (r *Router) OnNavigate(fn func(path string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEnter = fn
}

func (r *Router) Location() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Router) Navigate(path string) {
	r.mu.Lock()
	if path == r.current {
		r.mu.Unlock()
		return
	}
	r.history = append(r.history, r.current)
	r.current = path
	fn := r.onEnter
	r.mu.Unlock()

	if fn != nil {
		fn(path)
	}
}

// Enter moves to path and returns where the user actually ended up.
// Protected admin paths resolve to the login page when authenticated
// reports false, before anything on the page is rendered.
func (r *Router) Enter(path string, authenticated func() bool) string {
	path = gate(path, authenticated)
	r.Navigate(path)
	return path
}

// Back returns to the previous location, if any, applying the same gate
// as Enter. authenticated must not call back into the router.
func (r *Router) Back(authenticated func() bool) string {
	r.mu.Lock()
	if len(r.history) == 0 {
		defer r.mu.Unlock()
		return r.current
	}
	path := gate(r.history[len(r.history)-1], authenticated)
	r.history = r.history[:len(r.history)-1]
	r.current = path
	fn := r.onEnter
	r.mu.Unlock()

	if fn != nil {
		fn(path)
	}
	return path
}

func gate(path string, authenticated func() bool) string {
	if IsAdminPath(path) && path != common.LoginPath && !authenticated() {
		return common.LoginPath
	}
	return path
}
