// Package client is the folio REST API client.
//
// # Overview
//
// Client is the single entry point for every remote call. It carries the
// base URL, an *http.Client and a request pipeline, and exposes one service
// per resource:
//
//	c := client.New(store, router, client.WithBaseURL(cfg.BaseURL))
//	post, err := c.Blogs.Get(ctx, "hello-world-2024")
//
// Services map one method call to one HTTP request. They do not retry,
// cache or interpret errors; the caller decides what the user sees.
//
// # Pipeline
//
// Cross-cutting behavior is a list of Hooks wrapped around the transport.
// BeforeSend functions run in order before the request leaves, AfterReceive
// functions run in reverse order once a response arrives. New always
// installs two hooks around any caller supplied ones:
//
//   - BearerAuth reads the session's access token right before sending and
//     sets "Authorization: Bearer <token>" when one is present.
//   - UnauthorizedGuard clears the session on every 401 response and, when
//     the user is inside the admin area, navigates to the login page.
//
// Because hooks run inside the transport, they fire exactly once per
// response no matter which service issued the request.
//
// # Error Handling
//
// Two error kinds are returned:
//
//   - *NetworkError when no response was received. It matches ErrUnavailable.
//   - *APIError when the server answered with a status >= 400. It carries the
//     message from the error envelope and matches ErrUnauthorized (401),
//     ErrNotFound (404), ErrValidation (other 4xx) or ErrServer (5xx).
//
// Match them with errors.Is / errors.As.
package client
