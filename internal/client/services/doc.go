// Package services holds the client-side application services: the admin
// session, the page lifetime guard and the state behind every screen of the
// terminal client.
//
// Services depend on the narrow API interfaces declared in api.go, which the
// services of internal/client/client satisfy. None of them retries or caches;
// errors from the API are returned to the caller unchanged so that the
// screen decides what the user sees.
package services
