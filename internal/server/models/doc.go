// Package models holds the server-only records: admin users and their
// refresh tokens. Content records live in internal/models.
package models
