// Package models holds the content records exchanged between the folio
// client and API: the portfolio singleton with its projects and experience,
// blog posts, comments, like status and the session token pair.
//
// JSON field names follow the wire format exactly (note the camelCase
// blogId / commentId next to snake_case everywhere else). Every successful
// response is wrapped in an Envelope whose data key callers unwrap.
package models
