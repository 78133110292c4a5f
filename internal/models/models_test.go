package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperience_LegacyNamesAreReadFallback(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantTitle   string
		wantCompany string
	}{
		{
			name:        "canonical only",
			in:          `{"id":"1","title":"Engineer","company":"Acme"}`,
			wantTitle:   "Engineer",
			wantCompany: "Acme",
		},
		{
			name:        "legacy only",
			in:          `{"id":"1","position":"Engineer","organization":"Acme"}`,
			wantTitle:   "Engineer",
			wantCompany: "Acme",
		},
		{
			name:        "canonical wins over legacy",
			in:          `{"id":"1","title":"Lead","position":"Engineer","company":"Acme","organization":"Old Co"}`,
			wantTitle:   "Lead",
			wantCompany: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Experience
			require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
			assert.Equal(t, tt.wantTitle, e.Title)
			assert.Equal(t, tt.wantCompany, e.Company)
		})
	}
}

func TestExperience_LegacyNamesAreNeverWritten(t *testing.T) {
	var e Experience
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"position":"Engineer","organization":"Acme","start_date":1700000000,"end_date":null}`), &e))

	b, err := json.Marshal(e)
	require.NoError(t, err)

	out := string(b)
	assert.NotContains(t, out, "position")
	assert.NotContains(t, out, "organization")
	assert.Contains(t, out, `"title":"Engineer"`)
	assert.Contains(t, out, `"id":"7"`)
	assert.Contains(t, out, `"end_date":null`)
	assert.True(t, e.Ongoing())
}

func TestID_DecodesNumbersAndStrings(t *testing.T) {
	var items []struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1712345678901},{"id":"abc"},{"id":null},{}]`), &items))

	require.Len(t, items, 4)
	assert.Equal(t, ID("1712345678901"), items[0].ID)
	assert.Equal(t, ID("abc"), items[1].ID)
	assert.Equal(t, ID(""), items[2].ID)
	assert.Equal(t, ID(""), items[3].ID)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestCursor_KeepsObjectAndStringForms(t *testing.T) {
	var page BlogPage
	require.NoError(t, json.Unmarshal([]byte(`{"items":[],"last_key":{ "blogId": "b1", "created_at": 5 }}`), &page))
	assert.Equal(t, Cursor(`{"blogId":"b1","created_at":5}`), page.LastKey)

	out, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"last_key":{"blogId":"b1","created_at":5}}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"items":[],"last_key":"{\"blogId\":\"b2\"}"}`), &page))
	assert.Equal(t, Cursor(`{"blogId":"b2"}`), page.LastKey)

	require.NoError(t, json.Unmarshal([]byte(`{"items":[],"last_key":null}`), &page))
	assert.Empty(t, page.LastKey)

	out, err = json.Marshal(BlogPage{Items: []Blog{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(out))

	out, err = json.Marshal(Cursor("plain"))
	require.NoError(t, err)
	assert.Equal(t, `"plain"`, string(out))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("just a few words"))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 300)))
	assert.Equal(t, 5, ReadingTime(strings.Repeat("word ", 1000)))
}

func TestPortfolioUpdate_ApplyMergesPresentFieldsOnly(t *testing.T) {
	p := Portfolio{Bio: "old bio", Email: "me@example.com", Projects: []Project{{ID: "p1"}}}

	u := PortfolioUpdate{Bio: Ptr("new bio"), Experience: &[]Experience{{ID: "e1"}}}
	require.False(t, u.Empty())
	u.Apply(&p)

	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "me@example.com", p.Email)
	assert.Len(t, p.Projects, 1)
	assert.Len(t, p.Experience, 1)

	assert.True(t, PortfolioUpdate{}.Empty())
}

func TestPortfolioUpdate_OmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(PortfolioUpdate{Projects: &[]Project{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"projects":[]}`, string(b))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":"Title is required"}`, "Title is required"},
		{`{"error":{"code":"bad","message":"Slug already exists"}}`, "Slug already exists"},
		{`{"message":"Unauthorized"}`, "Unauthorized"},
		{`{"error":null}`, ""},
		{`<html>502</html>`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorMessage([]byte(tt.body)), tt.body)
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Admin@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got)

	_, err = NormalizeEmail("not-an-email")
	assert.True(t, errors.Is(err, common.ErrorValidation))

	_, err = NormalizeEmail("")
	assert.EqualError(t, err, "Email is required")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("long-enough"))
	assert.EqualError(t, ValidatePassword("short"), "Password must be at least 8 characters")
	assert.EqualError(t, ValidatePassword(""), "Password is required")
}

func TestRequired_KeepsValueAsGiven(t *testing.T) {
	got, err := Required("  indented\n", "Content")
	require.NoError(t, err)
	assert.Equal(t, "  indented\n", got)

	_, err = Required(" \t\n", "Title")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.EqualError(t, err, "Title is required")
}

func TestCommentInput_Validate(t *testing.T) {
	in, err := CommentInput{AuthorName: " Ann ", AuthorEmail: "ANN@example.com", Content: " hi "}.Validate()
	require.NoError(t, err)
	assert.Equal(t, CommentInput{AuthorName: "Ann", AuthorEmail: "ann@example.com", Content: "hi"}, in)

	_, err = CommentInput{AuthorName: "Ann", AuthorEmail: "ann@example.com"}.Validate()
	assert.EqualError(t, err, "content is required")
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 0, Deref[int](nil))
	assert.Equal(t, 3, Deref(Ptr(3)))
}
