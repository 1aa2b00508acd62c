package ui

import (
	"strings"

	"github.com/samvad-hq/quill/internal/domain"
)

// ArticleForm holds the editable state of the article editor.
type ArticleForm struct {
	Title        string
	Description  string
	Body         string
	SelectedTags []string
	// ShowErrors is set once the user attempted to submit an invalid form.
	ShowErrors bool
}

// NewArticleForm returns an empty form.
func NewArticleForm() *ArticleForm {
	f := &ArticleForm{}
	f.Reset()
	return f
}

// FromArticle returns a form prefilled with article, for editing.
func FromArticle(article domain.Article) *ArticleForm {
	return &ArticleForm{
		Title:        article.Title,
		Description:  article.Description,
		Body:         article.Body,
		SelectedTags: append([]string{}, article.TagList...),
	}
}

// Reset clears every field and hides validation errors.
func (f *ArticleForm) Reset() {
	*f = ArticleForm{SelectedTags: []string{}}
}

// Valid reports whether the form can be submitted: title, description and at
// least one tag are required, the body is optional.
func (f *ArticleForm) Valid() bool {
	return len(f.MissingFields()) == 0
}

// MissingFields names the fields that keep the form from being valid.
func (f *ArticleForm) MissingFields() []string {
	var missing []string
	if f.Title == "" {
		missing = append(missing, "title")
	}
	if f.Description == "" {
		missing = append(missing, "description")
	}
	if len(f.SelectedTags) == 0 {
		missing = append(missing, "tags")
	}
	return missing
}

// SetTags replaces the selected tags, dropping blanks and duplicates.
func (f *ArticleForm) SetTags(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	f.SelectedTags = out
}

// Input converts the form to the payload sent to the backend.
func (f *ArticleForm) Input() domain.ArticleInput {
	return domain.ArticleInput{
		Title:       f.Title,
		Description: f.Description,
		Body:        f.Body,
		TagList:     append([]string(nil), f.SelectedTags...),
	}
}
