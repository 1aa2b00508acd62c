package articles

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/quill/internal/domain"
	"github.com/samvad-hq/quill/pkg/httpclient"
)

// DefaultPageSize is used by ListArticles when limit is not positive.
const DefaultPageSize = 10

// Sender is the request surface the service needs from httpclient.RequestClient.
type Sender interface {
	Send(ctx context.Context, d httpclient.Descriptor) httpclient.Result
}

// Service exposes the article endpoints. Every method returns the client's
// Result as is.
type Service struct {
	baseURL string
	client  Sender
}

// NewService builds an article service rooted at baseURL.
func NewService(baseURL string, client Sender) (*Service, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("articles base url is empty")
	}
	if client == nil {
		return nil, errors.New("articles client must not be nil")
	}
	return &Service{baseURL: baseURL, client: client}, nil
}

type articleBody struct {
	Article domain.ArticleInput `json:"article"`
}

// FetchArticle retrieves a single article by slug.
func (s *Service) FetchArticle(ctx context.Context, slug string) httpclient.Result {
	return s.client.Send(ctx, httpclient.Descriptor{URL: s.articleURL(slug)})
}

// CreateArticle publishes a new article.
func (s *Service) CreateArticle(ctx context.Context, article domain.ArticleInput) httpclient.Result {
	return s.client.Send(ctx, httpclient.Descriptor{
		URL:    s.baseURL + "/articles",
		Method: http.MethodPost,
		Body:   articleBody{Article: article},
	})
}

// UpdateArticle replaces the writable fields of the article identified by slug.
func (s *Service) UpdateArticle(ctx context.Context, slug string, article domain.ArticleInput) httpclient.Result {
	return s.client.Send(ctx, httpclient.Descriptor{
		URL:    s.articleURL(slug),
		Method: http.MethodPut,
		Body:   articleBody{Article: article},
	})
}

// DeleteArticle removes the article identified by slug.
func (s *Service) DeleteArticle(ctx context.Context, slug string) httpclient.Result {
	return s.client.Send(ctx, httpclient.Descriptor{
		URL:    s.articleURL(slug),
		Method: http.MethodDelete,
	})
}

// ListArticles returns one page of articles. Pages start at 1.
func (s *Service) ListArticles(ctx context.Context, page, limit int) httpclient.Result {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.client.Send(ctx, httpclient.Descriptor{
		URL: s.baseURL + "/articles",
		Options: []httpclient.RequestOption{
			httpclient.WithQueryParams(map[string]string{
				"limit":  strconv.Itoa(limit),
				"offset": strconv.Itoa((page - 1) * limit),
			}),
		},
	})
}

func (s *Service) articleURL(slug string) string {
	return s.baseURL + "/articles/" + url.PathEscape(slug)
}
