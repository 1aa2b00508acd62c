package articles

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/samvad-hq/quill/internal/domain"
	"github.com/samvad-hq/quill/pkg/httpclient"
)

// recordingSender captures descriptors and returns a fixed result.
type recordingSender struct {
	got    []httpclient.Descriptor
	result httpclient.Result
}

func (r *recordingSender) Send(_ context.Context, d httpclient.Descriptor) httpclient.Result {
	r.got = append(r.got, d)
	return r.result
}

func newTestService(t *testing.T, sender Sender) *Service {
	t.Helper()
	svc, err := NewService("https://api.example.com/api/", sender)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestFetchArticleIssuesGetAndReturnsResultUnmodified(t *testing.T) {
	want := httpclient.Result{Data: json.RawMessage(`{"article":{"slug":"foo"}}`), Error: ""}
	sender := &recordingSender{result: want}
	svc := newTestService(t, sender)

	got := svc.FetchArticle(context.Background(), "foo")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("result modified: %#v", got)
	}
	d := sender.got[0]
	if d.URL != "https://api.example.com/api/articles/foo" {
		t.Fatalf("unexpected url %s", d.URL)
	}
	if d.Method != "" && d.Method != http.MethodGet {
		t.Fatalf("expected GET, got %s", d.Method)
	}
	if d.Body != nil {
		t.Fatalf("fetch must not send a body")
	}
}

func TestFetchArticleEscapesSlug(t *testing.T) {
	sender := &recordingSender{}
	newTestService(t, sender).FetchArticle(context.Background(), "a b/c")
	if got := sender.got[0].URL; got != "https://api.example.com/api/articles/a%20b%2Fc" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestCreateArticleWrapsBodyInEnvelope(t *testing.T) {
	var body []byte
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"article":{"slug":"t","title":"T"}}`))
	}))
	defer srv.Close()

	client := httpclient.NewRequestClient(httpclient.NewRestyClient(2*time.Second), nil, nil)
	svc, err := NewService(srv.URL, client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	res := svc.CreateArticle(context.Background(), domain.ArticleInput{Title: "T"})
	if !res.OK() {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if method != http.MethodPost || path != "/articles" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if string(body) != `{"article":{"title":"T"}}` {
		t.Fatalf("unexpected body %s", body)
	}

	var env domain.ArticleEnvelope
	if err := res.Decode(&env); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Article.Slug != "t" {
		t.Fatalf("unexpected slug %q", env.Article.Slug)
	}
}

func TestUpdateArticleUsesPut(t *testing.T) {
	sender := &recordingSender{}
	input := domain.ArticleInput{Title: "T", TagList: []string{"go"}}
	newTestService(t, sender).UpdateArticle(context.Background(), "foo", input)

	d := sender.got[0]
	if d.Method != http.MethodPut || d.URL != "https://api.example.com/api/articles/foo" {
		t.Fatalf("unexpected descriptor %#v", d)
	}
	raw, err := json.Marshal(d.Body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	if string(raw) != `{"article":{"title":"T","tagList":["go"]}}` {
		t.Fatalf("unexpected body %s", raw)
	}
}

func TestDeleteArticle(t *testing.T) {
	sender := &recordingSender{}
	newTestService(t, sender).DeleteArticle(context.Background(), "foo")
	if d := sender.got[0]; d.Method != http.MethodDelete || d.Body != nil {
		t.Fatalf("unexpected descriptor %#v", d)
	}
}

func TestListArticlesComputesOffset(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"articles":[],"articlesCount":0}`))
	}))
	defer srv.Close()

	client := httpclient.NewRequestClient(httpclient.NewRestyClient(2*time.Second), nil, nil)
	svc, err := NewService(srv.URL, client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if res := svc.ListArticles(context.Background(), 3, 20); !res.OK() {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if query["limit"][0] != "20" || query["offset"][0] != "40" {
		t.Fatalf("unexpected query %v", query)
	}

	if res := svc.ListArticles(context.Background(), 0, 0); !res.OK() {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if query["limit"][0] != "10" || query["offset"][0] != "0" {
		t.Fatalf("unexpected default query %v", query)
	}
}

func TestNewServiceValidates(t *testing.T) {
	if _, err := NewService(" ", &recordingSender{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := NewService("https://example.com", nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
