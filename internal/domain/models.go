package domain

// Domain contains the article models exchanged with the backend.

// Profile is the public view of an article author.
type Profile struct {
	Username  string `json:"username" yaml:"username"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Image     string `json:"image,omitempty" yaml:"image,omitempty"`
	Following bool   `json:"following" yaml:"following"`
}

// Article is an article as returned by the backend.
type Article struct {
	Slug           string   `json:"slug" yaml:"slug"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Body           string   `json:"body" yaml:"body"`
	TagList        []string `json:"tagList" yaml:"tagList"`
	CreatedAt      string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      string   `json:"updatedAt" yaml:"updatedAt"`
	Favorited      bool     `json:"favorited" yaml:"favorited"`
	FavoritesCount int      `json:"favoritesCount" yaml:"favoritesCount"`
	Author         Profile  `json:"author" yaml:"author"`
}

// ArticleInput is the writable subset of an article. Empty fields are omitted
// so partial updates only carry what changed.
type ArticleInput struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Body        string   `json:"body,omitempty"`
	TagList     []string `json:"tagList,omitempty"`
}

// ArticleEnvelope wraps a single article on the wire.
type ArticleEnvelope struct {
	Article Article `json:"article"`
}

// ArticleList is a page of articles.
type ArticleList struct {
	Articles      []Article `json:"articles"`
	ArticlesCount int       `json:"articlesCount"`
}
