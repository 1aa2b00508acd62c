package router

// Route names of the application.
const (
	RouteRegister     = "Register"
	RouteLogin        = "Login"
	RouteArticles     = "articles"
	RouteArticlesPage = "articles-page"
	RouteNewArticle   = "NewArticle"
	RouteEditArticle  = "EditArticle"
)

// DefaultRoutes is the application route table. Article routes require a
// signed-in user; the root redirects to the article list.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Redirect: "/articles"},
		{Path: "/register", Name: RouteRegister},
		{Path: LoginPath, Name: RouteLogin},
		{Path: "/articles", Name: RouteArticles, RequiresAuth: true},
		{Path: "/articles/page/:page", Name: RouteArticlesPage, RequiresAuth: true},
		{Path: "/articles/create", Name: RouteNewArticle, RequiresAuth: true},
		{Path: "/articles/edit/:slug", Name: RouteEditArticle, RequiresAuth: true},
	}
}

// NewDefault builds a router over DefaultRoutes guarded by AuthGuard.
func NewDefault(tokens TokenProvider) (*Router, error) {
	return New(DefaultRoutes(), AuthGuard(tokens))
}
