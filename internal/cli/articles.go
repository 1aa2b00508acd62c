package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/quill/internal/domain"
	"github.com/samvad-hq/quill/internal/ui"
	"github.com/samvad-hq/quill/pkg/articles"
)

func newArticlesCommand(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Read and manage articles",
	}
	cmd.AddCommand(newListCommand(c))
	cmd.AddCommand(newGetCommand(c))
	cmd.AddCommand(newCreateCommand(c))
	cmd.AddCommand(newUpdateCommand(c))
	cmd.AddCommand(newDeleteCommand(c))
	return cmd
}

func newListCommand(c *CLI) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List one page of articles",
		Args:        cobra.NoArgs,
		Annotations: routed("/articles/page/:page"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.app.Articles.ListArticles(cmd.Context(), page, limit)
			return c.render(cmd, res, "")
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", articles.DefaultPageSize, "articles per page")
	return cmd
}

func newGetCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:         "get <slug>",
		Short:       "Show a single article",
		Args:        cobra.ExactArgs(1),
		Annotations: routed("/articles"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.render(cmd, c.app.Articles.FetchArticle(cmd.Context(), args[0]), "")
		},
	}
}

func newCreateCommand(c *CLI) *cobra.Command {
	var f articleFlags
	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Publish a new article",
		Args:        cobra.NoArgs,
		Annotations: routed("/articles/create"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := ui.NewArticleForm()
			f.apply(cmd, form)
			if err := validate(form); err != nil {
				return err
			}
			res := c.app.Articles.CreateArticle(cmd.Context(), form.Input())
			return c.render(cmd, res, "Article created")
		},
	}
	f.bind(cmd)
	return cmd
}

func newUpdateCommand(c *CLI) *cobra.Command {
	var f articleFlags
	cmd := &cobra.Command{
		Use:         "update <slug>",
		Short:       "Edit an existing article",
		Long:        "Fetches the article, applies the given flags on top of it and saves the result.",
		Args:        cobra.ExactArgs(1),
		Annotations: routed("/articles/edit/:slug"),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			current := c.app.Articles.FetchArticle(cmd.Context(), slug)
			if !current.OK() {
				return c.render(cmd, current, "")
			}
			var env domain.ArticleEnvelope
			if err := current.Decode(&env); err != nil {
				return fmt.Errorf("decode article %s: %w", slug, err)
			}

			form := ui.FromArticle(env.Article)
			f.apply(cmd, form)
			if err := validate(form); err != nil {
				return err
			}
			res := c.app.Articles.UpdateArticle(cmd.Context(), slug, form.Input())
			return c.render(cmd, res, "Article updated")
		},
	}
	f.bind(cmd)
	return cmd
}

func newDeleteCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:         "delete <slug>",
		Short:       "Remove an article",
		Args:        cobra.ExactArgs(1),
		Annotations: routed("/articles"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.render(cmd, c.app.Articles.DeleteArticle(cmd.Context(), args[0]), "Article deleted")
		},
	}
}

type articleFlags struct {
	title       string
	description string
	body        string
	tags        []string
}

func (f *articleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "article title")
	cmd.Flags().StringVar(&f.description, "description", "", "short description")
	cmd.Flags().StringVar(&f.body, "body", "", "article body")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag to attach (repeatable)")
}

// apply copies only the flags the user set, so an update keeps unchanged fields.
func (f *articleFlags) apply(cmd *cobra.Command, form *ui.ArticleForm) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title = strings.TrimSpace(f.title)
	}
	if flags.Changed("description") {
		form.Description = strings.TrimSpace(f.description)
	}
	if flags.Changed("body") {
		form.Body = f.body
	}
	if flags.Changed("tag") {
		form.SetTags(f.tags)
	}
}

func validate(form *ui.ArticleForm) error {
	missing := form.MissingFields()
	if len(missing) == 0 {
		return nil
	}
	form.ShowErrors = true
	return fmt.Errorf("article form is incomplete: missing %s", strings.Join(missing, ", "))
}
