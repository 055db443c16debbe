package site

import (
	"html/template"
	"path"

	"git.home.luguber.info/inful/blogsmith/internal/content"
	"git.home.luguber.info/inful/blogsmith/internal/site/templates"
)

// renderPages expands every page of the site into memory. Nothing touches
// the output directory until the publish stage.
func (g *Generator) renderPages(bs *BuildState) ([]RenderedPage, error) {
	posts := bs.Posts
	categories, tags := collectTerms(posts)
	bs.Report.Categories = len(categories)
	bs.Report.Tags = len(tags)

	year := 0
	if len(posts) > 0 {
		year = posts[0].Date.Year()
	}

	pages := make([]RenderedPage, 0, len(posts)+len(categories)+len(tags)+4)
	add := func(outPath string, content []byte) {
		pages = append(pages, RenderedPage{Path: outPath, Content: content})
	}

	// Detail pages, one per post.
	for _, post := range posts {
		doc, err := g.engine.Render(templates.KindPost, &templates.PageData{
			Stats:   g.stats,
			Year:    year,
			Post:    post,
			Content: template.HTML(post.HTML), // #nosec G203 -- rendered from the post's own Markdown
		})
		if err != nil {
			return nil, err
		}
		add(path.Join("posts", post.Slug, "index.html"), doc)
	}

	// Index: the most recent posts only.
	recent := posts
	if len(recent) > IndexPostCount {
		recent = recent[:IndexPostCount]
	}
	doc, err := g.engine.Render(templates.KindIndex, &templates.PageData{
		Stats: g.stats,
		Year:  year,
		Posts: recent,
	})
	if err != nil {
		return nil, err
	}
	add("index.html", doc)

	// Archive: everything, plus the taxonomy overview.
	doc, err = g.engine.Render(templates.KindArchive, &templates.PageData{
		Stats:      g.stats,
		Year:       year,
		Posts:      posts,
		Categories: categories,
		Tags:       tags,
	})
	if err != nil {
		return nil, err
	}
	add(path.Join("archive", "index.html"), doc)

	doc, err = g.engine.Render(templates.KindAbout, &templates.PageData{Year: year})
	if err != nil {
		return nil, err
	}
	add(path.Join("about", "index.html"), doc)

	// One listing page per distinct category and tag.
	taxonomyPages, err := g.renderTaxonomyPages(posts, categories, tags, year)
	if err != nil {
		return nil, err
	}
	pages = append(pages, taxonomyPages...)

	feed, err := g.engine.RenderFeed(&templates.PageData{Posts: posts, Year: year})
	if err != nil {
		return nil, err
	}
	add("feed.xml", feed)

	return pages, nil
}

// collectTerms gathers distinct categories and tags across all posts,
// keyed by slug. Display names come from first occurrence in listing order;
// results are sorted by slug so page generation is deterministic.
func collectTerms(posts []*content.Post) (categories, tags []templates.Term) {
	return gatherTerms(posts, func(p *content.Post) []string { return []string{p.Category} }),
		gatherTerms(posts, func(p *content.Post) []string { return p.Tags })
}
