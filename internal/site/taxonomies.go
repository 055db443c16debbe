package site

import (
	"path"
	"sort"

	"git.home.luguber.info/inful/blogsmith/internal/content"
	"git.home.luguber.info/inful/blogsmith/internal/site/templates"
	"git.home.luguber.info/inful/blogsmith/internal/util/sets"
)

// gatherTerms extracts distinct taxonomy values from posts. Terms are keyed
// by slug; the display name is the value's first occurrence in post order.
func gatherTerms(posts []*content.Post, extract func(*content.Post) []string) []templates.Term {
	bySlug := make(map[string]*templates.Term)

	for _, post := range posts {
		for _, value := range extract(post) {
			slug := content.Slugify(value)
			term, ok := bySlug[slug]
			if !ok {
				term = &templates.Term{Name: value, Slug: slug}
				bySlug[slug] = term
			}
			term.Count++
		}
	}

	out := make([]templates.Term, 0, len(bySlug))
	for _, t := range bySlug {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// tagSlugSets slugifies each post's tags once, so tag page membership checks
// don't re-slugify per term.
func tagSlugSets(posts []*content.Post) map[*content.Post]sets.Set[string] {
	out := make(map[*content.Post]sets.Set[string], len(posts))
	for _, post := range posts {
		s := sets.New[string]()
		for _, tag := range post.Tags {
			s.Add(content.Slugify(tag))
		}
		out[post] = s
	}
	return out
}

// renderTaxonomyPages emits one listing page per distinct category and tag.
// Each page contains exactly the posts carrying that value, in listing order.
func (g *Generator) renderTaxonomyPages(posts []*content.Post, categories, tags []templates.Term, year int) ([]RenderedPage, error) {
	pages := make([]RenderedPage, 0, len(categories)+len(tags))

	for _, term := range categories {
		term := term
		members := filterPosts(posts, func(p *content.Post) bool {
			return content.Slugify(p.Category) == term.Slug
		})
		doc, err := g.engine.Render(templates.KindCategory, &templates.PageData{
			Year:  year,
			Term:  &term,
			Posts: members,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, RenderedPage{
			Path:    path.Join("categories", term.Slug, "index.html"),
			Content: doc,
		})
	}

	tagged := tagSlugSets(posts)
	for _, term := range tags {
		term := term
		members := filterPosts(posts, func(p *content.Post) bool {
			return tagged[p].Has(term.Slug)
		})
		doc, err := g.engine.Render(templates.KindTag, &templates.PageData{
			Year:  year,
			Term:  &term,
			Posts: members,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, RenderedPage{
			Path:    path.Join("tags", term.Slug, "index.html"),
			Content: doc,
		})
	}

	return pages, nil
}

func filterPosts(posts []*content.Post, keep func(*content.Post) bool) []*content.Post {
	out := make([]*content.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
