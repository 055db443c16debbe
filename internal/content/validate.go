package content

import (
	"fmt"
	"strings"
	"time"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
)

// Validate checks presence and type of the required front-matter fields and
// produces a Post with the filename-derived slug. Validation is pure and
// per-post; the caller decides whether one failure aborts the whole build.
func Validate(raw RawPost) (*Post, error) {
	post := &Post{
		Slug:       SlugFromFilename(raw.Filename),
		SourcePath: raw.Path,
		Body:       raw.Body,
	}

	title, err := requireString(raw, "title")
	if err != nil {
		return nil, err
	}
	post.Title = title

	date, err := resolveDate(raw)
	if err != nil {
		return nil, err
	}
	post.Date = date

	category, err := requireString(raw, "category")
	if err != nil {
		return nil, err
	}
	post.Category = category

	tags, err := resolveTags(raw)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	level, err := requireString(raw, "level")
	if err != nil {
		return nil, err
	}
	post.Level = level

	if hero, ok := raw.Fields["hero"]; ok {
		s, ok := hero.(string)
		if !ok {
			return nil, berrors.ValidationFailed(raw.Path, "hero", fmt.Sprintf("expected string, got %T", hero))
		}
		post.Hero = s
	}

	return post, nil
}

func requireString(raw RawPost, field string) (string, error) {
	v, ok := raw.Fields[field]
	if !ok {
		return "", berrors.ValidationFailed(raw.Path, field, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", berrors.ValidationFailed(raw.Path, field, fmt.Sprintf("expected string, got %T", v))
	}
	if strings.TrimSpace(s) == "" {
		return "", berrors.ValidationFailed(raw.Path, field, "empty")
	}
	return s, nil
}

// resolveDate accepts a YYYY-MM-DD string or a YAML timestamp in the `date`
// field, falling back to a YYYY-MM-DD- filename prefix.
func resolveDate(raw RawPost) (time.Time, error) {
	if v, ok := raw.Fields["date"]; ok {
		switch d := v.(type) {
		case string:
			parsed, err := time.Parse(DateFormat, d)
			if err != nil {
				return time.Time{}, berrors.ValidationFailed(raw.Path, "date", fmt.Sprintf("not a valid %s date: %q", DateFormat, d))
			}
			return parsed, nil
		case time.Time:
			return d.UTC().Truncate(24 * time.Hour), nil
		default:
			return time.Time{}, berrors.ValidationFailed(raw.Path, "date", fmt.Sprintf("expected date, got %T", v))
		}
	}

	if d, ok := DateFromFilename(raw.Filename); ok {
		return d, nil
	}
	return time.Time{}, berrors.ValidationFailed(raw.Path, "date", "missing (no front-matter date, no YYYY-MM-DD- filename prefix)")
}

// resolveTags accepts a YAML sequence of strings or a comma-separated string.
// Tags may be empty.
func resolveTags(raw RawPost) ([]string, error) {
	v, ok := raw.Fields["tags"]
	if !ok || v == nil {
		return []string{}, nil
	}

	switch tags := v.(type) {
	case []any:
		out := make([]string, 0, len(tags))
		for _, item := range tags {
			s, ok := item.(string)
			if !ok {
				return nil, berrors.ValidationFailed(raw.Path, "tags", fmt.Sprintf("expected string element, got %T", item))
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		out := []string{}
		for _, part := range strings.Split(tags, ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
		return out, nil
	default:
		return nil, berrors.ValidationFailed(raw.Path, "tags", fmt.Sprintf("expected sequence of strings, got %T", v))
	}
}
