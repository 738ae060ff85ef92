package posts

import (
	"net/url"
	"strings"
)

// Filter narrows down the posts list with case-sensitive substring matches.
// The zero value imposes no constraints.
type Filter struct {
	TitleLike string
	BodyLike  string
}

func FilterFromQuery(query url.Values) Filter {
	return Filter{
		TitleLike: query.Get("title_like"),
		BodyLike:  query.Get("body_like"),
	}
}

func (f Filter) Matches(post *Post) bool {
	return strings.Contains(post.Title, f.TitleLike) &&
		strings.Contains(post.Body, f.BodyLike)
}
