package componentbuilder

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	htmlmin "github.com/tdewolff/minify/v2/html"
)

const mimeTypeHTML = "text/html"

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		// end tags and default attribute values stay, they would show up as
		// missing props otherwise
		minifier.Add(mimeTypeHTML, &htmlmin.Minifier{
			KeepDefaultAttrVals: true,
			KeepEndTags:         true,
		})
	})
	return minifier
}

// minifyMarkup drops comments and whitespace, that does not render
func minifyMarkup(markup string) (string, error) {
	return getMinifier().String(mimeTypeHTML, markup)
}
