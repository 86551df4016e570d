package news

// NewsItem is a single article in the shape the mobile client renders.
// JSON field names match the document-store layout, so an item can travel
// from the search API through the favorites store unchanged.
type NewsItem struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Link        string `json:"link"`
	ImageURL    string `json:"urlDaImagem,omitempty"`
	PublishedAt string `json:"publicadoEm"`
	Topic       string `json:"tema,omitempty"`
}

// SameItem reports whether two items refer to the same news article.
// Identity is exact title equality. Distinct articles sharing a title
// collide, which the product accepts.
func SameItem(a, b NewsItem) bool {
	return a.Title == b.Title
}

// gnewsResponse mirrors the search endpoint's response body.
type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
}
