package models

// Article is a stub returned by the news search, enough to locate and label
// the story. The full body is scraped separately.
type Article struct {
	Title string
	URL   string
}

// DigestEntry is an article that survived scraping and summarization.
type DigestEntry struct {
	Title   string
	Summary string
	URL     string
}
