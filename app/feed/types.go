package feed

// Feed processing types

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Entry is a normalized feed item carrying only the fields the translation
// pipeline needs. Content holds the first non-empty of the source item's
// content and description fields; GUID falls back to the link.
type Entry struct {
	Title   string
	Link    string
	Content string
	GUID    string
}

// Configuration types

type Config struct {
	Name           string // Derived from filename (without .yml extension)
	URL            string `yaml:"url"`
	ExtractContent bool   `yaml:"extract_content"` // fetch article pages for thin entries
}
