package domain

// Record is implemented by every content record stored in a collection.
// The ID is stable for the record's lifetime and is the only upsert key.
type Record interface {
	RecordID() string
}

// Dhikr is a practice phrase with a repetition count. Order defines the
// display sequence within a category and need not be globally unique.
type Dhikr struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Count    int    `json:"count" yaml:"count"`
	Category string `json:"category" yaml:"category"`
	Benefit  string `json:"benefit,omitempty" yaml:"benefit,omitempty"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Order    int    `json:"order" yaml:"order"`
}

// RecordID returns the record identifier.
func (d Dhikr) RecordID() string { return d.ID }

// Hadith is a saying with its attribution.
type Hadith struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Source   string `json:"source" yaml:"source"`
	Category string `json:"category" yaml:"category"`
}

// RecordID returns the record identifier.
func (h Hadith) RecordID() string { return h.ID }

// NewsItem is an announcement shown to users, newest first.
type NewsItem struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date" yaml:"date"`
}

// RecordID returns the record identifier.
func (n NewsItem) RecordID() string { return n.ID }

// Banner is a promotional image.
type Banner struct {
	ID       string `json:"id" yaml:"id"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// RecordID returns the record identifier.
func (b Banner) RecordID() string { return b.ID }
