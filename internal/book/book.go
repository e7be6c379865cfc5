package book

import (
	"strconv"
	"strings"
	"time"
)

// Book represents a catalog record.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre,omitempty"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsNew reports whether the book has never been persisted.
func (b Book) IsNew() bool {
	return b.ID == 0
}

// YearText renders the publication year for form inputs.
func (b Book) YearText() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}

// Fields holds the values submitted by the book form exactly as typed, so a
// rejected submission can be redisplayed verbatim.
type Fields struct {
	Title  string `validate:"required"`
	Author string `validate:"required"`
	Genre  string
	Year   string `validate:"omitempty,year"`
}

// FieldsFromForm extracts the book form values. Unknown keys, including any
// "id", are ignored.
func FieldsFromForm(get func(string) string) Fields {
	return Fields{
		Title:  get("title"),
		Author: get("author"),
		Genre:  get("genre"),
		Year:   get("year"),
	}
}

// FieldsOf returns the form values that describe b.
func FieldsOf(b Book) Fields {
	return Fields{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.YearText(),
	}
}

// normalized returns f with surrounding whitespace removed. Validation and
// storage see normalized values.
func (f Fields) normalized() Fields {
	return Fields{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		Genre:  strings.TrimSpace(f.Genre),
		Year:   strings.TrimSpace(f.Year),
	}
}

// parseYear parses a publication year. It must fit the INTEGER column.
func parseYear(s string) (int, error) {
	y, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(y), nil
}

// Build returns an unsaved book populated from f. A year that does not parse
// is left empty; validateFields rejects such input before any write.
func Build(f Fields) Book {
	f = f.normalized()
	b := Book{
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
	}
	if y, err := parseYear(f.Year); err == nil {
		b.Year = &y
	}
	return b
}

// apply overwrites every editable field of b with f.
func (b *Book) apply(f Fields) {
	nb := Build(f)
	b.Title = nb.Title
	b.Author = nb.Author
	b.Genre = nb.Genre
	b.Year = nb.Year
}

// ParseID parses a path identifier. Anything other than a positive integer
// reports false.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
