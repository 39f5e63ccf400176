package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPage is used when the page query parameter is absent or invalid.
	DefaultPage = 1
	// DefaultPerPage is used when per_page is absent or invalid.
	DefaultPerPage = 10
	// MaxPerPage caps how many rows a single page can request.
	MaxPerPage = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Envelope is the wire shape of every paginated listing.
type Envelope struct {
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Data    any   `json:"data"`
}

// FromQuery extracts page/per_page from a URL query, falling back to defaults
// for absent, non-numeric, or non-positive values.
func FromQuery(query url.Values) Params {
	return Params{
		Page:    parsePositive(query.Get("page"), DefaultPage),
		PerPage: parsePositive(query.Get("per_page"), DefaultPerPage),
	}
}

func parsePositive(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// Normalize clamps the params to sane bounds.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	normalized := p.Normalize()
	return (normalized.Page - 1) * normalized.PerPage
}

// NewEnvelope assembles the listing envelope. Pages is the ceiling of
// total/per_page and is 0 when no rows match.
func NewEnvelope(params Params, total int64, data any) Envelope {
	normalized := params.Normalize()
	pages := int((total + int64(normalized.PerPage) - 1) / int64(normalized.PerPage))
	return Envelope{
		Total:   total,
		Pages:   pages,
		Page:    normalized.Page,
		PerPage: normalized.PerPage,
		Data:    data,
	}
}
