package artworks

import (
	"sort"
	"strings"

	"folkify/internal/apperr"
)

const (
	OrderCreatedAt = "createdAt"
	OrderPrice     = "price"

	DirectionAsc  = "asc"
	DirectionDesc = "desc"

	SortPopular = "popular"
	SortLiked   = "liked"
)

// ListParams are the listing options. The store applies the equality,
// order and limit options; Search, Region and Sort run on the fetched page.
type ListParams struct {
	IsActive       *bool
	ArtForm        string
	ArtistID       string
	OrderField     string
	OrderDirection string
	Limit          int
	Cursor         string

	Search string
	Region string
	Sort   string
}

// Normalize fills defaults and rejects unknown order or sort options.
func (p ListParams) Normalize() (ListParams, error) {
	if p.IsActive == nil {
		active := true
		p.IsActive = &active
	}
	p.ArtForm = strings.TrimSpace(p.ArtForm)
	p.ArtistID = strings.TrimSpace(p.ArtistID)
	p.Search = strings.TrimSpace(p.Search)

	switch p.OrderField {
	case "":
		p.OrderField = OrderCreatedAt
	case OrderCreatedAt, OrderPrice:
	default:
		return p, apperr.New(apperr.CodeValidation, "orderField must be createdAt or price")
	}

	switch strings.ToLower(p.OrderDirection) {
	case "":
		p.OrderDirection = DirectionDesc
	case DirectionAsc, DirectionDesc:
		p.OrderDirection = strings.ToLower(p.OrderDirection)
	default:
		return p, apperr.New(apperr.CodeValidation, "orderDirection must be asc or desc")
	}

	switch p.Sort {
	case "", SortPopular, SortLiked:
	default:
		return p, apperr.New(apperr.CodeValidation, "sort must be popular or liked")
	}
	return p, nil
}

func (p ListParams) column() string {
	if p.OrderField == OrderPrice {
		return "price"
	}
	return "created_at"
}

// MatchesSearch is a case-insensitive substring match on title, description,
// materials or any tag. An empty term matches everything.
func MatchesSearch(a Artwork, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Description), term) ||
		strings.Contains(strings.ToLower(a.Materials), term) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// NormalizeRegion lowercases and collapses whitespace so "  West  Bengal" equals "west bengal".
func NormalizeRegion(region string) string {
	return strings.Join(strings.Fields(strings.ToLower(region)), " ")
}

func MatchesRegion(a Artwork, region string) bool {
	want := NormalizeRegion(region)
	if want == "" {
		return true
	}
	return NormalizeRegion(a.Region) == want
}

// FilterPage applies the post-fetch predicates. The result may be shorter
// than the fetched page; page size and match count are not reconciled.
func FilterPage(page []Artwork, p ListParams) []Artwork {
	out := make([]Artwork, 0, len(page))
	for _, a := range page {
		if MatchesSearch(a, p.Search) && MatchesRegion(a, p.Region) {
			out = append(out, a)
		}
	}
	return out
}

// SortPage reorders a page in place. Ties keep the store order.
func SortPage(page []Artwork, mode string) {
	switch mode {
	case SortPopular:
		sort.SliceStable(page, func(i, j int) bool { return page[i].Views > page[j].Views })
	case SortLiked:
		sort.SliceStable(page, func(i, j int) bool { return page[i].Likes > page[j].Likes })
	}
}
