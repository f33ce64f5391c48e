package compliance

import (
	"strings"

	"folkify/internal/domain/media"
)

// Field is one checklist answer. Each variant decides for itself whether it
// counts as filled.
type Field interface {
	Filled() bool
}

type Bool bool

func (b Bool) Filled() bool { return bool(b) }

type Text string

func (t Text) Filled() bool { return strings.TrimSpace(string(t)) != "" }

type List []string

func (l List) Filled() bool {
	for _, item := range l {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// DocumentRef is an uploaded certificate or licence.
type DocumentRef struct {
	File *media.FileMeta
}

func (d DocumentRef) Filled() bool {
	return d.File != nil && (d.File.URL != "" || d.File.ProviderID != "")
}
