package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultLimit is the page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many rows any cursor query can request.
	MaxLimit = 60
)

// Cursor is the keyset position after the last row of a page: the value
// of the sort column plus the row id as a tie-break.
type Cursor struct {
	Field string
	Key   string
	ID    uuid.UUID
}

// NormalizeLimit enforces the default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer returns the normalized limit plus one to detect the next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

func TimeCursor(field string, at time.Time, id uuid.UUID) Cursor {
	return Cursor{Field: field, Key: at.UTC().Format(time.RFC3339Nano), ID: id}
}

func DecimalCursor(field string, value decimal.Decimal, id uuid.UUID) Cursor {
	return Cursor{Field: field, Key: value.String(), ID: id}
}

// Time returns the key as a timestamp.
func (c Cursor) Time() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, c.Key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	return t, nil
}

// Decimal returns the key as a decimal.
func (c Cursor) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid cursor value: %w", err)
	}
	return d, nil
}

// EncodeCursor builds an opaque cursor string.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%s|%s", cursor.Field, cursor.Key, cursor.ID.String())
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes a cursor string. An empty value yields nil.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}

	id, err := uuid.Parse(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{Field: parts[0], Key: parts[1], ID: id}, nil
}
