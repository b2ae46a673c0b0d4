package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is a single item exactly as the API returned it.
// Its shape is controlled entirely by the remote API.
type RawRecord map[string]any

// RecordID wraps the opaque identifier of a record.
// It is used only for display and ordering, and is not unique across sources.
type RecordID struct {
	value any
}

// NewRecordID wraps a decoded JSON scalar as a RecordID.
func NewRecordID(v any) RecordID {
	return RecordID{value: v}
}

// Value returns the wrapped scalar.
func (id RecordID) Value() any {
	return id.value
}

// IsZero reports whether the record carried no id.
func (id RecordID) IsZero() bool {
	return id.value == nil
}

// String renders the id for display. A missing id renders as "".
func (id RecordID) String() string {
	return ScalarString(id.value)
}

// Numeric interprets the id as a number for tie-break ordering.
// Missing or non-numeric ids are treated as zero.
func (id RecordID) Numeric() float64 {
	switch v := id.value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// MarshalJSON encodes the wrapped scalar unchanged.
func (id RecordID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON stores any JSON value as the id.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	id.value = v
	return nil
}

// ScalarString coerces a decoded JSON scalar to its string form.
// nil becomes "", numbers use the shortest representation.
func ScalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprint(s)
	}
}

// Record is the canonical, alias-resolved shape used throughout the read path.
type Record struct {
	ID             RecordID  `json:"id"`
	Source         SourceTag `json:"fuente"`
	RegisteredAt   string    `json:"fecha_registro,omitempty"`
	Name           string    `json:"nombre"`
	Identification string    `json:"identificacion"`
	Phone          string    `json:"celular"`
	Address        string    `json:"direccion"`
	Neighborhood   string    `json:"barrio"`

	// Raw holds the item as received, for callers that need extra fields.
	Raw RawRecord `json:"-"`
}

// Key returns a display key that is stable across re-renders.
// Records without an id fall back to their position.
func (r *Record) Key(position int) string {
	if r.ID.IsZero() {
		return fmt.Sprintf("%s-%d", r.Source, position)
	}
	return fmt.Sprintf("%s-%s", r.Source, r.ID.String())
}

// SearchableFields returns the five fields matched by free-text search.
func (r *Record) SearchableFields() [5]string {
	return [5]string{r.Name, r.Identification, r.Phone, r.Address, r.Neighborhood}
}

// RegisteredTime parses RegisteredAt.
// It returns false when the value is missing or not a recognised timestamp.
func (r *Record) RegisteredTime() (time.Time, bool) {
	return ParseTimestamp(r.RegisteredAt)
}

// timestampLayouts are tried in order after RFC 3339.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp parses the timestamp formats seen in the registry API:
// RFC 3339, SQL-style datetimes (local time when no zone is given),
// date-only values (UTC) and epoch milliseconds.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
