// Package model holds the content-store object types the storefront reads
// and writes. All objects are owned by the content store; values here are
// per-request snapshots.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout matches the millisecond UTC timestamps written into
// order_date, review_date and tracking fields.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t the way the storefront stores dates in metadata.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Object is the envelope shared by every content-store object.
type Object struct {
	ID         string     `json:"id,omitempty"`
	Slug       string     `json:"slug,omitempty"`
	Title      string     `json:"title,omitempty"`
	Type       string     `json:"type,omitempty"`
	Content    string     `json:"content,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

// Image is a media metafield.
type Image struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// Ref is a relation metafield. The content store returns it as an embedded
// object when queried with depth >= 1 and as a bare object ID otherwise.
// Encoding always writes the ID when one is known.
type Ref[T any] struct {
	ID     string
	Object *T
}

// RefTo builds a reference that encodes as the bare ID.
func RefTo[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Resolved reports whether the embedded object is present.
func (r Ref[T]) Resolved() bool {
	return r.Object != nil
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	}

	var obj T
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	var env struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	*r = Ref[T]{ID: env.ID, Object: &obj}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.ID != "" {
		return json.Marshal(r.ID)
	}
	if r.Object != nil {
		return json.Marshal(r.Object)
	}
	return []byte("null"), nil
}

// Money is a fixed-point rupee amount. It decodes from JSON numbers,
// numeric strings, empty strings and null (the last two as zero), and
// encodes as a JSON number.
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string such as "249.50".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MoneyFromInt returns a whole-rupee amount.
func MoneyFromInt(v int64) Money {
	return Money{decimal.NewFromInt(v)}
}

// MoneyOf wraps a decimal.
func MoneyOf(d decimal.Decimal) Money {
	return Money{d}
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.UnmarshalJSON(b)
}

// Number is a numeric metafield as the content store returns it: a JSON
// number, a numeric string, an empty string or null. The last two decode
// as zero. It is only used to decode; model fields stay plain numbers.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = Number(v)
	return nil
}
