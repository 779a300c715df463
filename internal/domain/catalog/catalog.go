// Package catalog holds the company and product shapes exchanged with the
// backend, plus the list query conventions shared by both resources.
package catalog

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Order is the sort direction understood by the backend list endpoints.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// ParseOrder normalizes a query value, defaulting to ascending.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(OrderDesc)) {
		return OrderDesc
	}
	return OrderAsc
}

// ListQuery carries the paging convention of the backend: page, name, order.
type ListQuery struct {
	Page  int
	Name  string
	Order Order
}

// Normalize clamps the page and fills the default order.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	q.Name = strings.TrimSpace(q.Name)
	q.Order = ParseOrder(string(q.Order))
	return q
}

// Values encodes the query for the backend. Name is always sent, even when empty.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("name", q.Name)
	v.Set("order", string(q.Order))
	return v
}

// LatestCompanyValues is the query for the dashboard "lastly added" companies.
func LatestCompanyValues() url.Values {
	v := url.Values{}
	v.Set("page", "1")
	v.Set("last", "last")
	return v
}

// LatestProductValues is LatestCompanyValues plus the empty name filter the
// product listing expects.
func LatestProductValues() url.Values {
	v := LatestCompanyValues()
	v.Set("name", "")
	return v
}

// DeleteResult is the backend answer to a DELETE.
type DeleteResult struct {
	Affected int `json:"affected"`
}

// Created is the backend answer to a POST.
type Created struct {
	ID int64 `json:"id"`
}

// Latest is a dashboard slice plus the total record count.
type Latest[T any] struct {
	Count int
	Items []T
}

// FlexString decodes either a JSON string or a JSON number into a string.
// The backend is inconsistent about numeric identifiers such as legal numbers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
