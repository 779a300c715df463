package httpx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/target/catalog-console/internal/domain/catalog"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name string
		in   url.Values
		want catalog.ListQuery
	}{
		{"defaults", url.Values{}, catalog.ListQuery{Page: 1, Order: catalog.OrderAsc}},
		{"invalid page", url.Values{"page": {"abc"}}, catalog.ListQuery{Page: 1, Order: catalog.OrderAsc}},
		{"negative page", url.Values{"page": {"-3"}}, catalog.ListQuery{Page: 1, Order: catalog.OrderAsc}},
		{
			"all fields",
			url.Values{"page": {"3"}, "name": {"  acme "}, "order": {"desc"}},
			catalog.ListQuery{Page: 3, Name: "acme", Order: catalog.OrderDesc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseListQuery(tt.in))
		})
	}
}

func TestBuildPagination(t *testing.T) {
	q := catalog.ListQuery{Page: 2, Name: "acme", Order: catalog.OrderDesc}
	p := buildPagination("/company", q, 3, 10)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 30, p.TotalCount)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, "/company?name=acme&order=DESC&page=1", p.PrevURL)
	assert.Equal(t, "/company?name=acme&order=DESC&page=3", p.NextURL)
}

func TestBuildPagination_Edges(t *testing.T) {
	first := buildPagination("/product", catalog.ListQuery{Page: 1, Order: catalog.OrderAsc}, 1, 10)
	assert.False(t, first.HasPrev)
	assert.False(t, first.HasNext)
	assert.Empty(t, first.PrevURL)
	assert.Empty(t, first.NextURL)

	empty := buildPagination("/product", catalog.ListQuery{Page: 1}, -1, 10)
	assert.Zero(t, empty.TotalPages)
	assert.Zero(t, empty.TotalCount)
}
