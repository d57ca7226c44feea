package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Limit)

	p = GetPaginationParams(2, 20)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, GetPaginationParams(2, 2))
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, PaginationMeta{Page: 2, Limit: 2, TotalCount: 5, TotalPages: 3}, meta)

	page, meta = Paginate(items, GetPaginationParams(3, 2))
	assert.Equal(t, []int{5}, page)
	assert.Equal(t, 3, meta.TotalPages)

	page, _ = Paginate(items, GetPaginationParams(9, 2))
	assert.Empty(t, page)

	page, meta = Paginate(items, GetPaginationParams(1, 0))
	assert.Equal(t, items, page)
	assert.Equal(t, PaginationMeta{Page: 1, Limit: 5, TotalCount: 5, TotalPages: 1}, meta)

	page, meta = Paginate([]int{}, GetPaginationParams(1, 10))
	assert.Empty(t, page)
	assert.Equal(t, 0, meta.TotalPages)
}
