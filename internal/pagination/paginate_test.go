package pagination

import (
    "fmt"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestPaginateBasics(t *testing.T) {
    items := []int{1, 2, 3, 4, 5, 6, 7}

    p := Paginate(items, 1, 3)
    assert.Equal(t, []int{1, 2, 3}, p.Items)
    assert.Equal(t, 3, p.TotalPages)
    assert.Equal(t, 7, p.TotalItems)
    assert.True(t, p.HasNext)
    assert.False(t, p.HasPrev)

    p = Paginate(items, 3, 3)
    assert.Equal(t, []int{7}, p.Items)
    assert.False(t, p.HasNext)
    assert.True(t, p.HasPrev)
}

func TestPaginateClamping(t *testing.T) {
    items := []int{1, 2, 3}

    // past the end clamps to the last page
    p := Paginate(items, 99, 2)
    assert.Equal(t, 2, p.Page)
    assert.Equal(t, []int{3}, p.Items)

    // below the start clamps to page 1
    p = Paginate(items, -5, 2)
    assert.Equal(t, 1, p.Page)

    // empty input yields page 1 of 0
    p = Paginate([]int{}, 4, 2)
    assert.Equal(t, 1, p.Page)
    assert.Equal(t, 0, p.TotalPages)
    assert.Empty(t, p.Items)
    assert.False(t, p.HasNext)
    assert.False(t, p.HasPrev)
}

// Concatenating all pages in order must reproduce the input exactly,
// and every page except possibly the last must be full.
func TestPaginateIsPartition(t *testing.T) {
    items := make([]string, 0, 25)
    for i := 0; i < 25; i++ {
        items = append(items, fmt.Sprintf("item-%02d", i))
    }
    const pageSize = 9

    first := Paginate(items, 1, pageSize)
    var got []string
    for page := 1; page <= first.TotalPages; page++ {
        p := Paginate(items, page, pageSize)
        if page < first.TotalPages {
            require.Len(t, p.Items, pageSize)
        }
        got = append(got, p.Items...)
    }
    assert.Equal(t, items, got)
}

// 25 countries, page size 9, filtered to the 7 whose name contains
// "is": a single page holding all 7 with no next page.
func TestFilterThenPaginate(t *testing.T) {
    names := make([]string, 0, 25)
    for i := 0; i < 18; i++ {
        names = append(names, fmt.Sprintf("country-%02d", i))
    }
    for i := 0; i < 7; i++ {
        names = append(names, fmt.Sprintf("island-%d", i))
    }
    require.Len(t, names, 25)

    filtered := Filter(names, func(s string) bool {
        return strings.Contains(s, "is")
    })
    require.Len(t, filtered, 7)

    p := Paginate(filtered, 1, 9)
    assert.Equal(t, 1, p.TotalPages)
    assert.Len(t, p.Items, 7)
    assert.False(t, p.HasNext)
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
    in := []int{5, 2, 8, 1, 9}
    out := Filter(in, func(n int) bool { return n > 2 })
    assert.Equal(t, []int{5, 8, 9}, out)
    assert.Equal(t, []int{5, 2, 8, 1, 9}, in)
}
