package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClampsPerPage(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: -1}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 15, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 4, PerPage: 15}
	assert.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", createdAt)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(createdAt))
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

type row struct {
	id        string
	createdAt time.Time
}

func TestNewCursorPaginationTrimsExtraRow(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]row, 4)
	for i := range rows {
		rows[i] = row{id: string(rune('a' + i)), createdAt: base.Add(time.Duration(i) * time.Minute)}
	}

	// Fetched limit+1 rows, so one more page exists
	pg, trimmed := NewCursorPagination(rows, 3,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.createdAt },
	)

	require.Len(t, trimmed, 3)
	assert.True(t, pg.HasNext)
	require.NotNil(t, pg.NextCursor)

	next := &CursorParams{Cursor: *pg.NextCursor}
	cursor, err := next.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "c", cursor.ID)
}

func TestNewCursorPaginationLastPage(t *testing.T) {
	rows := []row{{id: "a", createdAt: time.Now()}}

	pg, trimmed := NewCursorPagination(rows, 3,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.createdAt },
	)

	assert.Len(t, trimmed, 1)
	assert.False(t, pg.HasNext)
}
