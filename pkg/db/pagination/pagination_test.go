package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token := EncodeCursor(Cursor{ID: "123456789", CreatedAt: "2026-03-10T12:00:00Z"})

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "123456789", cursor.ID)
	assert.Equal(t, "2026-03-10T12:00:00Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64 at all!!!")
	assert.Error(t, err)
}

func TestLimitClamps(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Pagination{}.Limit())
	assert.Equal(t, DefaultPageSize, Pagination{PageSize: -3}.Limit())
	assert.Equal(t, 10, Pagination{PageSize: 10}.Limit())
	assert.Equal(t, MaxPageSize, Pagination{PageSize: 9000}.Limit())
}

func TestBuildPageTrimsOverfetch(t *testing.T) {
	items := []string{"a", "b", "c"}

	info, page := BuildPage(items, 2, func(s string) Cursor { return Cursor{ID: s} })
	require.Len(t, page, 2)
	assert.True(t, info.HasMore)

	cursor, err := DecodeCursor(info.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, "b", cursor.ID)
}

func TestBuildPageLastPage(t *testing.T) {
	info, page := BuildPage([]string{"a", "b"}, 2, func(s string) Cursor { return Cursor{ID: s} })
	require.Len(t, page, 2)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	info, page = BuildPage([]string{}, 2, func(s string) Cursor { return Cursor{ID: s} })
	assert.Empty(t, page)
	assert.False(t, info.HasMore)
}
