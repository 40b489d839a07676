package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func extractFrom(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Extract(c)
}

func TestExtract_Defaults(t *testing.T) {
	params := extractFrom("")
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Skip)
}

func TestExtract_ExplicitValues(t *testing.T) {
	params := extractFrom("page=3&limit=10")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 20, params.Skip)
}

func TestExtract_ClampsLimit(t *testing.T) {
	params := extractFrom("limit=10000")
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestExtract_IgnoresGarbage(t *testing.T) {
	params := extractFrom("page=abc&limit=-5")
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestMetadataFrom(t *testing.T) {
	meta := MetadataFrom(45, Params{Page: 2, Limit: 20, Skip: 20})
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}
