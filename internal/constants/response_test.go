package constants

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=3&limit=20", 3, 20, 40},
		{"clamps low", "?page=0&limit=0", 1, 1, 0},
		{"clamps high limit", "?page=2&limit=500", 2, 100, 100},
		{"garbage", "?page=abc&limit=xyz", 1, 1, 0},
		{"huge page", "?page=92233720368547758&limit=100", MaxPage, 100, (MaxPage - 1) * 100},
		{"clamps high page", "?page=9223372036854775807&limit=100", MaxPage, 100, (MaxPage - 1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/cars"+tt.query, nil)

			p := ParsePaginationParams(c)
			if p.Offset < 0 {
				t.Fatalf("offset overflowed: %d", p.Offset)
			}
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("got page=%d limit=%d offset=%d, want %d/%d/%d",
					p.Page, p.Limit, p.Offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestPageTotal(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := PageTotal(tt.total, tt.limit); got != tt.want {
			t.Errorf("PageTotal(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestBuildErrorResponse(t *testing.T) {
	resp := BuildErrorResponse("Invalid token", nil)
	if resp[ResponseFieldSuccess] != false {
		t.Error("Expected success=false")
	}
	if _, ok := resp[ResponseFieldDetails]; ok {
		t.Error("Expected no details key when details is nil")
	}

	resp = BuildErrorResponse("Validation failed", map[string]string{"email": "invalid"})
	if _, ok := resp[ResponseFieldDetails]; !ok {
		t.Error("Expected details key")
	}
}
