package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/doc-archive/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 25, MaxPageSize: 200}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pagination.Config
		wantErr bool
	}{
		{"defaults", pagination.Config{}, false},
		{"default exceeds max", pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "40")

	cfg := pagination.Config{}
	if err := cfg.Finalize(&pagination.Env{DefaultPageSize: "TEST_PAGE_SIZE"}); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.DefaultPageSize != 40 {
		t.Errorf("DefaultPageSize = %d, want 40", cfg.DefaultPageSize)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantSearch   string
		wantSort     int
	}{
		{"empty", "", 1, 25, "", 0},
		{"explicit", "page=3&page_size=10&search=65&sort=-Date,Name", 3, 10, "65", 2},
		{"clamped", "page=-1&page_size=1000", 1, 200, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
			if tt.wantSearch == "" && req.Search != nil {
				t.Errorf("Search = %q, want nil", *req.Search)
			}
			if tt.wantSearch != "" && (req.Search == nil || *req.Search != tt.wantSearch) {
				t.Errorf("Search = %v, want %q", req.Search, tt.wantSearch)
			}
			if len(req.Sort) != tt.wantSort {
				t.Errorf("len(Sort) = %d, want %d", len(req.Sort), tt.wantSort)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		data      []int
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", nil, 0, 10, 1},
		{"exact", []int{1, 2}, 20, 10, 2},
		{"remainder", []int{1}, 21, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.Data == nil {
				t.Error("Data is nil, want empty slice")
			}
		})
	}
}
