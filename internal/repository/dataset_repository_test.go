package repository

import "testing"

func TestSortColumn(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   string
	}{
		{"id allowed", "id", "id"},
		{"dataset_id allowed", "dataset_id", "dataset_id"},
		{"title allowed", "title", "title"},
		{"status allowed", "status", "status"},
		{"updated_at allowed", "updated_at", "updated_at"},
		{"inserted_at allowed", "inserted_at", "inserted_at"},
		{"empty falls back", "", "inserted_at"},
		{"unknown column falls back", "created_at", "inserted_at"},
		{"injection attempt falls back", "id; DROP TABLE dataset_items--", "inserted_at"},
		{"case sensitive", "Title", "inserted_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sortColumn(tt.sortBy); got != tt.want {
				t.Errorf("sortColumn(%q) = %q, want %q", tt.sortBy, got, tt.want)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"in range passes through", 50, 50},
		{"lower bound", 1, 1},
		{"upper bound", 100, 100},
		{"zero gets default", 0, 20},
		{"negative gets default", -5, 20},
		{"over cap clamps to cap", 5000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampLimit(tt.limit); got != tt.want {
				t.Errorf("clampLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestSortDirection(t *testing.T) {
	tests := []struct {
		order string
		want  string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
	}

	for _, tt := range tests {
		if got := sortDirection(tt.order); got != tt.want {
			t.Errorf("sortDirection(%q) = %q, want %q", tt.order, got, tt.want)
		}
	}
}
