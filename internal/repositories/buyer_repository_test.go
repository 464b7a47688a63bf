package repositories

import (
	"strings"
	"testing"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

func TestBuildFilter_NoFilters(t *testing.T) {
	where, orderBy, args := buildFilter(models.BuyerListQuery{})

	if where != "WHERE 1=1" {
		t.Errorf("where = %q, want bare WHERE 1=1", where)
	}
	if orderBy != "ORDER BY updated_at desc" {
		t.Errorf("orderBy = %q, want updated_at desc default", orderBy)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildFilter_EqualityFilters(t *testing.T) {
	q := models.BuyerListQuery{City: "Mohali", Status: "New", Timeline: "0-3m"}
	where, _, args := buildFilter(q)

	for _, clause := range []string{"city = $1", "status = $2", "timeline = $3"} {
		if !strings.Contains(where, clause) {
			t.Errorf("where %q missing clause %q", where, clause)
		}
	}
	want := []any{"Mohali", "New", "0-3m"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildFilter_SortAllowList(t *testing.T) {
	tests := []struct {
		sortBy string
		order  string
		want   string
	}{
		{"city", "asc", "ORDER BY city asc"},
		{"fullName", "desc", "ORDER BY full_name desc"},
		{"propertyType", "asc", "ORDER BY property_type asc"},
		// unknown keys and orders fall back, never reach the SQL text
		{"owner_id; DROP TABLE buyers--", "asc", "ORDER BY updated_at asc"},
		{"createdAt", "", "ORDER BY updated_at desc"},
		{"city", "sideways", "ORDER BY city desc"},
	}
	for _, tt := range tests {
		_, orderBy, _ := buildFilter(models.BuyerListQuery{SortBy: tt.sortBy, Order: tt.order})
		if orderBy != tt.want {
			t.Errorf("sortBy=%q order=%q: orderBy = %q, want %q", tt.sortBy, tt.order, orderBy, tt.want)
		}
	}
}

func TestBuildFilter_SearchTermIsParameterised(t *testing.T) {
	q := models.BuyerListQuery{Search: "rahul"}
	where, _, args := buildFilter(q)

	if !strings.Contains(where, "full_name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1") {
		t.Errorf("where = %q, want single-arg ILIKE across the three columns", where)
	}
	if len(args) != 1 || args[0] != "%rahul%" {
		t.Errorf("args = %v, want [%%rahul%%]", args)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"rahul", "rahul"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildFilter_SearchAfterFilters(t *testing.T) {
	q := models.BuyerListQuery{City: "Mohali", Search: "98%"}
	_, _, args := buildFilter(q)

	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 entries", args)
	}
	if args[1] != `%98\%%` {
		t.Errorf("escaped search arg = %v, want %q", args[1], `%98\%%`)
	}
}
