package database

import (
	"strings"
	"testing"
	"time"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	opts := NewListQueryOptions("jobs")
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithColumns("id", "title", "company_name"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id", "title", "company_name" FROM "jobs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithAliasedColumn(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithColumns("company_name AS company"),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT "company_name" AS "company" FROM "jobs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCountOnly(),
		WithCondition(WhereCond("is_active", Equal, true)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT COUNT(*) FROM "jobs" WHERE "is_active" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != true {
		t.Errorf("Expected args [true], got %v", args)
	}
}

func TestBuildListQuery_WhereILike(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("title", ILike, "%engineer%")),
		WithCondition(WhereCond("location", ILike, "%remote%")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" WHERE "title" ILIKE $1 AND "location" ILIKE $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "%engineer%" || args[1] != "%remote%" {
		t.Errorf("Expected args [%%engineer%%, %%remote%%], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_StringSlice(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("company_name", In, []string{"Acme", "Globex"})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" WHERE "company_name" IN ($1, $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "Acme" || args[1] != "Globex" {
		t.Errorf("Expected args [Acme, Globex], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_EmptySliceSkipped(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("company_name", In, []string{})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_RawCondition(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("is_active", Equal, true)),
		WithCondition(WhereRawCond("expiration_date >= $1", now)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" WHERE "is_active" = $1 AND expiration_date >= $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != now {
		t.Errorf("Expected args [true, %v], got %v", now, args)
	}
}

func TestBuildListQuery_RawCondition_RepeatedPlaceholder(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("title", ILike, "%go%")),
		WithCondition(WhereRawCond("(posting_date <= $1 AND expiration_date >= $1)", "2026-03-15")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" WHERE "title" ILIKE $1 AND (posting_date <= $2 AND expiration_date >= $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %v", args)
	}
}

func TestBuildListQuery_OrderLimitOffset(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithCondition(WhereCond("is_active", Equal, true)),
		WithOrderBy("posting_date", "desc"),
		WithLimit(10),
		WithOffset(20),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" WHERE "is_active" = $1 ORDER BY "posting_date" DESC LIMIT $2 OFFSET $3`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 3 || args[1] != 10 || args[2] != 20 {
		t.Errorf("Expected args [true, 10, 20], got %v", args)
	}
}

func TestBuildListQuery_InvalidOrderDirDropped(t *testing.T) {
	opts := NewListQueryOptions("jobs",
		WithOrderBy("posting_date", "sideways"),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT * FROM "jobs" ORDER BY "posting_date"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	opts := NewListQueryOptions(`jobs"; DROP TABLE jobs; --`,
		WithCondition(WhereCond(`title" OR 1=1 --`, Equal, "x")),
	)
	query, _ := BuildListQuery(opts)

	if query == "" {
		t.Fatal("expected non-empty query")
	}
	// Embedded quotes must be doubled, never closing the identifier.
	if want := `"jobs""; DROP TABLE jobs; --"`; !strings.Contains(query, want) {
		t.Errorf("table identifier not sanitized: %q", query)
	}
}
