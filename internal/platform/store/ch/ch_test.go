package ch

import (
	"context"
	"strings"
	"testing"
)

// TestOpen_BadDSN surfaces a parse error without dialing
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cl, err := Open(ctx, Config{URL: "://not-a-dsn"})
	if err == nil {
		t.Fatalf("expected error for bad DSN, got client %#v", cl)
	}
	if !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("expected parse dsn error, got %v", err)
	}
}

// TestInsert_EmptyRows is a no op and never touches the connection
func TestInsert_EmptyRows(t *testing.T) {
	t.Parallel()

	cl := &CH{} // nil conn is fine: zero rows short-circuits
	if err := cl.Insert(context.Background(), "price_snapshots", []string{"id"}, nil); err != nil {
		t.Fatalf("Insert with no rows returned error: %v", err)
	}
}

// TestInsert_ArityMismatch rejects rows that don't match the column list
func TestInsert_ArityMismatch(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	rows := [][]any{{"a", "b"}}
	err := cl.Insert(context.Background(), "price_snapshots", []string{"id"}, rows)
	if err == nil {
		t.Fatalf("expected arity error, got nil")
	}
	if !strings.Contains(err.Error(), "arity") {
		t.Fatalf("expected arity in error, got %v", err)
	}
}

func TestClientInfo_Products(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo("api", "v1.2.3")
	if len(ci.Products) == 0 {
		t.Fatalf("expected products, got none")
	}
	if ci.Products[0].Name != "farescout" || ci.Products[0].Version != "v1.2.3" {
		t.Fatalf("unexpected first product: %#v", ci.Products[0])
	}
}
