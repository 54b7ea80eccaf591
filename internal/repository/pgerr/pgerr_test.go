package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "payments_order_id_key"})
	if !IsUniqueViolation(unique) || IsForeignKeyViolation(unique) {
		t.Fatalf("expected unique violation")
	}
	if Constraint(unique) != "payments_order_id_key" {
		t.Fatalf("unexpected constraint %q", Constraint(unique))
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("expected fk violation")
	}
	if !IsCheckViolation(&pgconn.PgError{Code: "23514"}) {
		t.Fatalf("expected check violation")
	}
	if IsUniqueViolation(errors.New("boom")) || Constraint(nil) != "" {
		t.Fatalf("plain errors must not classify")
	}
}
