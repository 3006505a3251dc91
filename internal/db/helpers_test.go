package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`SELECT table_name`).
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))

	if !HasTable(conn, "bookings") {
		t.Fatalf("expected existing table to be found")
	}

	// no row back means the schema has no such table
	mock.ExpectQuery(`SELECT table_name`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if HasTable(conn, "missing") {
		t.Fatalf("missing table reported as present")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
