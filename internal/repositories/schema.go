package repositories

import (
	"database/sql"
	"log"

	intdb "courtbook/internal/db"
)

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id                 BIGINT       NOT NULL AUTO_INCREMENT,
	p1                 VARCHAR(100) NOT NULL,
	p2                 VARCHAR(100) NOT NULL,
	p3                 VARCHAR(100) NOT NULL,
	court              VARCHAR(8)   NOT NULL,
	submit_time        VARCHAR(5)   NOT NULL,
	scheduled_datetime DATETIME     NOT NULL,
	confirmation_email VARCHAR(255) NULL,
	phone              VARCHAR(32)  NULL,
	student_id         VARCHAR(32)  NULL,
	booking_name       VARCHAR(100) NULL,
	booking_email      VARCHAR(255) NULL,
	created_at         DATETIME     NOT NULL,
	status             VARCHAR(16)  NOT NULL DEFAULT 'pending',
	PRIMARY KEY (id),
	KEY idx_bookings_created_at (created_at),
	KEY idx_bookings_court (court)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the bookings table when it is missing.
func EnsureSchema(db *sql.DB) error {
	if intdb.HasTable(db, "bookings") {
		return nil
	}
	if _, err := db.Exec(createBookingsTable); err != nil {
		return err
	}
	log.Println("created bookings table")
	return nil
}
