package config

import (
	"os"
	"strings"
)

// FormFields maps each logical answer to its Google Form entry id. The ids
// are tied to one specific upstream form and change whenever that form is
// rebuilt, so they live here in one place.
type FormFields struct {
	Name         string
	Phone        string
	Email        string
	TypeOfClient string
	StudentCode  string
	Department   string
	Faculty      string
	Degree       string
	YearOfStudy  string
	CourtTime    string
	P1           string
	P2           string
	P3           string
}

// DefaultFormFields returns the entry ids of the current upstream form.
func DefaultFormFields() FormFields {
	return FormFields{
		Name:         "entry.1447004130",
		Phone:        "entry.1162689565",
		Email:        "entry.397132313",
		TypeOfClient: "entry.60086338",
		StudentCode:  "entry.1758389959",
		Department:   "entry.578101683",
		Faculty:      "entry.2138721565",
		Degree:       "entry.188451592",
		YearOfStudy:  "entry.1610619932",
		CourtTime:    "entry.1063303379",
		P1:           "entry.1572571765",
		P2:           "entry.1458140720",
		P3:           "entry.1099932442",
	}
}

// FieldEntry pairs a logical answer name with its form entry id.
type FieldEntry struct {
	Name string
	ID   string
}

// Entries lists every configured field, for schema verification against the
// live form.
func (f FormFields) Entries() []FieldEntry {
	return []FieldEntry{
		{"name", f.Name},
		{"phone", f.Phone},
		{"email", f.Email},
		{"type_of_client", f.TypeOfClient},
		{"student_code", f.StudentCode},
		{"department", f.Department},
		{"faculty", f.Faculty},
		{"degree", f.Degree},
		{"year_of_study", f.YearOfStudy},
		{"court_time", f.CourtTime},
		{"p1", f.P1},
		{"p2", f.P2},
		{"p3", f.P3},
	}
}

// Profile holds the requester identity the form is filled with. The form
// belongs to a single account holder; the per-booking parts (players, court)
// come from the booking itself.
type Profile struct {
	Name         string
	Phone        string
	Email        string
	StudentCode  string
	Department   string
	Faculty      string
	YearOfStudy  string
	Degree       string
	TypeOfClient string
}

// LoadProfile reads the requester profile from BOOKING_* env vars.
func LoadProfile() Profile {
	get := func(key string) string { return strings.TrimSpace(os.Getenv(key)) }
	return Profile{
		Name:         get("BOOKING_NAME"),
		Phone:        get("BOOKING_PHONE"),
		Email:        get("BOOKING_EMAIL"),
		StudentCode:  get("BOOKING_STUDENT_CODE"),
		Department:   get("BOOKING_DEPARTMENT"),
		Faculty:      get("BOOKING_FACULTY"),
		YearOfStudy:  get("BOOKING_YEAR_OF_STUDY"),
		Degree:       get("BOOKING_DEGREE"),
		TypeOfClient: get("BOOKING_TYPE_OF_CLIENT"),
	}
}
