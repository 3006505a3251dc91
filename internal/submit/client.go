// Package submit posts finished bookings to the upstream Google Form.
package submit

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courtbook/internal/config"
)

const requestTimeout = 10 * time.Second

// RequestError is a network-level failure: the form endpoint was never
// reached or the connection broke mid-flight.
type RequestError struct {
	Err error
}

func (e RequestError) Error() string {
	return fmt.Sprintf("form request failed: %v", e.Err)
}

func (e RequestError) Unwrap() error { return e.Err }

// RejectedError means the form endpoint answered with a status outside the
// accepted set.
type RejectedError struct {
	Status int
}

func (e RejectedError) Error() string {
	return fmt.Sprintf("form rejected submission with status %d", e.Status)
}

func IsRequestError(err error) bool {
	var target RequestError
	return errors.As(err, &target)
}

func IsRejected(err error) bool {
	var target RejectedError
	return errors.As(err, &target)
}

// Client fills and posts the configured Google Form. The requester profile
// is fixed per deployment; players and court come from each booking.
type Client struct {
	SubmitURL string
	// ViewURL is the form's public view page, used for schema checks.
	// Left empty it is derived from SubmitURL.
	ViewURL string
	Fields  config.FormFields
	Profile config.Profile

	HTTP *http.Client
}

func NewClient(submitURL string, fields config.FormFields, profile config.Profile) *Client {
	return &Client{
		SubmitURL: submitURL,
		Fields:    fields,
		Profile:   profile,
		HTTP:      &http.Client{Timeout: requestTimeout},
	}
}

// Submit posts one booking. courtName must be the form's full option label,
// not the short alias. HTTP 200, 201 and 301 count as accepted.
func (c *Client) Submit(p1, p2, p3, courtName string) error {
	form := url.Values{}
	form.Set(c.Fields.Name, c.Profile.Name)
	form.Set(c.Fields.Phone, c.Profile.Phone)
	form.Set(c.Fields.Email, c.Profile.Email)
	form.Set(c.Fields.TypeOfClient, c.Profile.TypeOfClient)
	form.Set(c.Fields.StudentCode, c.Profile.StudentCode)
	form.Set(c.Fields.Department, c.Profile.Department)
	form.Set(c.Fields.Faculty, c.Profile.Faculty)
	form.Set(c.Fields.Degree, c.Profile.Degree)
	form.Set(c.Fields.YearOfStudy, c.Profile.YearOfStudy)
	form.Set(c.Fields.CourtTime, courtName)
	form.Set(c.Fields.P1, p1)
	form.Set(c.Fields.P2, p2)
	form.Set(c.Fields.P3, p3)
	form.Set("pageHistory", "0,1,3,4")

	resp, err := c.HTTP.Post(c.SubmitURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return RequestError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusMovedPermanently:
		return nil
	default:
		return RejectedError{Status: resp.StatusCode}
	}
}
