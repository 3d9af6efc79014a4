package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of travel dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Value stores the date as a time at UTC midnight.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

type Destination struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	TravelDate *Date     `json:"travelDate,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	OwnerID    int       `json:"ownerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewDestination is validated input for creating a destination.
type NewDestination struct {
	Name       string
	TravelDate *Date
	Notes      *string
}

// DestinationPatch holds the fields to change; nil means unchanged.
type DestinationPatch struct {
	Name       *string
	TravelDate *Date
	Notes      *string
}

// Empty reports whether the patch changes nothing.
func (p DestinationPatch) Empty() bool {
	return p.Name == nil && p.TravelDate == nil && p.Notes == nil
}
