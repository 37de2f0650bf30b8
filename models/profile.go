package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// Date is a calendar date. It accepts "YYYY-MM-DD" or RFC3339 on input and
// always renders as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" or RFC3339. A timestamp keeps the calendar
// day written in its own offset.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.NewDateTimeFromTime(d.Time))
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var dt primitive.DateTime
	if err := bson.UnmarshalValue(t, data, &dt); err != nil {
		return err
	}
	d.Time = dt.Time().UTC()
	return nil
}

// AgeAt returns completed years between d and now: the calendar-year
// difference, less one when the anniversary has not yet been reached.
func (d Date) AgeAt(now time.Time) int {
	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	return age
}

type Address struct {
	Line1    string `bson:"line1,omitempty" json:"line1,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode  string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

type Education struct {
	Level string `bson:"level,omitempty" json:"level,omitempty"`
}

// UserProfile carries the applicant attributes the rules engine reads.
// A nil pointer or empty string means the attribute was not supplied.
type UserProfile struct {
	DateOfBirth   *Date          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Age           *int           `bson:"age,omitempty" json:"age,omitempty" binding:"omitempty,gte=0,lte=150"`
	Income        *float64       `bson:"income,omitempty" json:"income,omitempty" binding:"omitempty,gte=0"`
	Address       *Address       `bson:"address,omitempty" json:"address,omitempty"`
	Education     *Education     `bson:"education,omitempty" json:"education,omitempty"`
	Gender        string         `bson:"gender,omitempty" json:"gender,omitempty"`
	MaritalStatus string         `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
	Occupation    string         `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Category      string         `bson:"category,omitempty" json:"category,omitempty"`
	HasDisability *bool          `bson:"hasDisability,omitempty" json:"hasDisability,omitempty"`
	IsBPL         *bool          `bson:"isBPL,omitempty" json:"isBPL,omitempty"`
	IsStudent     *bool          `bson:"isStudent,omitempty" json:"isStudent,omitempty"`
	Custom        map[string]any `bson:"custom,omitempty" json:"custom,omitempty"`
}

// AgeAt prefers the age derived from DateOfBirth and falls back to the
// explicit Age field.
func (p UserProfile) AgeAt(now time.Time) (int, bool) {
	if p.DateOfBirth != nil && !p.DateOfBirth.IsZero() {
		return p.DateOfBirth.AgeAt(now), true
	}
	if p.Age != nil {
		return *p.Age, true
	}
	return 0, false
}

// MergeMissing returns a copy of p where every attribute p lacks is taken
// from stored. Attributes supplied in p always win.
func (p UserProfile) MergeMissing(stored UserProfile) UserProfile {
	out := p
	if out.DateOfBirth == nil {
		out.DateOfBirth = stored.DateOfBirth
	}
	if out.Age == nil {
		out.Age = stored.Age
	}
	if out.Income == nil {
		out.Income = stored.Income
	}
	if out.Address == nil || out.Address.State == "" {
		if stored.Address != nil {
			out.Address = stored.Address
		}
	}
	if out.Education == nil || out.Education.Level == "" {
		if stored.Education != nil {
			out.Education = stored.Education
		}
	}
	if out.Gender == "" {
		out.Gender = stored.Gender
	}
	if out.MaritalStatus == "" {
		out.MaritalStatus = stored.MaritalStatus
	}
	if out.Occupation == "" {
		out.Occupation = stored.Occupation
	}
	if out.Category == "" {
		out.Category = stored.Category
	}
	if out.HasDisability == nil {
		out.HasDisability = stored.HasDisability
	}
	if out.IsBPL == nil {
		out.IsBPL = stored.IsBPL
	}
	if out.IsStudent == nil {
		out.IsStudent = stored.IsStudent
	}
	if len(stored.Custom) > 0 {
		merged := make(map[string]any, len(stored.Custom)+len(p.Custom))
		for k, v := range stored.Custom {
			merged[k] = v
		}
		for k, v := range p.Custom {
			merged[k] = v
		}
		out.Custom = merged
	}
	return out
}
