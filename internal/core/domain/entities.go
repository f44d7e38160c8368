package domain

import (
	"strings"
	"time"
)

// Office is one of the fixed elected positions on the ballot
type Office string

const (
	OfficePresident     Office = "President"
	OfficeVicePresident Office = "Vice President"
	OfficeSecretary     Office = "Secretary"
	OfficeTreasurer     Office = "Treasurer"
)

// Offices lists every office in ballot order
var Offices = []Office{
	OfficePresident,
	OfficeVicePresident,
	OfficeSecretary,
	OfficeTreasurer,
}

// Field returns the snake_case key used for the office in forms and columns
func (o Office) Field() string {
	return strings.ReplaceAll(strings.ToLower(string(o)), " ", "_")
}

// ParseOffice normalizes an office name ("vice president", "VICE_PRESIDENT",
// "Vice President") to its canonical value
func ParseOffice(s string) (Office, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.Join(strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "_")
	for _, o := range Offices {
		if o.Field() == key {
			return o, true
		}
	}
	return "", false
}

// PendingRegistration holds a registration waiting for its one-time code
type PendingRegistration struct {
	RollNumber   string
	Email        string
	PasswordHash string
	Branch       string
	Year         string
	Code         string
	ExpiresAt    time.Time
	Attempts     int
}

// Selections maps each office to the chosen candidate name
type Selections map[Office]string

// Ballot is a single voter's recorded choices
type Ballot struct {
	ID         uint       `json:"id"`
	RollNumber string     `json:"roll_number"`
	Selections Selections `json:"selections"`
	CreatedAt  time.Time  `json:"created_at"`
}

// StudentSession identifies an authenticated voter
type StudentSession struct {
	StudentID  uint
	RollNumber string
}

// AdminSession identifies an authenticated administrator
type AdminSession struct {
	AdminID  uint
	Username string
}

// NormalizeRoll trims and upper-cases a roll number
func NormalizeRoll(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
