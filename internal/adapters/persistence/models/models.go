package models

import (
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Student represents students table (verified voter accounts)
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RollNumber   string    `gorm:"uniqueIndex;size:50;not null" json:"roll_number"`
	Email        string    `gorm:"size:200;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Branch       string    `gorm:"size:100" json:"branch"`
	Year         string    `gorm:"size:50" json:"year"`
	IsVerified   bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

// StudentResponse DTO
type StudentResponse struct {
	ID         uint      `json:"id"`
	RollNumber string    `json:"roll_number"`
	Email      string    `json:"email"`
	Branch     string    `json:"branch"`
	Year       string    `json:"year"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:         s.ID,
		RollNumber: s.RollNumber,
		Email:      s.Email,
		Branch:     s.Branch,
		Year:       s.Year,
		IsVerified: s.IsVerified,
		CreatedAt:  s.CreatedAt,
	}
}

// Admin represents admins table
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// ============================================================
// Election
// ============================================================

// Vote represents votes table. RollNumber is unique: the index is the
// only enforcement of one ballot per voter. Candidate names are stored as
// plain strings, so deleting a candidate leaves cast ballots untouched.
type Vote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RollNumber    string    `gorm:"uniqueIndex;size:50;not null" json:"roll_number"`
	President     string    `gorm:"size:200;not null" json:"president"`
	VicePresident string    `gorm:"size:200;not null" json:"vice_president"`
	Secretary     string    `gorm:"size:200;not null" json:"secretary"`
	Treasurer     string    `gorm:"size:200;not null" json:"treasurer"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Vote) TableName() string {
	return "votes"
}

// voteColumns maps each office to its column on votes
var voteColumns = map[domain.Office]string{
	domain.OfficePresident:     "president",
	domain.OfficeVicePresident: "vice_president",
	domain.OfficeSecretary:     "secretary",
	domain.OfficeTreasurer:     "treasurer",
}

// VoteColumn returns the votes column holding the office's selection
func VoteColumn(office domain.Office) (string, bool) {
	col, ok := voteColumns[office]
	return col, ok
}

// NewVote builds a row from a roll number and complete selections
func NewVote(rollNumber string, sel domain.Selections) *Vote {
	return &Vote{
		RollNumber:    rollNumber,
		President:     sel[domain.OfficePresident],
		VicePresident: sel[domain.OfficeVicePresident],
		Secretary:     sel[domain.OfficeSecretary],
		Treasurer:     sel[domain.OfficeTreasurer],
	}
}

// ToDomain converts the row to a domain.Ballot
func (v *Vote) ToDomain() *domain.Ballot {
	return &domain.Ballot{
		ID:         v.ID,
		RollNumber: v.RollNumber,
		Selections: domain.Selections{
			domain.OfficePresident:     v.President,
			domain.OfficeVicePresident: v.VicePresident,
			domain.OfficeSecretary:     v.Secretary,
			domain.OfficeTreasurer:     v.Treasurer,
		},
		CreatedAt: v.CreatedAt,
	}
}

// Candidate represents candidates table
type Candidate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Position  string    `gorm:"size:100;not null;index" json:"position"`
	Image     *string   `gorm:"size:200" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// ImageName returns the stored portrait file name, or ""
func (c *Candidate) ImageName() string {
	if c.Image == nil {
		return ""
	}
	return *c.Image
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables and unique indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Admin{},
		&Vote{},
		&Candidate{},
	)
}
