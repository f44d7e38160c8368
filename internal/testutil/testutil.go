package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPasswordCost keeps bcrypt fast in tests
const TestPasswordCost = 4

// SetupTestDB creates a fresh sqlite database with the full schema in a
// temporary directory
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// TestRoster returns a roster with a few eligible students
func TestRoster() *domain.Roster {
	return domain.NewRoster([]domain.RosterEntry{
		{RollNumber: "CS101", Email: "a@b.com", Branch: "CSE", Year: "3"},
		{RollNumber: "CS102", Email: "c@d.com", Branch: "CSE", Year: "2"},
		{RollNumber: "EE201", Email: "e@f.com", Branch: "EEE", Year: "4"},
	})
}

// CreateTestStudent inserts a verified student with the given password
func CreateTestStudent(t *testing.T, db *gorm.DB, roll, pw string) *models.Student {
	t.Helper()

	hash, err := password.HashWithCost(pw, TestPasswordCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	student := &models.Student{
		RollNumber:   roll,
		Email:        roll + "@college.edu",
		PasswordHash: hash,
		Branch:       "CSE",
		Year:         "3",
		IsVerified:   true,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("Failed to create student: %v", err)
	}
	return student
}

// CreateTestAdmin inserts an admin account
func CreateTestAdmin(t *testing.T, db *gorm.DB, username, pw string) *models.Admin {
	t.Helper()

	hash, err := password.HashWithCost(pw, TestPasswordCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return admin
}

// CreateTestCandidate inserts a candidate without a portrait
func CreateTestCandidate(t *testing.T, db *gorm.DB, name string, office domain.Office) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{Name: name, Position: string(office)}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("Failed to create candidate: %v", err)
	}
	return candidate
}

// CreateTestVote inserts a ballot directly
func CreateTestVote(t *testing.T, db *gorm.DB, roll, president, vicePresident, secretary, treasurer string) *models.Vote {
	t.Helper()

	vote := &models.Vote{
		RollNumber:    roll,
		President:     president,
		VicePresident: vicePresident,
		Secretary:     secretary,
		Treasurer:     treasurer,
	}
	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("Failed to create vote: %v", err)
	}
	return vote
}

// FullSelections returns a complete ballot
func FullSelections(president, vicePresident, secretary, treasurer string) domain.Selections {
	return domain.Selections{
		domain.OfficePresident:     president,
		domain.OfficeVicePresident: vicePresident,
		domain.OfficeSecretary:     secretary,
		domain.OfficeTreasurer:     treasurer,
	}
}
