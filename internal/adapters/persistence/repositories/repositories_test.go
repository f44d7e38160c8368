package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/testutil"
)

func TestStudentRollNumberIsUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewStudentRepository(db)
	ctx := context.Background()

	first := &models.Student{RollNumber: "CS101", Email: "a@b.com", PasswordHash: "x", IsVerified: true}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second := &models.Student{RollNumber: "CS101", Email: "other@b.com", PasswordHash: "y", IsVerified: true}
	if err := repo.Create(ctx, second); !errors.Is(err, repositories.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	exists, err := repo.ExistsByRollNumber(ctx, "CS101")
	if err != nil || !exists {
		t.Errorf("ExistsByRollNumber = %v, %v", exists, err)
	}
}

func TestStudentDeleteKeepsVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	students := repositories.NewStudentRepository(db)
	votes := repositories.NewVoteRepository(db)
	ctx := context.Background()

	student := testutil.CreateTestStudent(t, db, "CS101", "Abcdef")
	testutil.CreateTestVote(t, db, "CS101", "X", "Y", "Z", "W")

	if err := students.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := students.Delete(ctx, student.ID); !repositories.IsNotFound(err) {
		t.Errorf("second delete should be not found, got %v", err)
	}

	voted, err := votes.ExistsByRollNumber(ctx, "CS101")
	if err != nil || !voted {
		t.Errorf("ballot should survive student deletion: %v, %v", voted, err)
	}
}

func TestVoteRollNumberIsUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewVoteRepository(db)
	ctx := context.Background()

	sel := testutil.FullSelections("X", "Y", "Z", "W")
	if err := repo.Create(ctx, models.NewVote("CS101", sel)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, models.NewVote("CS101", sel)); !errors.Is(err, repositories.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 1 {
		t.Errorf("Count = %d, %v; want 1", count, err)
	}
}

func TestVoteSelectionsFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewVoteRepository(db)
	ctx := context.Background()

	testutil.CreateTestVote(t, db, "CS101", "X", "Y", "Z", "W")
	testutil.CreateTestVote(t, db, "CS102", "X2", "Y", "Z", "W")

	names, err := repo.SelectionsFor(ctx, domain.OfficePresident)
	if err != nil {
		t.Fatalf("SelectionsFor failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2", len(names))
	}

	if _, err := repo.SelectionsFor(ctx, domain.Office("Dean")); err == nil {
		t.Error("expected error for unknown office")
	}
}

func TestAdminCreateIfAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewAdminRepository(db)
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, &models.Admin{Username: "Raju", PasswordHash: "h1"})
	if err != nil || !created {
		t.Fatalf("first CreateIfAbsent = %v, %v", created, err)
	}

	created, err = repo.CreateIfAbsent(ctx, &models.Admin{Username: "Raju", PasswordHash: "h2"})
	if err != nil {
		t.Fatalf("second CreateIfAbsent failed: %v", err)
	}
	if created {
		t.Error("second CreateIfAbsent should not insert")
	}

	admin, err := repo.GetByUsername(ctx, "Raju")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if admin.PasswordHash != "h1" {
		t.Error("existing admin must not be overwritten")
	}
}

func TestCandidateOrderingAndExactMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewCandidateRepository(db)
	ctx := context.Background()

	testutil.CreateTestCandidate(t, db, "Zed", domain.OfficePresident)
	testutil.CreateTestCandidate(t, db, "Amy", domain.OfficePresident)
	testutil.CreateTestCandidate(t, db, "Bob", domain.OfficeTreasurer)

	list, err := repo.ListByPosition(ctx, string(domain.OfficePresident))
	if err != nil {
		t.Fatalf("ListByPosition failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Zed" || list[1].Name != "Amy" {
		t.Errorf("expected insertion order [Zed Amy], got %+v", list)
	}

	ok, err := repo.ExistsByNameAndPosition(ctx, "Amy", string(domain.OfficePresident))
	if err != nil || !ok {
		t.Errorf("Amy should exist: %v, %v", ok, err)
	}
	ok, _ = repo.ExistsByNameAndPosition(ctx, "amy", string(domain.OfficePresident))
	if ok {
		t.Error("match must be case-sensitive")
	}
	ok, _ = repo.ExistsByNameAndPosition(ctx, "Bob", string(domain.OfficePresident))
	if ok {
		t.Error("Bob stands for Treasurer, not President")
	}
}
