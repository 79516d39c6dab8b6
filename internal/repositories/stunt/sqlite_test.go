package stunt_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	apperrors "github.com/KirkDiggler/age-toolbox/internal/errors"
	stuntrepo "github.com/KirkDiggler/age-toolbox/internal/repositories/stunt"
	"github.com/KirkDiggler/age-toolbox/internal/testutils"
)

var stuntRowColumns = []string{"id", "name", "cost", "category", "setting", "description"}

type SQLiteMockTestSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo stuntrepo.Repository
	ctx  context.Context
}

func (s *SQLiteMockTestSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db = db
	s.mock = mock
	s.ctx = context.Background()

	s.mock.ExpectExec("CREATE TABLE IF NOT EXISTS stunts").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_stunts_category").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := stuntrepo.NewSQLite(s.ctx, &stuntrepo.SQLiteConfig{DB: db})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteMockTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	_ = s.db.Close()
}

func (s *SQLiteMockTestSuite) TestCreateUsesInsertID() {
	s.mock.ExpectExec("INSERT INTO stunts").
		WithArgs("Dirty Fighting", "2", "Combat", "Gritty", "Dirty Fighting effect description.").
		WillReturnResult(sqlmock.NewResult(42, 1))

	output, err := s.repo.Create(s.ctx, stuntrepo.CreateInput{
		Stunt: testutils.CreateTestStunt(0, "Dirty Fighting", "2", "Combat", testutils.Setting("Gritty")),
	})
	s.Require().NoError(err)
	s.Equal(int64(42), output.Stunt.ID)
}

func (s *SQLiteMockTestSuite) TestCreateStoresUniversalAsNull() {
	s.mock.ExpectExec("INSERT INTO stunts").
		WithArgs("Skirmish", "1", "Combat", nil, "Skirmish effect description.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := s.repo.Create(s.ctx, stuntrepo.CreateInput{
		Stunt: testutils.CreateTestStunt(0, "Skirmish", "1", "Combat", nil),
	})
	s.Require().NoError(err)
}

func (s *SQLiteMockTestSuite) TestDriverErrorIsInternal() {
	s.mock.ExpectQuery("SELECT (.+) FROM stunts ORDER BY id").
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.repo.List(s.ctx, stuntrepo.ListInput{})
	s.Require().Error(err)
	s.True(apperrors.IsInternal(err))
}

func (s *SQLiteMockTestSuite) TestGetScansNullableSetting() {
	s.mock.ExpectQuery("SELECT (.+) FROM stunts WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(stuntRowColumns).
			AddRow(int64(7), "Sudden Insight", "X", "Mental", nil, "Think fast."))

	output, err := s.repo.Get(s.ctx, stuntrepo.GetInput{ID: 7})
	s.Require().NoError(err)
	s.Equal(entities.Cost("X"), output.Stunt.Cost)
	s.True(output.Stunt.IsUniversal())
}

func (s *SQLiteMockTestSuite) TestGetNoRows() {
	s.mock.ExpectQuery("SELECT (.+) FROM stunts WHERE id = ?").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(stuntRowColumns))

	_, err := s.repo.Get(s.ctx, stuntrepo.GetInput{ID: 9})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
	s.Equal(int64(9), apperrors.GetMeta(err)["stunt_id"])
}

func (s *SQLiteMockTestSuite) TestUpdateNoRowsAffected() {
	s.mock.ExpectExec("UPDATE stunts SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.repo.Update(s.ctx, stuntrepo.UpdateInput{
		Stunt: testutils.CreateTestStunt(3, "Disarm", "2-4", "Combat", nil),
	})
	s.True(apperrors.IsNotFound(err))
}

func (s *SQLiteMockTestSuite) TestDeleteCanceled() {
	s.mock.ExpectExec("DELETE FROM stunts").
		WithArgs(int64(3)).
		WillReturnError(context.Canceled)

	_, err := s.repo.Delete(s.ctx, stuntrepo.DeleteInput{ID: 3})
	s.Require().Error(err)
	s.Equal(apperrors.CodeCanceled, apperrors.GetCode(err))
}

func TestSQLiteMockTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteMockTestSuite))
}

func TestNewSQLiteMigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS stunts").
		WillReturnError(errors.New("database is locked"))

	if _, err := stuntrepo.NewSQLite(context.Background(), &stuntrepo.SQLiteConfig{DB: db}); err == nil {
		t.Fatal("expected migration error")
	}
	if _, err := stuntrepo.NewSQLite(context.Background(), &stuntrepo.SQLiteConfig{}); !apperrors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stunts.db")

	db, err := stuntrepo.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	repo, err := stuntrepo.NewSQLite(ctx, &stuntrepo.SQLiteConfig{DB: db})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := repo.Create(ctx, stuntrepo.CreateInput{Stunt: testutils.CreateTestStunt(0, "Skirmish", "1", "Combat", nil)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Migrations are idempotent on an existing file
	if _, err := stuntrepo.NewSQLite(ctx, &stuntrepo.SQLiteConfig{DB: db}); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	if _, err := stuntrepo.OpenSQLite("  "); !apperrors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for blank path, got %v", err)
	}
}
