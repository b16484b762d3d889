package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/trajectory"
)

// newMockTrajectoryRepository creates a GormTrajectoryRepository with a mocked SQL connection
func newMockTrajectoryRepository(t *testing.T) (*GormTrajectoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTrajectoryRepository(gormDB), mock, mockDB
}

func trajectoryRows(id, studentID, admissionID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "version", "reference", "status", "student_id",
		"training_acronym", "training_year", "entity_acronym", "campus_name",
		"admission_id", "admitted_at", "created_at", "updated_at",
	}).AddRow(
		id, 1, 123456, string(trajectory.StatusAdmitted), studentID,
		"CDSC", 2024, "CDSS", "Louvain-la-Neuve",
		admissionID, now, now, now,
	)
}

func TestNewGormTrajectoryRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormTrajectoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing trajectory", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		trajectoryID := uuid.New()
		studentID := uuid.New()
		admissionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(trajectoryID, 1).
			WillReturnRows(trajectoryRows(trajectoryID, studentID, admissionID))

		traj, err := repo.FindByID(context.Background(), trajectoryID)

		assert.NoError(t, err)
		assert.NotNil(t, traj)
		assert.Equal(t, trajectoryID, traj.ID)
		assert.Equal(t, studentID, traj.StudentID)
		assert.Equal(t, trajectory.StatusAdmitted, traj.Status)
		assert.Equal(t, 123456, traj.Reference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing trajectory", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		trajectoryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(trajectoryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		traj, err := repo.FindByID(context.Background(), trajectoryID)

		assert.Error(t, err)
		assert.Nil(t, traj)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTrajectoryRepository_FindByAdmission(t *testing.T) {
	t.Run("finds trajectory by admission", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		trajectoryID := uuid.New()
		studentID := uuid.New()
		admissionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE admission_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(admissionID, 1).
			WillReturnRows(trajectoryRows(trajectoryID, studentID, admissionID))

		traj, err := repo.FindByAdmission(context.Background(), admissionID)

		assert.NoError(t, err)
		require.NotNil(t, traj)
		assert.Equal(t, admissionID, traj.AdmissionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no trajectory exists for admission", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		admissionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE admission_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(admissionID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		traj, err := repo.FindByAdmission(context.Background(), admissionID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.Nil(t, traj)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTrajectoryRepository_FindByStudent(t *testing.T) {
	t.Run("applies status filter and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		trajectoryID := uuid.New()
		studentID := uuid.New()
		admissionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE student_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(studentID, string(trajectory.StatusAdmitted), 20).
			WillReturnRows(trajectoryRows(trajectoryID, studentID, admissionID))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(trajectory.StatusAdmitted)

		trajectories, err := repo.FindByStudent(context.Background(), studentID, filter)

		assert.NoError(t, err)
		require.Len(t, trajectories, 1)
		assert.Equal(t, trajectoryID, trajectories[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown sort field and falls back to created_at", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "trajectories" WHERE student_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(studentID, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.DefaultFilter()
		filter.OrderBy = "status; DROP TABLE trajectories;--"

		trajectories, err := repo.FindByStudent(context.Background(), studentID, filter)

		assert.NoError(t, err)
		assert.Empty(t, trajectories)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTrajectoryRepository_SaveWithLock(t *testing.T) {
	t.Run("increments version on successful update", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		traj, err := trajectory.NewTrajectory(uuid.New(), uuid.New(), 123456, "CDSC", 2024, "CDSS", "Louvain-la-Neuve", time.Now())
		require.NoError(t, err)
		traj.Version = 3

		mock.ExpectExec(`UPDATE "trajectories" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), traj)

		assert.NoError(t, err)
		assert.Equal(t, 4, traj.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports concurrent update when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockTrajectoryRepository(t)
		defer mockDB.Close()

		traj, err := trajectory.NewTrajectory(uuid.New(), uuid.New(), 123456, "CDSC", 2024, "CDSS", "Louvain-la-Neuve", time.Now())
		require.NoError(t, err)
		traj.Version = 3

		mock.ExpectExec(`UPDATE "trajectories" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), traj)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_UPDATE", domainErr.Code)
		assert.Equal(t, 3, traj.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
