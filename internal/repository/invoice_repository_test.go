package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brfservice/brf-portal-api/internal/models"
)

// These tests pin the transaction shape of the status/event write: one BEGIN,
// a guarded UPDATE on invoices, an INSERT into invoice_events, one COMMIT.
// Behavior-level coverage lives in the service tests on sqlite.

func setupMockRepo(t *testing.T) (InvoiceRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewInvoiceRepository(db), mock
}

func TestTransitionWithEvent_CommitsStatusAndEventTogether(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "invoice_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.TransitionWithEvent(
		42,
		[]models.InvoiceStatus{models.InvoiceStatusNew, models.InvoiceStatusPendingAttestation},
		models.InvoiceStatusAttested,
		&models.InvoiceEvent{EventType: models.EventAttested},
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// When the stored status fails the guard, the transaction rolls back and no
// event row is ever attempted.
func TestTransitionWithEvent_StatusConflictWritesNothing(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.TransitionWithEvent(
		42,
		[]models.InvoiceStatus{models.InvoiceStatusAttested},
		models.InvoiceStatusPaid,
		&models.InvoiceEvent{EventType: models.EventPaid},
	)
	require.ErrorIs(t, err, ErrStatusConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failed event insert must take the status update down with it.
func TestTransitionWithEvent_EventInsertFailureRollsBack(t *testing.T) {
	repo, mock := setupMockRepo(t)

	insertErr := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "invoice_events"`).
		WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.TransitionWithEvent(
		42,
		[]models.InvoiceStatus{models.InvoiceStatusNew},
		models.InvoiceStatusPendingAttestation,
		&models.InvoiceEvent{EventType: models.EventSent},
	)
	require.ErrorIs(t, err, insertErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithEvent_SingleTransaction(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "invoice_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	invoice := &models.Invoice{
		OrganizationID: 1,
		Amount:         100,
		Currency:       "SEK",
		Status:         models.InvoiceStatusNew,
	}
	event := &models.InvoiceEvent{EventType: models.EventCreated}

	err := repo.CreateWithEvent(invoice, event)
	require.NoError(t, err)
	require.EqualValues(t, 7, invoice.ID)
	require.EqualValues(t, 7, event.InvoiceID)
	require.NoError(t, mock.ExpectationsWereMet())
}
