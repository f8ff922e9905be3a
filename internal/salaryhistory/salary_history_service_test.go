package salaryhistory_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	salaryhistoryerrors "github.com/AIforimpact22/HR-amas/internal/salaryhistory/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	createFn         func(ctx context.Context, rec *salaryhistory.SalaryRecord) error
	closeCurrentFn   func(ctx context.Context, employeeID string, closeDate time.Time) error
	findOpenFn       func(ctx context.Context, employeeID string) (*salaryhistory.SalaryRecord, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]salaryhistory.SalaryRecord, error)
	findEffectiveFn  func(ctx context.Context, employeeID string, day time.Time) (*salaryhistory.SalaryRecord, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) salaryhistory.Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, rec *salaryhistory.SalaryRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, rec)
	}
	return nil
}

func (f *fakeRepository) CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error {
	if f.closeCurrentFn != nil {
		return f.closeCurrentFn(ctx, employeeID, closeDate)
	}
	return nil
}

func (f *fakeRepository) FindOpen(ctx context.Context, employeeID string) (*salaryhistory.SalaryRecord, error) {
	if f.findOpenFn != nil {
		return f.findOpenFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindByEmployee(ctx context.Context, employeeID string) ([]salaryhistory.SalaryRecord, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindEffective(ctx context.Context, employeeID string, day time.Time) (*salaryhistory.SalaryRecord, error) {
	if f.findEffectiveFn != nil {
		return f.findEffectiveFn(ctx, employeeID, day)
	}
	return nil, nil
}

func TestSalaryHistoryService_GetHistory(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	closedTo := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepository{
		findByEmployeeFn: func(ctx context.Context, id string) ([]salaryhistory.SalaryRecord, error) {
			assert.Equal(t, employeeID.String(), id)
			return []salaryhistory.SalaryRecord{
				{
					ID:            uuid.New(),
					EmployeeID:    employeeID,
					Salary:        120000,
					EffectiveFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
					Reason:        "promotion",
				},
				{
					ID:            uuid.New(),
					EmployeeID:    employeeID,
					Salary:        100000,
					EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					EffectiveTo:   &closedTo,
					Reason:        "Initial contract rate",
				},
			}, nil
		},
	}
	svc := salaryhistory.NewService(repo)

	records, err := svc.GetHistory(ctx, employeeID.String())

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int64(120000), records[0].Salary)
	assert.Nil(t, records[0].EffectiveTo)
	assert.Equal(t, "2024-03-31", *records[1].EffectiveTo)
	assert.Equal(t, "Initial contract rate", records[1].Reason)
}

func TestSalaryHistoryService_GetHistory_InvalidID(t *testing.T) {
	svc := salaryhistory.NewService(&fakeRepository{})

	_, err := svc.GetHistory(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, salaryhistoryerrors.ErrInvalidEmployeeID)
}

func TestSalaryHistoryService_ResolveAt(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("resolves covering record", func(t *testing.T) {
		repo := &fakeRepository{
			findEffectiveFn: func(ctx context.Context, id string, day time.Time) (*salaryhistory.SalaryRecord, error) {
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)
				return &salaryhistory.SalaryRecord{
					EmployeeID:    employeeID,
					Salary:        100000,
					EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					Reason:        "Initial contract rate",
				}, nil
			},
		}
		svc := salaryhistory.NewService(repo)

		resp, err := svc.ResolveAt(ctx, employeeID.String(), "2024-03-01")

		assert.NoError(t, err)
		assert.True(t, resp.Resolved)
		assert.Equal(t, int64(100000), resp.Salary)
		assert.Equal(t, "2024-01-01", resp.EffectiveFrom)
	})

	t.Run("no covering record is a zero state", func(t *testing.T) {
		svc := salaryhistory.NewService(&fakeRepository{})

		resp, err := svc.ResolveAt(ctx, employeeID.String(), "2023-12-31")

		assert.NoError(t, err)
		assert.False(t, resp.Resolved)
		assert.Equal(t, int64(0), resp.Salary)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := salaryhistory.NewService(&fakeRepository{})

		_, err := svc.ResolveAt(ctx, employeeID.String(), "01-03-2024")

		assert.ErrorIs(t, err, salaryhistoryerrors.ErrInvalidDateFormat)
	})
}
