package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/testutil"
)

func TestCompletionRepo_GetAndUpdateWeight(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		f := newSkipJobFixture(t, db)
		job := f.create(t, "2025-01-15")
		ctx := context.Background()

		created, _, err := f.repo.Complete(ctx, completionFor(job), []model.JobStatus{model.JobStatusCreated})
		require.NoError(t, err)

		repo := NewCompletionRepo(db)
		byJob, err := repo.GetByJobID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byJob.ID)

		_, err = repo.GetByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrCompletionNotFound)

		updated, err := repo.UpdateWeight(ctx, created.ID, &model.UpdateCompletionWeightRequest{
			NetWeightKg:  model.Some(1250.5),
			MaterialType: model.Some("Mixed C&D"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.NetWeightKg)
		assert.InDelta(t, 1250.5, *updated.NetWeightKg, 0.001)
		require.NotNil(t, updated.MaterialType)
		assert.Equal(t, "Mixed C&D", *updated.MaterialType)

		cleared, err := repo.UpdateWeight(ctx, created.ID, &model.UpdateCompletionWeightRequest{
			MaterialType: model.Null[string](),
		})
		require.NoError(t, err)
		assert.Nil(t, cleared.MaterialType)
		require.NotNil(t, cleared.NetWeightKg, "absent field is left untouched")

		_, err = repo.UpdateWeight(ctx, uuid.NewString(), &model.UpdateCompletionWeightRequest{
			NetWeightKg: model.Some(1.0),
		})
		require.ErrorIs(t, err, ErrCompletionNotFound)
	})
}

func TestCompletionRepo_ListForTracker(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		f := newSkipJobFixture(t, db)
		ctx := context.Background()
		from := []model.JobStatus{model.JobStatusCreated}

		first := completionFor(f.create(t, "2025-01-14"))
		first.CompletedTime = time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC)
		_, _, err := f.repo.Complete(ctx, first, from)
		require.NoError(t, err)

		second := completionFor(f.create(t, "2025-01-15"))
		_, _, err = f.repo.Complete(ctx, second, from)
		require.NoError(t, err)

		rows, err := NewCompletionRepo(db).ListForTracker(ctx, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, second.SkipJobID, rows[0].SkipJobID)
		require.NotNil(t, rows[0].CustomerName)
		assert.Equal(t, "Acme Ltd", *rows[0].CustomerName)
		assert.Equal(t, "150125-0001-IMR", rows[0].DocketNo)
	})
}

func TestStatusHistoryRepo_AppendAndList(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewStatusHistoryRepo(db)
		ctx := context.Background()
		jobID := uuid.NewString()
		docket := "150125-0001-IMR"
		created := model.JobStatusCreated

		require.NoError(t, repo.Append(ctx, &model.StatusHistoryEntry{
			SkipJobID: jobID, DocketNo: &docket, NewStatus: model.JobStatusCreated, ChangedBy: model.ActorOffice,
		}))
		require.NoError(t, repo.Append(ctx, &model.StatusHistoryEntry{
			SkipJobID: jobID, DocketNo: &docket, OldStatus: &created,
			NewStatus: model.JobStatusCancelled, ChangedBy: model.ActorOffice,
		}))

		entries, err := repo.ListByJob(ctx, jobID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Nil(t, entries[0].OldStatus)
		assert.Equal(t, model.JobStatusCreated, entries[0].NewStatus)
		require.NotNil(t, entries[1].OldStatus)
		assert.Equal(t, model.JobStatusCreated, *entries[1].OldStatus)
		assert.Equal(t, model.JobStatusCancelled, entries[1].NewStatus)
		assert.Less(t, entries[0].ID, entries[1].ID)

		empty, err := repo.ListByJob(ctx, "bogus")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestReferenceRepo(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewReferenceRepo(db)
		ctx := context.Background()

		c, err := repo.CreateCustomer(ctx, &model.CreateCustomerRequest{Name: "Acme Ltd", Address: testutil.StringPtr("1 Main St")})
		require.NoError(t, err)
		active, err := repo.CreateDriver(ctx, &model.CreateDriverRequest{Name: "J. Doe", IsActive: true})
		require.NoError(t, err)
		_, err = repo.CreateDriver(ctx, &model.CreateDriverRequest{Name: "Retired", IsActive: false})
		require.NoError(t, err)

		got, err := repo.GetCustomer(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", got.Name)

		_, err = repo.GetDriver(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrDriverNotFound)

		drivers, err := repo.ListActiveDrivers(ctx)
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		assert.Equal(t, active.ID, drivers[0].ID)

		found, err := repo.FindCustomerByName(ctx, "Acme Ltd")
		require.NoError(t, err)
		require.NotNil(t, found)
		missing, err := repo.FindDriverByName(ctx, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
