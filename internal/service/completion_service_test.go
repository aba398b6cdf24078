package service

import (
	"testing"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCompletionService(t *testing.T) (*CompletionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCompletionService(db)
	return svc, db
}

func TestCompleteJob(t *testing.T) {
	svc, db := newTestCompletionService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	modules := seedModules(t, db, project.ID, "A", "B")
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationAccepted)

	now := time.Now()
	require.NoError(t, db.Create(&model.ApplicationModuleProgress{
		ApplicationID:   app.ID,
		ProjectModuleID: modules[0].ID,
		IsCompleted:     true,
		CompletedAt:     &now,
	}).Error)

	summary, err := svc.CompleteJob(ownerID, CompleteJobRequest{
		ApplicationID:  app.ID,
		Feedback:       "完成质量很高",
		DeliverableURL: "/uploads/deliverables/report.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, app.ID, summary.ApplicationID)
	assert.Equal(t, "完成质量很高", summary.Feedback)
	assert.Equal(t, 2, summary.TotalModules)
	assert.Equal(t, 1, summary.CompletedCount)
	assert.Equal(t, 50.0, summary.ProgressPercentage)
	assert.False(t, summary.CompletedAt.IsZero())

	var got model.Application
	require.NoError(t, db.First(&got, app.ID).Error)
	assert.Equal(t, model.ApplicationCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "/uploads/deliverables/report.pdf", got.DeliverableURL)
}

func TestCompleteJobExactlyOnce(t *testing.T) {
	svc, db := newTestCompletionService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationAccepted)

	_, err := svc.CompleteJob(ownerID, CompleteJobRequest{ApplicationID: app.ID})
	require.NoError(t, err)

	_, err = svc.CompleteJob(ownerID, CompleteJobRequest{ApplicationID: app.ID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestCompleteJobRequiresAccepted(t *testing.T) {
	svc, db := newTestCompletionService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	for _, status := range []model.ApplicationStatus{
		model.ApplicationSubmitted,
		model.ApplicationPending,
		model.ApplicationUnderReview,
		model.ApplicationRejected,
		model.ApplicationWithdrawn,
	} {
		app := seedApplication(t, db, project.ID, studentID, status)
		_, err := svc.CompleteJob(ownerID, CompleteJobRequest{ApplicationID: app.ID})
		assert.Equal(t, util.KindValidation, util.KindOf(err), "status %s", status)
	}
}

func TestCompleteJobAuthz(t *testing.T) {
	svc, db := newTestCompletionService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationAccepted)

	_, err := svc.CompleteJob(2, CompleteJobRequest{ApplicationID: app.ID})
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	// the student cannot complete their own application
	_, err = svc.CompleteJob(studentID, CompleteJobRequest{ApplicationID: app.ID})
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	_, err = svc.CompleteJob(ownerID, CompleteJobRequest{ApplicationID: 9999})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}
