package service

import (
	"testing"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApplicationService(t *testing.T) (*ApplicationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewApplicationService(repository.NewApplicationRepository(db), repository.NewProjectRepository(db), db)
	return svc, db
}

func projectCount(t *testing.T, db *gorm.DB, projectID uint) int {
	t.Helper()
	var p model.Project
	require.NoError(t, db.First(&p, projectID).Error)
	return p.ApplicationCount
}

func TestApply(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	app, err := svc.Apply(studentID, ApplyRequest{ProjectID: project.ID, CoverLetter: "你好"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationSubmitted, app.Status)
	assert.Equal(t, 1, projectCount(t, db, project.ID))
}

func TestApplyRejectsDuplicate(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	_, err := svc.Apply(studentID, ApplyRequest{ProjectID: project.ID})
	require.NoError(t, err)

	_, err = svc.Apply(studentID, ApplyRequest{ProjectID: project.ID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
	assert.Equal(t, 1, projectCount(t, db, project.ID))
}

func TestApplyAllowedAfterWithdraw(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	app, err := svc.Apply(studentID, ApplyRequest{ProjectID: project.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Withdraw(studentID, app.ID))

	_, err = svc.Apply(studentID, ApplyRequest{ProjectID: project.ID})
	require.NoError(t, err)
}

func TestApplyProjectGates(t *testing.T) {
	svc, db := newTestApplicationService(t)

	draft := seedProject(t, db, ownerID, model.ProjectDraft)
	_, err := svc.Apply(studentID, ApplyRequest{ProjectID: draft.ID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	full := seedProject(t, db, ownerID, model.ProjectActive)
	require.NoError(t, db.Model(full).Updates(map[string]interface{}{
		"max_applicants":    1,
		"application_count": 1,
	}).Error)
	_, err = svc.Apply(studentID, ApplyRequest{ProjectID: full.ID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = svc.Apply(studentID, ApplyRequest{ProjectID: 9999})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestStartReview(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationSubmitted)

	reviewed, err := svc.StartReview(ownerID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationUnderReview, reviewed.Status)

	accepted := seedApplication(t, db, project.ID, 11, model.ApplicationAccepted)
	_, err = svc.StartReview(ownerID, accepted.ID)
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestReviewDecision(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationUnderReview)

	reviewed, err := svc.Review(ownerID, app.ID, ReviewRequest{Decision: "accepted", Notes: "面试通过"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationAccepted, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, ownerID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "面试通过", reviewed.ReviewNotes)

	// a decision is terminal
	_, err = svc.Review(ownerID, app.ID, ReviewRequest{Decision: "rejected"})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestReviewWithdrawnApplication(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationWithdrawn)

	_, err := svc.Review(ownerID, app.ID, ReviewRequest{Decision: "accepted"})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestReviewAuthz(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationSubmitted)

	_, err := svc.Review(2, app.ID, ReviewRequest{Decision: "accepted"})
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	_, err = svc.Review(ownerID, 9999, ReviewRequest{Decision: "accepted"})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestWithdraw(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	app, err := svc.Apply(studentID, ApplyRequest{ProjectID: project.ID})
	require.NoError(t, err)
	require.Equal(t, 1, projectCount(t, db, project.ID))

	require.NoError(t, svc.Withdraw(studentID, app.ID))

	var got model.Application
	require.NoError(t, db.First(&got, app.ID).Error)
	assert.Equal(t, model.ApplicationWithdrawn, got.Status)
	assert.Equal(t, 0, projectCount(t, db, project.ID))
}

func TestWithdrawCounterNeverNegative(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationPending)

	// counter already drifted to zero
	require.NoError(t, svc.Withdraw(studentID, app.ID))
	assert.Equal(t, 0, projectCount(t, db, project.ID))
}

func TestWithdrawBlockedAfterDecision(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)

	for _, status := range []model.ApplicationStatus{
		model.ApplicationAccepted,
		model.ApplicationRejected,
		model.ApplicationCompleted,
	} {
		app := seedApplication(t, db, project.ID, studentID, status)
		err := svc.Withdraw(studentID, app.ID)
		assert.Equal(t, util.KindValidation, util.KindOf(err), "status %s", status)
	}

	withdrawn := seedApplication(t, db, project.ID, studentID, model.ApplicationWithdrawn)
	err := svc.Withdraw(studentID, withdrawn.ID)
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestWithdrawAuthz(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	app := seedApplication(t, db, project.ID, studentID, model.ApplicationPending)

	err := svc.Withdraw(99, app.ID)
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	err = svc.Withdraw(studentID, 9999)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestListByProjectOwnerOnly(t *testing.T) {
	svc, db := newTestApplicationService(t)
	project := seedProject(t, db, ownerID, model.ProjectActive)
	seedApplication(t, db, project.ID, studentID, model.ApplicationSubmitted)
	seedApplication(t, db, project.ID, 11, model.ApplicationSubmitted)

	apps, err := svc.ListByProject(ownerID, project.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	_, err = svc.ListByProject(2, project.ID)
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))
}
