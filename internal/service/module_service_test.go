package service

import (
	"testing"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID uint = 1

func TestAddModuleAppends(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)

	for _, title := range []string{"入门", "实战", "收尾"} {
		m, err := svc.AddModule(ownerID, project.ID, ModuleCreateRequest{Title: title})
		require.NoError(t, err)
		assert.Equal(t, title, m.Title)
	}

	assert.Equal(t, []string{"入门", "实战", "收尾"}, orderedTitles(t, db, project.ID))
}

func TestAddModuleInsertsAndShifts(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	seedModules(t, db, project.ID, "A", "B", "C")

	m, err := svc.AddModule(ownerID, project.ID, ModuleCreateRequest{Title: "X", OrderIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, m.OrderIndex)

	assert.Equal(t, []string{"A", "X", "B", "C"}, orderedTitles(t, db, project.ID))
}

func TestAddModuleClampsPosition(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	seedModules(t, db, project.ID, "A", "B")

	// far beyond the end appends
	m, err := svc.AddModule(ownerID, project.ID, ModuleCreateRequest{Title: "tail", OrderIndex: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, m.OrderIndex)

	// zero and negative both append
	m, err = svc.AddModule(ownerID, project.ID, ModuleCreateRequest{Title: "tail2", OrderIndex: -5})
	require.NoError(t, err)
	assert.Equal(t, 4, m.OrderIndex)

	assert.Equal(t, []string{"A", "B", "tail", "tail2"}, orderedTitles(t, db, project.ID))
}

func TestAddModuleAuthz(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)

	_, err := svc.AddModule(2, project.ID, ModuleCreateRequest{Title: "X"})
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	_, err = svc.AddModule(ownerID, 9999, ModuleCreateRequest{Title: "X"})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestDeleteModuleReindexesSurvivors(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A", "B", "C")

	require.NoError(t, svc.DeleteModule(ownerID, modules[1].ID))

	assert.Equal(t, []string{"A", "C"}, orderedTitles(t, db, project.ID))
}

func TestDeleteModuleRepairsGaps(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A", "B", "C")

	// corrupt the sequence the way a partial failure would
	require.NoError(t, db.Model(&modules[2]).Update("order_index", 7).Error)

	require.NoError(t, svc.DeleteModule(ownerID, modules[0].ID))

	assert.Equal(t, []string{"B", "C"}, orderedTitles(t, db, project.ID))
}

func TestDeleteModuleErrors(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A")

	err := svc.DeleteModule(2, modules[0].ID)
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	err = svc.DeleteModule(ownerID, 9999)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	// nothing was removed
	assert.Equal(t, []string{"A"}, orderedTitles(t, db, project.ID))
}

func TestReorderModules(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A", "B", "C")

	err := svc.ReorderModules(ownerID, project.ID, []uint{modules[2].ID, modules[0].ID, modules[1].ID})
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, orderedTitles(t, db, project.ID))
}

func TestReorderModulesRejectsBadSets(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A", "B", "C")

	other := seedProject(t, db, ownerID, model.ProjectDraft)
	foreign := seedModules(t, db, other.ID, "Z")

	cases := []struct {
		name string
		ids  []uint
	}{
		{"too few", []uint{modules[0].ID, modules[1].ID}},
		{"too many", []uint{modules[0].ID, modules[1].ID, modules[2].ID, modules[2].ID}},
		{"duplicate", []uint{modules[0].ID, modules[0].ID, modules[1].ID}},
		{"foreign id", []uint{modules[0].ID, modules[1].ID, foreign[0].ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ReorderModules(ownerID, project.ID, tc.ids)
			assert.Equal(t, util.KindValidation, util.KindOf(err))
		})
	}

	// order untouched after every rejection
	assert.Equal(t, []string{"A", "B", "C"}, orderedTitles(t, db, project.ID))
}

func TestReorderModulesAuthz(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	modules := seedModules(t, db, project.ID, "A", "B")

	err := svc.ReorderModules(2, project.ID, []uint{modules[1].ID, modules[0].ID})
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))

	err = svc.ReorderModules(ownerID, 9999, []uint{modules[0].ID})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestGetProjectModulesOrdered(t *testing.T) {
	svc, db := newTestModuleService(t)
	project := seedProject(t, db, ownerID, model.ProjectDraft)
	seedModules(t, db, project.ID, "A", "B", "C")

	modules, err := svc.GetProjectModules(project.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "A", modules[0].Title)
	assert.Equal(t, "C", modules[2].Title)

	_, err = svc.GetProjectModules(9999)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}
