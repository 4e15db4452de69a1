package service

import (
	"testing"

	"milhas-tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberCreate_DefaultsAndValidation(t *testing.T) {
	db, _, activity := testServices(t)
	user := seedUser(t, db, "ana")
	svc := NewMemberService(db, activity)

	m, err := svc.Create(ctx, user.ID, model.MemberRequest{Name: "Ana", ProfileEmoji: "✈️"})
	require.NoError(t, err)
	assert.Equal(t, "extended", m.Role)
	assert.Equal(t, user.ID, m.UserID)

	_, err = svc.Create(ctx, user.ID, model.MemberRequest{Name: "Rui", Role: "owner"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, int64(1), activityCount(t, db, user.ID))
}

func TestMemberList_ScopedToUser(t *testing.T) {
	db, _, activity := testServices(t)
	ana := seedUser(t, db, "ana")
	rui := seedUser(t, db, "rui")
	seedMember(t, db, ana.ID, "Ana")
	seedMember(t, db, rui.ID, "Rui")
	svc := NewMemberService(db, activity)

	members, err := svc.List(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ana", members[0].Name)

	empty, err := svc.List(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestMemberUpdate(t *testing.T) {
	db, _, activity := testServices(t)
	user := seedUser(t, db, "ana")
	m := seedMember(t, db, user.ID, "Ana")
	svc := NewMemberService(db, activity)

	updated, err := svc.Update(ctx, m.ID, model.MemberRequest{Name: "Ana Clara", Role: "primary"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", updated.Name)
	assert.Equal(t, "primary", updated.Role)

	_, err = svc.Update(ctx, 404, model.MemberRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberDelete_CascadesEnrollments(t *testing.T) {
	db, table, activity := testServices(t)
	user := seedUser(t, db, "ana")
	smiles := seedProgram(t, db, "Smiles", "GOL")
	m := seedMember(t, db, user.ID, "Ana")
	seedEnrollment(t, db, m.ID, smiles.ID, 10000)
	svc := NewMemberService(db, activity)

	require.NoError(t, svc.Delete(ctx, m.ID))

	var enrollments int64
	require.NoError(t, db.Model(&model.MemberProgram{}).Count(&enrollments).Error)
	assert.Equal(t, int64(0), enrollments)

	stats, err := NewDashboardService(db, table).Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalMembers)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), ErrNotFound)
}
