package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

func TestMemoryUpdate_MissingMemberErrors(t *testing.T) {
	repo := NewMemoryTeamRepository()

	ghost := &entity.TeamMember{Name: "Ghost", Role: "SLP"}
	ghost.ID = uuid.New()

	err := repo.Update(context.Background(), ghost)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ghost.ID.String())
}

func TestMemoryUpdate_ExistingMember(t *testing.T) {
	repo := NewMemoryTeamRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.TeamMember{Name: "Maria Lopez", Role: "SLP"})
	require.NoError(t, err)

	created.Role = "Lead SLP"
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lead SLP", got.Role)
}
