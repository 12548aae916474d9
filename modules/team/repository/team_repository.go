package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

// TeamRepositoryInterface is the team-directory storage contract. The
// scheduling core only ever reads from it.
type TeamRepositoryInterface interface {
	Create(ctx context.Context, member *entity.TeamMember) (*entity.TeamMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TeamMember, error)
	List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamMemberEntity, error)
	Update(ctx context.Context, member *entity.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}
