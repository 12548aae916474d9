package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
)

// TeamServiceInterface is the directory contract the scheduling core reads
// from.
type TeamServiceInterface interface {
	CreateMember(ctx context.Context, req *dto.CreateTeamMemberRequest) (*dto.TeamMemberResponse, *errors.AppError)
	GetMemberByID(ctx context.Context, id uuid.UUID) (*dto.TeamMemberResponse, *errors.AppError)
	ResolveMembers(ctx context.Context, ids []uuid.UUID) ([]entity.TeamMember, *errors.AppError)
	ListMembers(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamMemberEntity, *errors.AppError)
	UpdateMember(ctx context.Context, id uuid.UUID, req *dto.UpdateTeamMemberRequest) (*dto.TeamMemberResponse, *errors.AppError)
	DeleteMember(ctx context.Context, id uuid.UUID) *errors.AppError
}

type TeamService struct {
	repo repository.TeamRepositoryInterface
}

func NewTeamService(repo repository.TeamRepositoryInterface) TeamServiceInterface {
	return &TeamService{repo: repo}
}

func (s *TeamService) CreateMember(ctx context.Context, req *dto.CreateTeamMemberRequest) (*dto.TeamMemberResponse, *errors.AppError) {
	member := &entity.TeamMember{
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		WeeklySchedule: dto.ToWeeklySchedule(req.WeeklySchedule),
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create team member", err)
	}

	return dto.ToTeamMemberResponse(created), nil
}

func (s *TeamService) GetMemberByID(ctx context.Context, id uuid.UUID) (*dto.TeamMemberResponse, *errors.AppError) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team member", err)
	}
	if member == nil {
		return nil, errors.NewNotFoundError("team member", id.String())
	}

	return dto.ToTeamMemberResponse(member), nil
}

// ResolveMembers loads every requested member and fails with a not-found
// error naming the first missing ID.
func (s *TeamService) ResolveMembers(ctx context.Context, ids []uuid.UUID) ([]entity.TeamMember, *errors.AppError) {
	members, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load team members", err)
	}

	found := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		found[m.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, errors.NewNotFoundError("team member", id.String())
		}
	}

	return members, nil
}

func (s *TeamService) ListMembers(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamMemberEntity, *errors.AppError) {
	page, err := s.repo.List(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list team members", err)
	}
	return page, nil
}

func (s *TeamService) UpdateMember(ctx context.Context, id uuid.UUID, req *dto.UpdateTeamMemberRequest) (*dto.TeamMemberResponse, *errors.AppError) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team member", err)
	}
	if member == nil {
		return nil, errors.NewNotFoundError("team member", id.String())
	}

	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if req.Email != "" {
		member.Email = req.Email
	}
	if req.WeeklySchedule != nil {
		member.WeeklySchedule = dto.ToWeeklySchedule(req.WeeklySchedule)
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update team member", err)
	}

	logger.Info("TeamService:UpdateMember:Success", "member_id", id)
	return dto.ToTeamMemberResponse(member), nil
}

func (s *TeamService) DeleteMember(ctx context.Context, id uuid.UUID) *errors.AppError {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get team member", err)
	}
	if member == nil {
		return errors.NewNotFoundError("team member", id.String())
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete team member", err)
	}
	return nil
}
