package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/database"
	coreEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/core/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

// PostgresTeamRepository persists the directory in the team_members table,
// with the weekly schedule stored as JSONB.
type PostgresTeamRepository struct {
	db database.Database
}

func NewPostgresTeamRepository(db database.Database) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

func (r *PostgresTeamRepository) Create(ctx context.Context, member *entity.TeamMember) (*entity.TeamMember, error) {
	query := `
		INSERT INTO team_members (name, role, email, weekly_schedule)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, role, email, weekly_schedule, created_at, updated_at
	`

	var created entity.TeamMember
	err := r.db.GetContext(ctx, &created, query,
		member.Name, member.Role, member.Email, member.WeeklySchedule)
	if err != nil {
		logger.Error("TeamRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error) {
	query := `
		SELECT id, name, role, email, weekly_schedule, created_at, updated_at
		FROM team_members WHERE id = $1
	`

	var member entity.TeamMember
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:GetByID", err)
		return nil, err
	}

	return &member, nil
}

func (r *PostgresTeamRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TeamMember, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, role, email, weekly_schedule, created_at, updated_at
		FROM team_members WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.SQLx().Rebind(query)

	var members []entity.TeamMember
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		logger.Error("TeamRepository:GetByIDs", err)
		return nil, err
	}

	return members, nil
}

func (r *PostgresTeamRepository) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamMemberEntity, error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	baseQuery := `FROM team_members WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, queryParams.Search); err != nil {
		logger.Error("TeamRepository:List:Count", err)
		return nil, err
	}

	query := `
		SELECT id, name, role, email, weekly_schedule, created_at, updated_at ` + baseQuery + `
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	var members []entity.TeamMember
	if err := r.db.SelectContext(ctx, &members, query, queryParams.Search, queryParams.PageSize, offset); err != nil {
		logger.Error("TeamRepository:List:Select", err)
		return nil, err
	}

	return &coreEntity.Pagination[entity.TeamMember]{
		Items:      members,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *PostgresTeamRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	query := `
		UPDATE team_members
		SET name = $2, role = $3, email = $4, weekly_schedule = $5, updated_at = NOW()
		WHERE id = $1
	`

	err := r.db.ExecContext(ctx, query,
		member.ID, member.Name, member.Role, member.Email, member.WeeklySchedule)
	if err != nil {
		logger.Error("TeamRepository:Update", err)
		return err
	}
	return nil
}

func (r *PostgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM team_members WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id); err != nil {
		logger.Error("TeamRepository:Delete", err)
		return err
	}
	return nil
}
