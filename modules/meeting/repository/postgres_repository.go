package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/database"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
)

// PostgresMeetingRepository stores each aggregate as a row in the meetings
// table with the participant and proposal lists as JSONB. The version column
// backs an optimistic concurrency check on update.
type PostgresMeetingRepository struct {
	db database.Database
}

func NewPostgresMeetingRepository(db database.Database) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{db: db}
}

const meetingColumns = `
	id, event_type, student_id, student_name, meeting_type, custom_meeting_type,
	reference, team_member_ids, date, time, duration_minutes, status,
	created_by_user_id, participants, alternative_proposals, version,
	created_at, updated_at`

func (r *PostgresMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (
			event_type, student_id, student_name, meeting_type, custom_meeting_type,
			reference, team_member_ids, date, time, duration_minutes, status,
			created_by_user_id, participants, alternative_proposals, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1)
		RETURNING ` + meetingColumns

	var created entity.Meeting
	err := r.db.GetContext(ctx, &created, query,
		meeting.EventType, meeting.StudentID, meeting.StudentName,
		meeting.MeetingType, meeting.CustomMeetingType, meeting.Reference,
		meeting.TeamMemberIDs, meeting.Date, meeting.Time, meeting.DurationMinutes,
		meeting.Status, meeting.CreatedByUserID, meeting.Participants,
		meeting.AlternativeProposals)
	if err != nil {
		logger.Error("MeetingRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *PostgresMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByID", err)
		return nil, err
	}

	return &meeting, nil
}

func (r *PostgresMeetingRepository) ListForUser(ctx context.Context, userID string) ([]entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE created_by_user_id = $1 OR team_member_ids @> to_jsonb(ARRAY[$1]::text[])
		ORDER BY created_at DESC`

	var meetings []entity.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, userID); err != nil {
		logger.Error("MeetingRepository:ListForUser", err)
		return nil, err
	}

	return meetings, nil
}

func (r *PostgresMeetingRepository) ListAll(ctx context.Context) ([]entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings ORDER BY created_at DESC`

	var meetings []entity.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query); err != nil {
		logger.Error("MeetingRepository:ListAll", err)
		return nil, err
	}

	return meetings, nil
}

func (r *PostgresMeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		UPDATE meetings
		SET student_id = $2, student_name = $3, meeting_type = $4,
		    custom_meeting_type = $5, reference = $6, team_member_ids = $7,
		    date = $8, time = $9, duration_minutes = $10, status = $11,
		    participants = $12, alternative_proposals = $13,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $14
		RETURNING version`

	var newVersion int
	err := r.db.QueryRowContext(ctx, query,
		meeting.ID, meeting.StudentID, meeting.StudentName, meeting.MeetingType,
		meeting.CustomMeetingType, meeting.Reference, meeting.TeamMemberIDs,
		meeting.Date, meeting.Time, meeting.DurationMinutes, meeting.Status,
		meeting.Participants, meeting.AlternativeProposals, meeting.Version,
	).Scan(&newVersion)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("meeting %s: stale version %d", meeting.ID, meeting.Version)
		}
		logger.Error("MeetingRepository:Update", err)
		return err
	}

	meeting.Version = newVersion
	return nil
}
