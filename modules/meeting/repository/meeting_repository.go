package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
)

// MeetingRepositoryInterface is the meeting-aggregate storage contract.
// Reads return deep copies; Update persists the whole aggregate and bumps
// its version.
type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	// ListForUser returns meetings the user organizes or is invited to,
	// most recently created first.
	ListForUser(ctx context.Context, userID string) ([]entity.Meeting, error)
	ListAll(ctx context.Context) ([]entity.Meeting, error)
	Update(ctx context.Context, meeting *entity.Meeting) error
}
