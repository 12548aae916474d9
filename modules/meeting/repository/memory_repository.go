package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
)

// MemoryMeetingRepository is the session-scoped in-memory store and the
// default storage driver. A single mutex serializes writers, which also
// gives each meeting aggregate a serializing boundary.
type MemoryMeetingRepository struct {
	mu       sync.RWMutex
	meetings map[uuid.UUID]*entity.Meeting
}

func NewMemoryMeetingRepository() *MemoryMeetingRepository {
	return &MemoryMeetingRepository{meetings: make(map[uuid.UUID]*entity.Meeting)}
}

func (r *MemoryMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	now := time.Now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	meeting.Version = 1

	r.meetings[meeting.ID] = meeting.Clone()
	return meeting.Clone(), nil
}

func (r *MemoryMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	return meeting.Clone(), nil
}

func (r *MemoryMeetingRepository) ListForUser(ctx context.Context, userID string) ([]entity.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []entity.Meeting
	for _, m := range r.meetings {
		if m.IsOrganizer(userID) || m.IsInvited(userID) {
			result = append(result, *m.Clone())
		}
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *MemoryMeetingRepository) ListAll(ctx context.Context) ([]entity.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		result = append(result, *m.Clone())
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *MemoryMeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.meetings[meeting.ID]
	if !ok {
		return fmt.Errorf("meeting %s not found", meeting.ID)
	}

	meeting.Version = stored.Version + 1
	meeting.UpdatedAt = time.Now()
	r.meetings[meeting.ID] = meeting.Clone()
	return nil
}

func sortByCreatedDesc(meetings []entity.Meeting) {
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})
}
