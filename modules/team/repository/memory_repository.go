package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	coreEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/core/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

// MemoryTeamRepository is the session-scoped in-memory directory. It is the
// default storage driver and the one the tests run against.
type MemoryTeamRepository struct {
	mu      sync.RWMutex
	members map[uuid.UUID]entity.TeamMember
}

func NewMemoryTeamRepository() *MemoryTeamRepository {
	return &MemoryTeamRepository{members: make(map[uuid.UUID]entity.TeamMember)}
}

func (r *MemoryTeamRepository) Create(ctx context.Context, member *entity.TeamMember) (*entity.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	r.members[member.ID] = *member
	stored := r.members[member.ID]
	return &stored, nil
}

func (r *MemoryTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

func (r *MemoryTeamRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.TeamMember, 0, len(ids))
	for _, id := range ids {
		if member, ok := r.members[id]; ok {
			result = append(result, member)
		}
	}
	return result, nil
}

func (r *MemoryTeamRepository) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamMemberEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]entity.TeamMember, 0, len(r.members))
	for _, member := range r.members {
		if queryParams.Search != "" &&
			!strings.Contains(strings.ToLower(member.Name), strings.ToLower(queryParams.Search)) {
			continue
		}
		all = append(all, member)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := len(all)
	start := (queryParams.PageNumber - 1) * queryParams.PageSize
	if start > total {
		start = total
	}
	end := start + queryParams.PageSize
	if end > total {
		end = total
	}

	return &coreEntity.Pagination[entity.TeamMember]{
		Items:      all[start:end],
		TotalItems: total,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *MemoryTeamRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[member.ID]; !ok {
		return fmt.Errorf("team member %s not found", member.ID)
	}
	member.UpdatedAt = time.Now()
	r.members[member.ID] = *member
	return nil
}

func (r *MemoryTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
	return nil
}

// Seed loads a starter directory so a fresh in-memory instance is usable
// immediately.
func (r *MemoryTeamRepository) Seed(ctx context.Context) error {
	workday := func(start, end string, unavailable ...entity.TimeRange) entity.DaySchedule {
		return entity.DaySchedule{StartTime: start, EndTime: end, UnavailableSlots: unavailable}
	}

	seed := []entity.TeamMember{
		{
			Name: "Sarah Miller",
			Role: "Case Manager",
			WeeklySchedule: entity.WeeklySchedule{
				"Monday":    workday("08:00", "16:00", entity.TimeRange{StartTime: "12:00", EndTime: "13:00"}),
				"Tuesday":   workday("08:00", "16:00"),
				"Wednesday": workday("08:00", "16:00", entity.TimeRange{StartTime: "09:00", EndTime: "10:00"}),
				"Thursday":  workday("08:00", "16:00"),
				"Friday":    workday("08:00", "14:00"),
			},
		},
		{
			Name: "David Chen",
			Role: "School Psychologist",
			WeeklySchedule: entity.WeeklySchedule{
				"Monday":    workday("09:00", "17:00"),
				"Tuesday":   workday("09:00", "17:00", entity.TimeRange{StartTime: "13:00", EndTime: "15:00"}),
				"Wednesday": workday("09:00", "17:00"),
				"Thursday":  workday("09:00", "13:00"),
				"Friday":    workday("09:00", "17:00"),
			},
		},
		{
			Name: "Maria Lopez",
			Role: "Speech-Language Pathologist",
			WeeklySchedule: entity.WeeklySchedule{
				"Monday":    workday("08:30", "15:30"),
				"Wednesday": workday("08:30", "15:30", entity.TimeRange{StartTime: "11:00", EndTime: "12:30"}),
				"Friday":    workday("08:30", "15:30"),
			},
		},
		{
			Name: "James Okafor",
			Role: "General Education Teacher",
			WeeklySchedule: entity.WeeklySchedule{
				"Monday":    workday("07:30", "15:00", entity.TimeRange{StartTime: "10:00", EndTime: "11:00"}),
				"Tuesday":   workday("07:30", "15:00", entity.TimeRange{StartTime: "10:00", EndTime: "11:00"}),
				"Wednesday": workday("07:30", "15:00", entity.TimeRange{StartTime: "10:00", EndTime: "11:00"}),
				"Thursday":  workday("07:30", "15:00", entity.TimeRange{StartTime: "10:00", EndTime: "11:00"}),
				"Friday":    workday("07:30", "15:00", entity.TimeRange{StartTime: "10:00", EndTime: "11:00"}),
			},
		},
	}

	for i := range seed {
		if _, err := r.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}
