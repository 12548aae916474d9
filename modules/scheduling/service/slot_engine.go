package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/utils"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/entity"
	teamEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

const (
	// SlotGranularity is the size of a micro-slot in minutes. Every
	// availability computation is built from intervals of this size.
	SlotGranularity = 30

	// MaxLookaheadDays caps the searchable date range so a calculation
	// always completes within one synchronous call.
	MaxLookaheadDays = 90
)

// SlotEngine computes team availability: it expands each member's recurring
// weekly schedule into per-date micro-slots, intersects them across members,
// and fits meeting windows of an exact duration into the common runs. All
// methods are pure functions of their inputs.
type SlotEngine struct {
	Granularity  int // minutes per micro-slot
	MaxRangeDays int
}

func NewSlotEngine() *SlotEngine {
	return &SlotEngine{
		Granularity:  SlotGranularity,
		MaxRangeDays: MaxLookaheadDays,
	}
}

// GenerateMemberSlots expands one member's weekly schedule into the concrete
// micro-slots for a specific date. Weekends produce nothing regardless of
// the schedule data, as does a weekday with no schedule entry. A working
// window that does not divide evenly into the granularity drops its
// remainder.
func (e *SlotEngine) GenerateMemberSlots(member teamEntity.TeamMember, date time.Time) []entity.MicroSlot {
	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return nil
	}

	day, ok := member.WeeklySchedule[weekday.String()]
	if !ok {
		return nil
	}

	dayStart, err := utils.ParseClock(day.StartTime)
	if err != nil {
		return nil
	}
	dayEnd, err := utils.ParseClock(day.EndTime)
	if err != nil || dayStart >= dayEnd {
		return nil
	}

	type carveOut struct{ start, end int }
	carveOuts := make([]carveOut, 0, len(day.UnavailableSlots))
	for _, u := range day.UnavailableSlots {
		us, err1 := utils.ParseClock(u.StartTime)
		ue, err2 := utils.ParseClock(u.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		carveOuts = append(carveOuts, carveOut{start: us, end: ue})
	}
	sort.Slice(carveOuts, func(i, j int) bool { return carveOuts[i].start < carveOuts[j].start })

	dateStr := date.Format(utils.DateLayout)
	memberID := member.ID.String()

	var slots []entity.MicroSlot
	cursor := dayStart
	next := 0

	for cursor+e.Granularity <= dayEnd {
		slotEnd := cursor + e.Granularity

		// discard carve-outs the cursor has already passed
		for next < len(carveOuts) && carveOuts[next].end <= cursor {
			next++
		}

		// a step touching the next carve-out is skipped whole; the cursor
		// jumps past the carve-out and alignment restarts there
		if next < len(carveOuts) && slotEnd > carveOuts[next].start && cursor < carveOuts[next].end {
			if carveOuts[next].end > cursor {
				cursor = carveOuts[next].end
			}
			next++
			continue
		}

		slots = append(slots, entity.MicroSlot{
			Date:             dateStr,
			StartTime:        utils.FormatClock(cursor),
			EndTime:          utils.FormatClock(slotEnd),
			AvailableMembers: []string{memberID},
		})
		cursor = slotEnd
	}

	return slots
}

// CalculateAvailability intersects the members' schedules over the inclusive
// date range. A micro-slot is common only when the number of members free
// during it equals the requested member count.
func (e *SlotEngine) CalculateAvailability(
	members []teamEntity.TeamMember,
	startDate time.Time,
	endDate time.Time,
	durationMinutes int,
) (*entity.AvailabilityResult, *errors.AppError) {
	if durationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("duration must be positive, got %d", durationMinutes), nil)
	}
	if len(members) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "at least one participant is required", nil)
	}

	startDate = truncateToDate(startDate)
	endDate = truncateToDate(endDate)
	if startDate.After(endDate) {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("start date %s is after end date %s",
				startDate.Format(utils.DateLayout), endDate.Format(utils.DateLayout)), nil)
	}
	if int(endDate.Sub(startDate).Hours()/24) > e.MaxRangeDays {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("date range exceeds the %d-day lookahead limit", e.MaxRangeDays), nil)
	}

	individual := make(map[string][]entity.MicroSlot, len(members))
	all := make(map[string]*entity.MicroSlot)

	for _, member := range members {
		memberID := member.ID.String()
		for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
			slots := e.GenerateMemberSlots(member, d)
			individual[memberID] = append(individual[memberID], slots...)

			for _, s := range slots {
				key := s.Key()
				agg, ok := all[key]
				if !ok {
					agg = &entity.MicroSlot{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
					all[key] = agg
				}
				agg.AvailableMembers = append(agg.AvailableMembers, memberID)
			}
		}
	}

	total := len(members)
	allSlots := make(map[string]entity.MicroSlot, len(all))
	var common []entity.MicroSlot
	for key, s := range all {
		s.IsCommon = len(s.AvailableMembers) == total
		allSlots[key] = *s
		if s.IsCommon {
			common = append(common, *s)
		}
	}
	sortMicroSlots(common)

	return &entity.AvailabilityResult{
		IndividualAvailability: individual,
		CommonSlots:            common,
		AllSlots:               allSlots,
	}, nil
}

// FindDurationFitSlots slides an exact-duration window across every maximal
// contiguous run of common micro-slots, stepping by the granularity from the
// run start. A run exactly equal to the duration yields one slot.
func (e *SlotEngine) FindDurationFitSlots(common []entity.MicroSlot, durationMinutes int) []entity.AvailableSlot {
	if durationMinutes <= 0 || len(common) == 0 {
		return nil
	}

	byDate := make(map[string][]entity.MicroSlot)
	var dates []string
	for _, s := range common {
		if _, ok := byDate[s.Date]; !ok {
			dates = append(dates, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	sort.Strings(dates)

	var result []entity.AvailableSlot
	for _, date := range dates {
		slots := byDate[date]
		sortMicroSlots(slots)

		for i := 0; i < len(slots); {
			// extend the run while each slot starts exactly where the
			// previous one ended
			j := i
			for j+1 < len(slots) && slots[j+1].StartTime == slots[j].EndTime {
				j++
			}

			runStart, err1 := utils.ParseClock(slots[i].StartTime)
			runEnd, err2 := utils.ParseClock(slots[j].EndTime)
			if err1 == nil && err2 == nil {
				for t := runStart; t+durationMinutes <= runEnd; t += e.Granularity {
					result = append(result, entity.AvailableSlot{
						Date:             date,
						StartTime:        utils.FormatClock(t),
						EndTime:          utils.FormatClock(t + durationMinutes),
						IsCommon:         true,
						AvailableMembers: append([]string(nil), slots[i].AvailableMembers...),
					})
				}
			}

			i = j + 1
		}
	}

	return result
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortMicroSlots(slots []entity.MicroSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
