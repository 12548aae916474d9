package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/cache"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/utils"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/dto"
	teamService "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// SchedulingServiceInterface exposes the availability calculation to
// callers. The same entrypoint backs both the new-meeting and the
// propose-alternative flows.
type SchedulingServiceInterface interface {
	CalculateAvailability(ctx context.Context, req *dto.CalculateAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
}

type SchedulingService struct {
	team     teamService.TeamServiceInterface
	engine   *SlotEngine
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewSchedulingService(team teamService.TeamServiceInterface, c *cache.Cache, cacheTTL time.Duration) SchedulingServiceInterface {
	return &SchedulingService{
		team:     team,
		engine:   NewSlotEngine(),
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *SchedulingService) CalculateAvailability(ctx context.Context, req *dto.CalculateAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}

	ids := make([]uuid.UUID, 0, len(req.ParticipantIDs))
	for _, raw := range req.ParticipantIDs {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("invalid participant ID %q", raw), parseErr)
		}
		ids = append(ids, id)
	}

	cacheKey := s.cacheKey(req)
	var cached dto.AvailabilityResponse
	if hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached); cacheErr != nil {
		logger.Warn("SchedulingService:CalculateAvailability:CacheGet", "error", cacheErr)
	} else if hit {
		logger.Info("SchedulingService:CalculateAvailability:CacheHit", "key", cacheKey)
		return &cached, nil
	}

	members, appErr := s.team.ResolveMembers(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}

	result, appErr := s.engine.CalculateAvailability(members, startDate, endDate, req.DurationMinutes)
	if appErr != nil {
		return nil, appErr
	}

	response := &dto.AvailabilityResponse{
		IndividualAvailability: result.IndividualAvailability,
		CommonSlots:            result.CommonSlots,
		AllSlots:               result.AllSlots,
		AvailableSlots:         s.engine.FindDurationFitSlots(result.CommonSlots, req.DurationMinutes),
	}

	if cacheErr := s.cache.SetJSON(ctx, cacheKey, response, s.cacheTTL); cacheErr != nil {
		logger.Warn("SchedulingService:CalculateAvailability:CacheSet", "error", cacheErr)
	}

	logger.Info("SchedulingService:CalculateAvailability:Success",
		"participants", len(members),
		"common_slots", len(response.CommonSlots),
		"available_slots", len(response.AvailableSlots),
	)
	return response, nil
}

func (s *SchedulingService) cacheKey(req *dto.CalculateAvailabilityRequest) string {
	ids := append([]string(nil), req.ParticipantIDs...)
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d",
		strings.Join(ids, ","), req.StartDate, req.EndDate, req.DurationMinutes)))
	return "availability:" + hex.EncodeToString(sum[:16])
}
