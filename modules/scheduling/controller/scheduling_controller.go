package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/service"
)

type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// CalculateAvailability handles POST /availability/calculate
// @Summary Calculate team availability
// @Description Find every window in the date range where all participants are free for the requested duration
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param request body dto.CalculateAvailabilityRequest true "Availability query"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Router /availability/calculate [post]
func (c *SchedulingController) CalculateAvailability(ctx echo.Context) error {
	var req dto.CalculateAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.SchedulingService.CalculateAvailability(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability calculated")
}
