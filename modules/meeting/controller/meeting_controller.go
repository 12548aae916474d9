package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/service"
)

// MeetingController handles meeting HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// userID pulls the identified caller set by the middleware.
func (c *MeetingController) userID(ctx echo.Context) (string, *echo.HTTPError) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return "", c.Unauthorized(errors.ErrUnauthorized, "Missing user identification")
	}
	return id, nil
}

// meetingID parses the :id path parameter.
func (c *MeetingController) meetingID(ctx echo.Context) (uuid.UUID, *echo.HTTPError) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}
	return id, nil
}

// CreateMeeting handles POST /meetings
// @Summary Create an IEP meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting"
// @Success 200 {object} dto.MeetingResponse
// @Router /meetings [post]
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	organizerID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.CreateMeeting(ctx.Request().Context(), organizerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting created successfully")
}

// GetMyMeetings handles GET /meetings
func (c *MeetingController) GetMyMeetings(ctx echo.Context) error {
	userID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.MeetingService.GetMyMeetings(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMeeting handles GET /meetings/:id
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.MeetingService.GetMeetingByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateMeeting handles PUT /meetings/:id
func (c *MeetingController) UpdateMeeting(ctx echo.Context) error {
	organizerID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.UpdateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.UpdateMeeting(ctx.Request().Context(), id, organizerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting updated successfully")
}

// ScheduleMeeting handles POST /meetings/:id/schedule
// @Summary Confirm a slot for a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.ScheduleMeetingRequest true "Slot"
// @Success 200 {object} dto.MeetingResponse
// @Router /meetings/{id}/schedule [post]
func (c *MeetingController) ScheduleMeeting(ctx echo.Context) error {
	organizerID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.ScheduleMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.ScheduleMeeting(ctx.Request().Context(), id, organizerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting scheduled successfully")
}

// CancelMeeting handles POST /meetings/:id/cancel
func (c *MeetingController) CancelMeeting(ctx echo.Context) error {
	organizerID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.MeetingService.CancelMeeting(ctx.Request().Context(), id, organizerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting cancelled")
}

// SetRSVP handles POST /meetings/:id/rsvp
// @Summary Accept or decline a meeting invitation
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.SetRSVPRequest true "RSVP"
// @Success 200 {object} dto.MeetingResponse
// @Router /meetings/{id}/rsvp [post]
func (c *MeetingController) SetRSVP(ctx echo.Context) error {
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.SetRSVPRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.SetRSVP(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "RSVP recorded")
}

// ProposeAlternative handles POST /meetings/:id/proposals
func (c *MeetingController) ProposeAlternative(ctx echo.Context) error {
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.ProposeAlternativeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.ProposeAlternative(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Alternative time proposed")
}

// VoteOnAlternative handles POST /meetings/:id/proposals/:proposalId/votes
func (c *MeetingController) VoteOnAlternative(ctx echo.Context) error {
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}
	proposalID := ctx.Param("proposalId")
	if proposalID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing proposal ID")
	}

	var req dto.VoteOnAlternativeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.MeetingService.VoteOnAlternative(ctx.Request().Context(), id, proposalID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Vote recorded")
}

// ApplyAlternative handles POST /meetings/:id/proposals/:proposalId/apply
func (c *MeetingController) ApplyAlternative(ctx echo.Context) error {
	organizerID, httpErr := c.userID(ctx)
	if httpErr != nil {
		return httpErr
	}
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}
	proposalID := ctx.Param("proposalId")
	if proposalID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing proposal ID")
	}

	result, appErr := c.MeetingService.ApplyAlternative(ctx.Request().Context(), id, proposalID, organizerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting rescheduled to proposed time")
}

// ExportICS handles GET /meetings/:id/calendar.ics
func (c *MeetingController) ExportICS(ctx echo.Context) error {
	id, httpErr := c.meetingID(ctx)
	if httpErr != nil {
		return httpErr
	}

	payload, appErr := c.MeetingService.ExportICS(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="meeting.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar", []byte(payload))
}
