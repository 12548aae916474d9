package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// TeamController handles team-directory HTTP requests
type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
	}
}

// CreateMember handles POST /team-members
// @Summary Add a team member
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamMemberRequest true "Team member"
// @Success 200 {object} dto.TeamMemberResponse
// @Router /team-members [post]
func (c *TeamController) CreateMember(ctx echo.Context) error {
	var req dto.CreateTeamMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.TeamService.CreateMember(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team member created successfully")
}

// GetMember handles GET /team-members/:id
func (c *TeamController) GetMember(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team member ID")
	}

	result, appErr := c.TeamService.GetMemberByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListMembers handles GET /team-members
func (c *TeamController) ListMembers(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.TeamService.ListMembers(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateMember handles PUT /team-members/:id
func (c *TeamController) UpdateMember(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team member ID")
	}

	var req dto.UpdateTeamMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.TeamService.UpdateMember(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team member updated successfully")
}

// DeleteMember handles DELETE /team-members/:id
func (c *TeamController) DeleteMember(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team member ID")
	}

	if appErr := c.TeamService.DeleteMember(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Team member deleted successfully")
}
