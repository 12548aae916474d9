package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/service"
)

// NotificationController handles notification HTTP requests
type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

// GetMyNotifications handles GET /notifications
// @Summary List the caller's derived notifications
// @Tags Notifications
// @Produce json
// @Success 200 {array} entity.Notification
// @Router /notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing user identification")
	}

	result, appErr := c.NotificationService.GetMyNotifications(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
