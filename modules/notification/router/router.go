package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/controller"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

func (r *NotificationRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	group := v1.Group("/notifications", mw.RequireUser())
	group.GET("", r.controller.GetMyNotifications)
}
