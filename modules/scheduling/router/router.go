package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/controller"
)

type SchedulingRouter struct {
	controller *controller.SchedulingController
}

func NewSchedulingRouter(controller *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{controller: controller}
}

func (r *SchedulingRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	group := v1.Group("/availability", mw.RequireUser())
	group.POST("/calculate", r.controller.CalculateAvailability)
}
