package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/controller"
)

type TeamRouter struct {
	controller *controller.TeamController
}

func NewTeamRouter(controller *controller.TeamController) *TeamRouter {
	return &TeamRouter{controller: controller}
}

func (r *TeamRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	group := v1.Group("/team-members", mw.RequireUser())
	group.POST("", r.controller.CreateMember)
	group.GET("", r.controller.ListMembers)
	group.GET("/:id", r.controller.GetMember)
	group.PUT("/:id", r.controller.UpdateMember)
	group.DELETE("/:id", r.controller.DeleteMember)
}
