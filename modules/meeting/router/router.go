package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/controller"
)

type MeetingRouter struct {
	controller *controller.MeetingController
}

func NewMeetingRouter(controller *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{controller: controller}
}

func (r *MeetingRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	group := v1.Group("/meetings", mw.RequireUser())
	group.POST("", r.controller.CreateMeeting)
	group.GET("", r.controller.GetMyMeetings)
	group.GET("/:id", r.controller.GetMeeting)
	group.PUT("/:id", r.controller.UpdateMeeting)
	group.POST("/:id/schedule", r.controller.ScheduleMeeting)
	group.POST("/:id/cancel", r.controller.CancelMeeting)
	group.POST("/:id/rsvp", r.controller.SetRSVP)
	group.POST("/:id/proposals", r.controller.ProposeAlternative)
	group.POST("/:id/proposals/:proposalId/votes", r.controller.VoteOnAlternative)
	group.POST("/:id/proposals/:proposalId/apply", r.controller.ApplyAlternative)
	group.GET("/:id/calendar.ics", r.controller.ExportICS)
}
