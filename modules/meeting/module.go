package meeting

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/queue"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/router"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/service"
	teamservice "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// Init wires the meeting module and registers its routes. The queue may be
// nil when background tasks are disabled.
func Init(v1 *echo.Group, mw *middleware.Middleware, repo repository.MeetingRepositoryInterface, team teamservice.TeamServiceInterface, q *queue.Queue, reminderLead time.Duration) service.MeetingServiceInterface {
	svc := service.NewMeetingService(repo, team, q, reminderLead)
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Register(v1, mw)
	return svc
}
