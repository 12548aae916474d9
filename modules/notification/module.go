package notification

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	meetingrepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/router"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/service"
)

// Init wires the notification module. It reads the meeting store directly;
// notifications are derived, never written.
func Init(v1 *echo.Group, mw *middleware.Middleware, meetings meetingrepo.MeetingRepositoryInterface) service.NotificationServiceInterface {
	svc := service.NewNotificationService(meetings)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Register(v1, mw)
	return svc
}
