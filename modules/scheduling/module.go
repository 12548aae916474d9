package scheduling

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/cache"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/router"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/service"
	teamService "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// Init wires the scheduling module. The cache may be nil, in which case
// every calculation runs fresh.
func Init(v1 *echo.Group, mw *middleware.Middleware, team teamService.TeamServiceInterface, c *cache.Cache, cacheTTL time.Duration) service.SchedulingServiceInterface {
	svc := service.NewSchedulingService(team, c, cacheTTL)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Register(v1, mw)
	return svc
}
