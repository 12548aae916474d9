package team

import (
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/router"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// Init wires the team module and registers its routes. The repository is
// injected so the server can choose the storage driver.
func Init(v1 *echo.Group, mw *middleware.Middleware, repo repository.TeamRepositoryInterface) service.TeamServiceInterface {
	svc := service.NewTeamService(repo)
	ctrl := controller.NewTeamController(svc)
	rtr := router.NewTeamRouter(ctrl)

	rtr.Register(v1, mw)
	return svc
}
