package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"krysselista-backend/internal/adapter/middleware"
	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/metrics"
)

// Routes groups what RegisterRoutes mounts.
type Routes struct {
	Base       *Handler
	Tokens     *auth.Tokens
	Redis      redis.Cmdable
	IdempTTL   time.Duration
	Pickups    *PickupHandler
	Events     *EventsHandler
	Accounts   *AccountHandler
	Authorized *AuthorizedHandler
	Attendance *AttendanceHandler
	Chat       *ChatHandler
	Admin      *AdminHandler
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	base := r.Base
	e.Validator = base.v
	e.HTTPErrorHandler = base.ErrorHandler

	e.GET("/health", base.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.POST("/auth/login", r.Accounts.Login)

	authed := e.Group("", middleware.RequireAuth(r.Tokens, base.cat))
	// after the role check so refused requests are never stored
	idem := middleware.Idempotency(r.Redis, r.IdempTTL, base.cat, base.log)
	parent := middleware.RequireRole(base.cat, profile.RoleParent)
	staff := middleware.RequireRole(base.cat, profile.RoleEmployee, profile.RoleAdmin)
	admin := middleware.RequireRole(base.cat, profile.RoleAdmin)

	// parents
	authed.POST("/pickups", r.Pickups.Create, parent, idem)
	authed.GET("/pickups/mine", r.Pickups.Mine, parent)
	authed.GET("/me/preferences", r.Accounts.GetPreference, parent)
	authed.PUT("/me/preferences", r.Accounts.SetPreference, parent, idem)
	authed.POST("/children/:child_id/authorized-pickups", r.Authorized.Add, parent, idem)
	authed.DELETE("/authorized-pickups/:id", r.Authorized.Remove, parent, idem)

	// parents for their own children, staff for any child
	authed.GET("/children/:child_id/authorized-pickups", r.Authorized.List)
	authed.GET("/children/:child_id/attendance/today", r.Attendance.ChildToday)
	authed.GET("/children/:child_id/messages", r.Chat.List)
	authed.POST("/children/:child_id/messages", r.Chat.Send, idem)
	authed.GET("/children/:child_id/events", r.Events.Child)

	// staff
	authed.GET("/pickups", r.Pickups.List, staff)
	authed.GET("/pickups/board", r.Pickups.Board, staff)
	authed.GET("/pickups/events", r.Events.Pickups, staff)
	authed.GET("/pickups/:id", r.Pickups.Get, staff)
	authed.POST("/pickups/:id/approve", r.Pickups.Approve, staff, idem)
	authed.POST("/pickups/:id/reject", r.Pickups.Reject, staff, idem)
	authed.POST("/pickups/:id/complete", r.Pickups.Complete, staff, idem)
	authed.POST("/children/:child_id/check-in", r.Attendance.CheckIn, staff, idem)
	authed.POST("/children/:child_id/check-out", r.Attendance.CheckOut, staff, idem)
	authed.GET("/attendance/today", r.Attendance.Today, staff)

	// admin
	authed.POST("/admin/users", r.Admin.CreateUser, admin, idem)
	authed.DELETE("/admin/users/:id", r.Admin.DeleteUser, admin, idem)
	authed.POST("/admin/children", r.Admin.CreateChild, admin, idem)
	authed.POST("/admin/roles", r.Admin.GrantRole, admin, idem)
}
