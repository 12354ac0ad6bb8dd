package handler

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(users *UserHandler, bookings *BookingHandler, eventsH *EventHandler, inbox *InboxHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/signup", users.Signup)
	r.GET("/users/:id", users.Get)
	r.POST("/users/:id/resolve-roles", users.ResolveRoles)
	r.GET("/users/:id/notifications", inbox.ListNotifications)

	r.POST("/musicians", users.CreateMusician)
	r.GET("/musicians/:id", users.GetMusician)
	r.POST("/venues", users.CreateVenue)
	r.GET("/venues/:id", users.GetVenue)
	r.GET("/venues/:id/events", eventsH.ListUpcoming)

	r.POST("/events", eventsH.Create)
	r.GET("/events/:id/bookings", bookings.ListByEvent)

	r.POST("/bookings/apply", bookings.Apply)
	r.POST("/bookings/invite", bookings.Invite)
	r.PATCH("/bookings/:id/status", bookings.UpdateStatus)
	r.GET("/bookings/:id", bookings.Get)

	r.POST("/messages", inbox.SendMessage)
	r.POST("/messages/:id/read", inbox.MarkMessageRead)
	r.POST("/notifications/:id/read", inbox.MarkNotificationRead)

	return r
}
