package api

import (
	"time"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler   authHandler
	postHandler   postHandler
	userHandler   userHandler
	healthHandler healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc Services, startupTime time.Time, notify errorNotifier) *routeHandlers {
	return &routeHandlers{
		authHandler:   newAuthHandler(svc.Auth, notify),
		postHandler:   newPostHandler(svc.Posts, notify),
		userHandler:   newUserHandler(svc.Users, notify),
		healthHandler: newHealthHandler(svc.Ping, startupTime, notify),
	}
}
