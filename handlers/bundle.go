package handlers

import (
	userRepoPkg "citizenhub/database/repository/user"
	"citizenhub/services/directory"
	"citizenhub/services/review"
	"citizenhub/services/user"
	"citizenhub/utils"
)

// HandlerBundle groups all endpoint handlers and what the auth middleware
// needs.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository
	Sessions utils.SessionStore

	Services *ServiceHandler
	Admin    *AdminHandler
	Users    *UserHandler
	Reviews  *ReviewHandler
}

func NewHandlerBundle(userRepo userRepoPkg.UserRepository, sessions utils.SessionStore, dir directory.DirectoryService, users user.UserService, reviews review.ReviewService) *HandlerBundle {
	return &HandlerBundle{
		UserRepo: userRepo,
		Sessions: sessions,
		Services: &ServiceHandler{Directory: dir, Users: users},
		Admin:    &AdminHandler{Directory: dir, Users: users},
		Users:    &UserHandler{UserService: users},
		Reviews:  &ReviewHandler{Reviews: reviews, Users: users},
	}
}
