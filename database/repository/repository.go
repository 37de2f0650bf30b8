package repository

import (
	reviewRepo "citizenhub/database/repository/review"
	serviceRepo "citizenhub/database/repository/service"
	userRepo "citizenhub/database/repository/user"
)

// Re-export the ServiceRepository interface and constructor.
type ServiceRepository = serviceRepo.ServiceRepository

type ServiceFilter = serviceRepo.ServiceFilter

var NewMongoServiceRepo = serviceRepo.NewMongoServiceRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the ReviewRepository interface and constructor.
type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo
