package models

import "github.com/joblyhq/jobly-api/model"

type UserResponse struct {
	User *model.User `json:"user"`
}

type UsersResponse struct {
	Users []model.User `json:"users"`
}

// UserCreatedResponse is returned when an admin adds a user.
type UserCreatedResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UserUpdate lists the attributes a user update may carry.
type UserUpdate struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=72"`
	Email     *string `json:"email" validate:"omitempty,email,max=60"`
}
