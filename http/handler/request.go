package handler

import "github.com/xy-planning-network/accounts/auth"

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginReq struct {
	Token string `json:"token" validate:"required"`
}

type newUserReq struct {
	Firstname string `json:"firstname" validate:"required,alphanum,max=30"`
	Lastname  string `json:"lastname" validate:"required,alphanum,max=30"`
	Username  string `json:"username" validate:"required,alphanum,max=30"`
	Email     string `json:"email" validate:"required,email,max=50"`
	Password  string `json:"password" validate:"required,min=6,bcryptmax"`
}

func (nu newUserReq) newUser() auth.NewUser {
	return auth.NewUser{
		Firstname: nu.Firstname,
		Lastname:  nu.Lastname,
		Username:  nu.Username,
		Email:     nu.Email,
		Password:  nu.Password,
	}
}

type credentialsReq struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

type idParam struct {
	ID uint `schema:"id" validate:"gt=0"`
}

// identity is the body of a successful login.
type identity struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func identityOf(c auth.Claims) identity {
	return identity{
		ID:        c.ID,
		Email:     c.Email,
		Username:  c.Username,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
	}
}
