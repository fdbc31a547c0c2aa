package mapper

import userdomain "github.com/Apurer/storefront-api/internal/domains/users/domain"

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token and the account summary.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the transport-level account payload. Passwords never leave the
// service.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// ToDomainUser converts a signup request to its domain counterpart.
func ToDomainUser(req RegisterRequest) (*userdomain.User, error) {
	return userdomain.NewUser(req.Email, req.Name, req.Password)
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	}
}

// FromSession converts a login outcome into the transport response.
func FromSession(session *userdomain.Session, user *userdomain.User) LoginResponse {
	resp := LoginResponse{User: FromDomainUser(user)}
	if session != nil {
		resp.Token = session.Token
	}
	return resp
}
