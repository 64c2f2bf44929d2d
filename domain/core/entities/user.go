package entities

// User carries registration and login credentials. All three fields are
// required for both operations even though login only forwards the
// username and password.
type User struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthTokens is the result of a successful username/password
// authentication against the identity provider.
type AuthTokens struct {
	TokenType        string
	ExpiresInSeconds int
	AccessToken      string
	RefreshToken     string
	IDToken          string
}
