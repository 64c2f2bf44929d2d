package common

import "github.com/ciprian88m/user-posts-lambda/domain/core/entities"

// Response is implemented by every response envelope.
type Response interface {
	IsValid() bool
	Status() int
	Message() string
}

// GenericResponse is the base envelope shared by all operations. Valid is
// an internal signal and is never serialized.
type GenericResponse struct {
	Valid        bool   `json:"-"`
	StatusCode   int    `json:"statusCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// NewResponse creates a successful envelope with the given status.
func NewResponse(statusCode int) *GenericResponse {
	return &GenericResponse{Valid: true, StatusCode: statusCode}
}

// NewFailedResponse creates an envelope for a backend failure.
func NewFailedResponse(statusCode int, message string) *GenericResponse {
	return &GenericResponse{StatusCode: statusCode, ErrorMessage: message}
}

func (r GenericResponse) IsValid() bool   { return r.Valid }
func (r GenericResponse) Status() int     { return r.StatusCode }
func (r GenericResponse) Message() string { return r.ErrorMessage }

// Fail marks the envelope as failed with the backend's status and message.
func (r *GenericResponse) Fail(statusCode int, message string) {
	r.Valid = false
	r.StatusCode = statusCode
	r.ErrorMessage = message
}

// PostsResponse carries the caller's posts.
type PostsResponse struct {
	GenericResponse
	Posts []entities.Post `json:"posts,omitempty"`
}

// AccessResponse carries the tokens issued on login.
type AccessResponse struct {
	GenericResponse
	TokenType        string `json:"tokenType,omitempty"`
	ExpiresInSeconds int    `json:"expiresInSeconds,omitempty"`
	AccessToken      string `json:"accessToken,omitempty"`
	RefreshToken     string `json:"refreshToken,omitempty"`
	IDToken          string `json:"idToken,omitempty"`
}
