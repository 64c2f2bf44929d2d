package functions

import (
	"context"
	"fmt"
	"sort"

	"github.com/ciprian88m/user-posts-lambda/pkg/common"
)

// Function names a deployment can select
const (
	FuncGetPosts     = "getPosts"
	FuncSavePost     = "savePost"
	FuncDeletePost   = "deletePost"
	FuncRegisterUser = "registerUser"
	FuncLoginUser    = "loginUser"
)

// Handler is the uniform signature of every named function
type Handler func(ctx context.Context, raw string) (common.Response, error)

// Registry maps function names to handlers
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry registers every post and user function
func NewRegistry(posts *PostsFunctions, users *UserFunctions) *Registry {
	return &Registry{
		handlers: map[string]Handler{
			FuncGetPosts:     adapt(posts.GetPosts),
			FuncSavePost:     adapt(posts.SavePost),
			FuncDeletePost:   adapt(posts.DeletePost),
			FuncRegisterUser: adapt(users.RegisterUser),
			FuncLoginUser:    adapt(users.LoginUser),
		},
	}
}

// Lookup returns the handler registered under name
func (r *Registry) Lookup(name string) (Handler, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q, expected one of %v", name, r.Names())
	}
	return handler, nil
}

// Invoke runs the named function on a raw envelope
func (r *Registry) Invoke(ctx context.Context, name, raw string) (common.Response, error) {
	handler, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return handler(ctx, raw)
}

// Names lists the registered function names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// adapt widens a typed handler to Handler. A failed call yields a nil
// interface rather than a typed nil pointer.
func adapt[R common.Response](fn func(context.Context, string) (R, error)) Handler {
	return func(ctx context.Context, raw string) (common.Response, error) {
		resp, err := fn(ctx, raw)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
}
