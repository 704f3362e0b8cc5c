package resource

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/calegari/go-apitest/httpclient"
	"github.com/calegari/go-apitest/validation"
)

const usersPath = "/users"

// Users exposes the user entity operations.
type Users struct {
	client httpclient.Client
}

// NewUsers creates a user resource client over the given HTTP client.
func NewUsers(client httpclient.Client) *Users {
	return &Users{client: client}
}

// List fetches every user and validates each against the User schema.
func (u *Users) List(ctx context.Context) ([]User, error) {
	return fetchList[User](ctx, u.client, &httpclient.Request{Path: usersPath}, validation.ValidateUser)
}

// Get fetches one user by id.
func (u *Users) Get(ctx context.Context, id int) (*User, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", usersPath, id)}
	return fetchOne[User](ctx, u.client, req, validation.ValidateUser)
}

// Paginate fetches one page of users using the _page/_limit convention.
func (u *Users) Paginate(ctx context.Context, page, limit int) ([]User, error) {
	q := url.Values{}
	q.Set("_page", strconv.Itoa(page))
	q.Set("_limit", strconv.Itoa(limit))
	req := &httpclient.Request{Path: usersPath, Query: q}
	return fetchList[User](ctx, u.client, req, validation.ValidateUser)
}

// Create submits a new user and returns the echoed record.
func (u *Users) Create(ctx context.Context, user User) (*User, error) {
	req := &httpclient.Request{Path: usersPath, Body: user}
	return writeOne[User](ctx, u.client, nethttp.MethodPost, req, validation.ValidateUser)
}

// Update replaces a user record.
func (u *Users) Update(ctx context.Context, id int, user User) (*User, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", usersPath, id), Body: user}
	return writeOne[User](ctx, u.client, nethttp.MethodPut, req, validation.ValidateUser)
}

// Patch applies a partial update. The backend echoes the merged record.
func (u *Users) Patch(ctx context.Context, id int, fields map[string]any) (*User, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", usersPath, id), Body: fields}
	return writeOne[User](ctx, u.client, nethttp.MethodPatch, req, validation.ValidateUser)
}

// Delete removes a user record.
func (u *Users) Delete(ctx context.Context, id int) error {
	_, err := u.client.Delete(ctx, &httpclient.Request{Path: fmt.Sprintf("%s/%d", usersPath, id)})
	return err
}
