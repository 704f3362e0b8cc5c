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

const postsPath = "/posts"

// Posts exposes the post entity operations.
type Posts struct {
	client httpclient.Client
}

// NewPosts creates a post resource client over the given HTTP client.
func NewPosts(client httpclient.Client) *Posts {
	return &Posts{client: client}
}

// List fetches every post and validates each against the Post schema.
func (p *Posts) List(ctx context.Context) ([]Post, error) {
	return fetchList[Post](ctx, p.client, &httpclient.Request{Path: postsPath}, validation.ValidatePost)
}

// Get fetches one post by id.
func (p *Posts) Get(ctx context.Context, id int) (*Post, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", postsPath, id)}
	return fetchOne[Post](ctx, p.client, req, validation.ValidatePost)
}

// ByUser fetches the posts belonging to one user.
func (p *Posts) ByUser(ctx context.Context, userID int) ([]Post, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))
	req := &httpclient.Request{Path: postsPath, Query: q}
	return fetchList[Post](ctx, p.client, req, validation.ValidatePost)
}

// Paginate fetches one page of posts using the _page/_limit convention.
func (p *Posts) Paginate(ctx context.Context, page, limit int) ([]Post, error) {
	q := url.Values{}
	q.Set("_page", strconv.Itoa(page))
	q.Set("_limit", strconv.Itoa(limit))
	req := &httpclient.Request{Path: postsPath, Query: q}
	return fetchList[Post](ctx, p.client, req, validation.ValidatePost)
}

// SortBy fetches posts ordered by a field. Order is "asc" or "desc".
func (p *Posts) SortBy(ctx context.Context, field, order string) ([]Post, error) {
	q := url.Values{}
	q.Set("_sort", field)
	q.Set("_order", order)
	req := &httpclient.Request{Path: postsPath, Query: q}
	return fetchList[Post](ctx, p.client, req, validation.ValidatePost)
}

// Search performs a full-text search over posts.
func (p *Posts) Search(ctx context.Context, query string) ([]Post, error) {
	q := url.Values{}
	q.Set("q", query)
	req := &httpclient.Request{Path: postsPath, Query: q}
	return fetchList[Post](ctx, p.client, req, validation.ValidatePost)
}

// Create submits a new post and returns the echoed record.
func (p *Posts) Create(ctx context.Context, post Post) (*Post, error) {
	req := &httpclient.Request{Path: postsPath, Body: post}
	return writeOne[Post](ctx, p.client, nethttp.MethodPost, req, validation.ValidatePost)
}

// Update replaces a post record.
func (p *Posts) Update(ctx context.Context, id int, post Post) (*Post, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", postsPath, id), Body: post}
	return writeOne[Post](ctx, p.client, nethttp.MethodPut, req, validation.ValidatePost)
}

// Patch applies a partial update to a post.
func (p *Posts) Patch(ctx context.Context, id int, fields map[string]any) (*Post, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", postsPath, id), Body: fields}
	return writeOne[Post](ctx, p.client, nethttp.MethodPatch, req, validation.ValidatePost)
}

// Delete removes a post record.
func (p *Posts) Delete(ctx context.Context, id int) error {
	_, err := p.client.Delete(ctx, &httpclient.Request{Path: fmt.Sprintf("%s/%d", postsPath, id)})
	return err
}
