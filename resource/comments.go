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

const commentsPath = "/comments"

// Comments exposes the comment entity operations.
type Comments struct {
	client httpclient.Client
}

// NewComments creates a comment resource client over the given HTTP client.
func NewComments(client httpclient.Client) *Comments {
	return &Comments{client: client}
}

// List fetches every comment and validates each against the Comment schema.
func (c *Comments) List(ctx context.Context) ([]Comment, error) {
	return fetchList[Comment](ctx, c.client, &httpclient.Request{Path: commentsPath}, validation.ValidateComment)
}

// Get fetches one comment by id.
func (c *Comments) Get(ctx context.Context, id int) (*Comment, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", commentsPath, id)}
	return fetchOne[Comment](ctx, c.client, req, validation.ValidateComment)
}

// ByPost fetches the comments attached to one post.
func (c *Comments) ByPost(ctx context.Context, postID int) ([]Comment, error) {
	q := url.Values{}
	q.Set("postId", strconv.Itoa(postID))
	req := &httpclient.Request{Path: commentsPath, Query: q}
	return fetchList[Comment](ctx, c.client, req, validation.ValidateComment)
}

// Paginate fetches one page of comments using the _page/_limit convention.
func (c *Comments) Paginate(ctx context.Context, page, limit int) ([]Comment, error) {
	q := url.Values{}
	q.Set("_page", strconv.Itoa(page))
	q.Set("_limit", strconv.Itoa(limit))
	req := &httpclient.Request{Path: commentsPath, Query: q}
	return fetchList[Comment](ctx, c.client, req, validation.ValidateComment)
}

// Create submits a new comment and returns the echoed record.
func (c *Comments) Create(ctx context.Context, comment Comment) (*Comment, error) {
	req := &httpclient.Request{Path: commentsPath, Body: comment}
	return writeOne[Comment](ctx, c.client, nethttp.MethodPost, req, validation.ValidateComment)
}

// Update replaces a comment record.
func (c *Comments) Update(ctx context.Context, id int, comment Comment) (*Comment, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", commentsPath, id), Body: comment}
	return writeOne[Comment](ctx, c.client, nethttp.MethodPut, req, validation.ValidateComment)
}

// Patch applies a partial update to a comment.
func (c *Comments) Patch(ctx context.Context, id int, fields map[string]any) (*Comment, error) {
	req := &httpclient.Request{Path: fmt.Sprintf("%s/%d", commentsPath, id), Body: fields}
	return writeOne[Comment](ctx, c.client, nethttp.MethodPatch, req, validation.ValidateComment)
}

// Delete removes a comment record.
func (c *Comments) Delete(ctx context.Context, id int) error {
	_, err := c.client.Delete(ctx, &httpclient.Request{Path: fmt.Sprintf("%s/%d", commentsPath, id)})
	return err
}

// Stats aggregates simple body-length statistics over one post's comments.
type Stats struct {
	Count      int
	AvgBodyLen float64
	MinBodyLen int
	MaxBodyLen int
}

// Stats fetches a post's comments and aggregates their body lengths.
func (c *Comments) Stats(ctx context.Context, postID int) (*Stats, error) {
	comments, err := c.ByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return &Stats{}, nil
	}

	stats := &Stats{
		Count:      len(comments),
		MinBodyLen: len(comments[0].Body),
		MaxBodyLen: len(comments[0].Body),
	}
	total := 0
	for _, comment := range comments {
		n := len(comment.Body)
		total += n
		if n < stats.MinBodyLen {
			stats.MinBodyLen = n
		}
		if n > stats.MaxBodyLen {
			stats.MaxBodyLen = n
		}
	}
	stats.AvgBodyLen = float64(total) / float64(len(comments))
	return stats, nil
}
