package api

import (
	"context"
	"fmt"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// UsersClient implements the resource contract for /users.
type UsersClient struct {
	c *Client
}

var _ ports.ResourceOps[domain.User, domain.UserDraft] = (*UsersClient)(nil)

func NewUsersClient(c *Client) *UsersClient {
	return &UsersClient{c: c}
}

func (u *UsersClient) List(ctx context.Context, filter ports.Filter) ([]domain.User, error) {
	var out []domain.User
	if err := u.c.get(ctx, "/users", queryOf(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UsersClient) Create(ctx context.Context, draft domain.UserDraft) error {
	if err := checkDraft(draft); err != nil {
		return err
	}
	return u.c.post(ctx, "/users", draft)
}

func (u *UsersClient) Update(ctx context.Context, id int, patch domain.UserDraft) error {
	if err := checkDraft(patch); err != nil {
		return err
	}
	return u.c.put(ctx, fmt.Sprintf("/users/%d", id), patch)
}

func (u *UsersClient) Delete(ctx context.Context, id int) error {
	return u.c.delete(ctx, fmt.Sprintf("/users/%d", id))
}
