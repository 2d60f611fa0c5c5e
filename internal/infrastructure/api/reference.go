package api

import (
	"context"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// ReferenceClient serves the read-only reference tables.
type ReferenceClient struct {
	c *Client
}

var _ ports.ReferenceAPI = (*ReferenceClient)(nil)

func NewReferenceClient(c *Client) *ReferenceClient {
	return &ReferenceClient{c: c}
}

func (r *ReferenceClient) Directions(ctx context.Context) ([]domain.Reference, error) {
	return r.refs(ctx, "/reference/directions")
}

func (r *ReferenceClient) Roles(ctx context.Context) ([]domain.Reference, error) {
	return r.refs(ctx, "/reference/roles")
}

func (r *ReferenceClient) Statuts(ctx context.Context) ([]domain.Reference, error) {
	return r.refs(ctx, "/reference/statuts")
}

func (r *ReferenceClient) Priorites(ctx context.Context) ([]domain.Reference, error) {
	return r.refs(ctx, "/reference/priorites")
}

func (r *ReferenceClient) Utilisateurs(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.c.get(ctx, "/reference/utilisateurs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReferenceClient) refs(ctx context.Context, path string) ([]domain.Reference, error) {
	var out []domain.Reference
	if err := r.c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
