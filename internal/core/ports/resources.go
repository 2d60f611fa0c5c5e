package ports

import (
	"context"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// Filter carries the query parameters of a list call.
type Filter map[string]string

// ResourceOps is the uniform list/create/update/delete contract applied to
// projects, users and phases. T is the resource read shape, D the draft/patch
// write shape.
type ResourceOps[T any, D any] interface {
	List(ctx context.Context, filter Filter) ([]T, error)
	Create(ctx context.Context, draft D) error
	Update(ctx context.Context, id int, patch D) error
	Delete(ctx context.Context, id int) error
}

// ReferenceAPI serves the read-only reference tables used to resolve names
// to ids in create/update forms.
type ReferenceAPI interface {
	Directions(ctx context.Context) ([]domain.Reference, error)
	Roles(ctx context.Context) ([]domain.Reference, error)
	Statuts(ctx context.Context) ([]domain.Reference, error)
	Priorites(ctx context.Context) ([]domain.Reference, error)
	Utilisateurs(ctx context.Context) ([]domain.User, error)
}
