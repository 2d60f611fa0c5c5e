package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// ProjectsClient implements the resource contract for /projects.
type ProjectsClient struct {
	c *Client
}

var _ ports.ResourceOps[domain.Project, domain.ProjectDraft] = (*ProjectsClient)(nil)

func NewProjectsClient(c *Client) *ProjectsClient {
	return &ProjectsClient{c: c}
}

func (p *ProjectsClient) List(ctx context.Context, filter ports.Filter) ([]domain.Project, error) {
	var out []domain.Project
	if err := p.c.get(ctx, "/projects", queryOf(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProjectsClient) Create(ctx context.Context, draft domain.ProjectDraft) error {
	if err := checkDraft(draft); err != nil {
		return err
	}
	return p.c.post(ctx, "/projects", draft)
}

func (p *ProjectsClient) Update(ctx context.Context, id int, patch domain.ProjectDraft) error {
	if err := checkDraft(patch); err != nil {
		return err
	}
	return p.c.put(ctx, fmt.Sprintf("/projects/%d", id), patch)
}

func (p *ProjectsClient) Delete(ctx context.Context, id int) error {
	return p.c.delete(ctx, fmt.Sprintf("/projects/%d", id))
}

func queryOf(filter ports.Filter) url.Values {
	if len(filter) == 0 {
		return nil
	}
	q := make(url.Values, len(filter))
	for k, v := range filter {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
