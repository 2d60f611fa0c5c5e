package api

import (
	"context"
	"fmt"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// PhasesClient implements the resource contract for the phases of one
// project: listing and creation are scoped under /projects/:id/phases,
// mutations address /phases/:id directly.
type PhasesClient struct {
	c         *Client
	projectID int
}

var _ ports.ResourceOps[domain.Phase, domain.PhaseDraft] = (*PhasesClient)(nil)

func NewPhasesClient(c *Client, projectID int) *PhasesClient {
	return &PhasesClient{c: c, projectID: projectID}
}

func (p *PhasesClient) List(ctx context.Context, filter ports.Filter) ([]domain.Phase, error) {
	var out []domain.Phase
	path := fmt.Sprintf("/projects/%d/phases", p.projectID)
	if err := p.c.get(ctx, path, queryOf(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PhasesClient) Create(ctx context.Context, draft domain.PhaseDraft) error {
	if err := checkDraft(draft); err != nil {
		return err
	}
	return p.c.post(ctx, fmt.Sprintf("/projects/%d/phases", p.projectID), draft)
}

func (p *PhasesClient) Update(ctx context.Context, id int, patch domain.PhaseDraft) error {
	if err := checkDraft(patch); err != nil {
		return err
	}
	return p.c.put(ctx, fmt.Sprintf("/phases/%d", id), patch)
}

func (p *PhasesClient) Delete(ctx context.Context, id int) error {
	return p.c.delete(ctx, fmt.Sprintf("/phases/%d", id))
}
