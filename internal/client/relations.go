package client

import (
	"context"
	"fmt"
	"iter"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// ClientProjects implements harvest.Client.ClientProjects.
func (c *Client) ClientProjects(ctx context.Context, client *harvest.Entity, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	clientID, err := ownerID(client, harvest.KindClient)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	return c.List(ctx, harvest.KindProject, harvest.Params{"client": clientID}, opts...)
}

// ClientInvoices implements harvest.Client.ClientInvoices.
func (c *Client) ClientInvoices(ctx context.Context, client *harvest.Entity, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	clientID, err := ownerID(client, harvest.KindClient)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	return c.List(ctx, harvest.KindInvoice, harvest.Params{"client": clientID}, opts...)
}

// ProjectEntries implements harvest.Client.ProjectEntries. The listing is
// date-filtered and therefore never cached as a collection.
func (c *Client) ProjectEntries(ctx context.Context, project *harvest.Entity, from, to harvest.Date, params harvest.Params) iter.Seq2[*harvest.Entity, error] {
	return c.projectReport(ctx, project, harvest.KindEntry, "entries", from, to, params)
}

// ProjectExpenses implements harvest.Client.ProjectExpenses.
func (c *Client) ProjectExpenses(ctx context.Context, project *harvest.Entity, from, to harvest.Date, params harvest.Params) iter.Seq2[*harvest.Entity, error] {
	return c.projectReport(ctx, project, harvest.KindExpense, "expenses", from, to, params)
}

func (c *Client) projectReport(ctx context.Context, project *harvest.Entity, kind, segment string, from, to harvest.Date, params harvest.Params) iter.Seq2[*harvest.Entity, error] {
	projectID, err := ownerID(project, harvest.KindProject)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	projectDesc, err := c.registry.Resolve(harvest.KindProject)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	desc, err := c.registry.Resolve(kind)
	if err != nil {
		return harvest.ErrorSeq(err)
	}

	filters := harvest.NormalizeParams(params)
	if filters == nil {
		filters = harvest.Params{}
	}

	filters["from"] = from
	filters["to"] = to

	path := harvest.BuildURL(projectDesc.BasePath(), []any{projectID, segment}, filters)

	return c.fetchMany(ctx, desc, path, nil, nil)
}

func ownerID(owner *harvest.Entity, kind string) (string, error) {
	if owner == nil {
		return "", fmt.Errorf("%w: nil %s", harvest.ErrKindMismatch, kind)
	}

	if owner.Kind() != kind {
		return "", fmt.Errorf("%w: want %s, got %s", harvest.ErrKindMismatch, kind, owner.Kind())
	}

	id, ok := owner.ID()
	if !ok {
		return "", fmt.Errorf("%s: %w", kind, harvest.ErrNoID)
	}

	return id, nil
}
