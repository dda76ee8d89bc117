package client

import (
	"context"
	"iter"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// Entry implements harvest.Client.Entry.
func (c *Client) Entry(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindEntry, id, opts...)
}

// Entries implements harvest.Client.Entries.
func (c *Client) Entries(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindEntry, params, opts...)
}

// Project implements harvest.Client.Project.
func (c *Client) Project(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindProject, id, opts...)
}

// Projects implements harvest.Client.Projects.
func (c *Client) Projects(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindProject, params, opts...)
}

// Task implements harvest.Client.Task.
func (c *Client) Task(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindTask, id, opts...)
}

// Tasks implements harvest.Client.Tasks.
func (c *Client) Tasks(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindTask, params, opts...)
}

// User implements harvest.Client.User.
func (c *Client) User(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindUser, id, opts...)
}

// Users implements harvest.Client.Users.
func (c *Client) Users(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindUser, params, opts...)
}

// ExpenseCategory implements harvest.Client.ExpenseCategory.
func (c *Client) ExpenseCategory(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindExpenseCategory, id, opts...)
}

// ExpenseCategories implements harvest.Client.ExpenseCategories.
func (c *Client) ExpenseCategories(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindExpenseCategory, params, opts...)
}

// Client implements harvest.Client.Client.
func (c *Client) Client(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindClient, id, opts...)
}

// Clients implements harvest.Client.Clients.
func (c *Client) Clients(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindClient, params, opts...)
}

// Contact implements harvest.Client.Contact.
func (c *Client) Contact(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindContact, id, opts...)
}

// Contacts implements harvest.Client.Contacts.
func (c *Client) Contacts(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindContact, params, opts...)
}

// Invoice implements harvest.Client.Invoice.
func (c *Client) Invoice(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindInvoice, id, opts...)
}

// Invoices implements harvest.Client.Invoices.
func (c *Client) Invoices(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindInvoice, params, opts...)
}

// InvoiceItemCategory implements harvest.Client.InvoiceItemCategory.
func (c *Client) InvoiceItemCategory(ctx context.Context, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.Get(ctx, harvest.KindInvoiceItemCategory, id, opts...)
}

// InvoiceItemCategories implements harvest.Client.InvoiceItemCategories.
func (c *Client) InvoiceItemCategories(ctx context.Context, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.List(ctx, harvest.KindInvoiceItemCategory, params, opts...)
}

// UserExpense implements harvest.Client.UserExpense.
func (c *Client) UserExpense(ctx context.Context, user *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, user, harvest.KindExpense, id, opts...)
}

// UserExpenses implements harvest.Client.UserExpenses.
func (c *Client) UserExpenses(ctx context.Context, user *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, user, harvest.KindExpense, params, opts...)
}

// ProjectUserAssignment implements harvest.Client.ProjectUserAssignment.
func (c *Client) ProjectUserAssignment(ctx context.Context, project *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, project, harvest.KindUserAssignment, id, opts...)
}

// ProjectUserAssignments implements harvest.Client.ProjectUserAssignments.
func (c *Client) ProjectUserAssignments(ctx context.Context, project *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, project, harvest.KindUserAssignment, params, opts...)
}

// ProjectTaskAssignment implements harvest.Client.ProjectTaskAssignment.
func (c *Client) ProjectTaskAssignment(ctx context.Context, project *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, project, harvest.KindTaskAssignment, id, opts...)
}

// ProjectTaskAssignments implements harvest.Client.ProjectTaskAssignments.
func (c *Client) ProjectTaskAssignments(ctx context.Context, project *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, project, harvest.KindTaskAssignment, params, opts...)
}

// ClientContact implements harvest.Client.ClientContact.
func (c *Client) ClientContact(ctx context.Context, client *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, client, harvest.KindContact, id, opts...)
}

// ClientContacts implements harvest.Client.ClientContacts.
func (c *Client) ClientContacts(ctx context.Context, client *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, client, harvest.KindContact, params, opts...)
}

// InvoiceMessage implements harvest.Client.InvoiceMessage.
func (c *Client) InvoiceMessage(ctx context.Context, invoice *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, invoice, harvest.KindInvoiceMessage, id, opts...)
}

// InvoiceMessages implements harvest.Client.InvoiceMessages.
func (c *Client) InvoiceMessages(ctx context.Context, invoice *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, invoice, harvest.KindInvoiceMessage, params, opts...)
}

// InvoicePayment implements harvest.Client.InvoicePayment.
func (c *Client) InvoicePayment(ctx context.Context, invoice *harvest.Entity, id any, opts ...harvest.FetchOption) (*harvest.Entity, error) {
	return c.GetChild(ctx, invoice, harvest.KindPayment, id, opts...)
}

// InvoicePayments implements harvest.Client.InvoicePayments.
func (c *Client) InvoicePayments(ctx context.Context, invoice *harvest.Entity, params harvest.Params, opts ...harvest.FetchOption) iter.Seq2[*harvest.Entity, error] {
	return c.ListChildren(ctx, invoice, harvest.KindPayment, params, opts...)
}
