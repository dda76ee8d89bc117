package harvest

import (
	"context"
	"iter"
)

// Fetcher is the registry-driven generic fetch surface. Every typed accessor
// of Client delegates to it.
type Fetcher interface {
	// Get fetches one entity of a primary kind.
	Get(ctx context.Context, kind string, id any, opts ...FetchOption) (*Entity, error)
	// List fetches the collection of a primary kind.
	List(ctx context.Context, kind string, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	// GetChild fetches one entity of kind nested under parent.
	GetChild(ctx context.Context, parent *Entity, kind string, id any, opts ...FetchOption) (*Entity, error)
	// ListChildren fetches the collection of kind nested under parent.
	ListChildren(ctx context.Context, parent *Entity, kind string, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
}

// TimeTrackingClients provides typed access to time tracking resources.
type TimeTrackingClients interface {
	Entry(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Entries(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	Project(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Projects(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	Task(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Tasks(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	User(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Users(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	ExpenseCategory(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	ExpenseCategories(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]

	UserExpense(ctx context.Context, user *Entity, id any, opts ...FetchOption) (*Entity, error)
	UserExpenses(ctx context.Context, user *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	ProjectUserAssignment(ctx context.Context, project *Entity, id any, opts ...FetchOption) (*Entity, error)
	ProjectUserAssignments(ctx context.Context, project *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	ProjectTaskAssignment(ctx context.Context, project *Entity, id any, opts ...FetchOption) (*Entity, error)
	ProjectTaskAssignments(ctx context.Context, project *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]

	// ProjectEntries lists the time entries of project between from and to.
	ProjectEntries(ctx context.Context, project *Entity, from, to Date, params Params) iter.Seq2[*Entity, error]
	// ProjectExpenses lists the expenses of project between from and to.
	ProjectExpenses(ctx context.Context, project *Entity, from, to Date, params Params) iter.Seq2[*Entity, error]
}

// BillingClients provides typed access to client and invoicing resources.
type BillingClients interface {
	Client(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Clients(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	Contact(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Contacts(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	Invoice(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	Invoices(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	InvoiceItemCategory(ctx context.Context, id any, opts ...FetchOption) (*Entity, error)
	InvoiceItemCategories(ctx context.Context, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]

	ClientContact(ctx context.Context, client *Entity, id any, opts ...FetchOption) (*Entity, error)
	ClientContacts(ctx context.Context, client *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	InvoiceMessage(ctx context.Context, invoice *Entity, id any, opts ...FetchOption) (*Entity, error)
	InvoiceMessages(ctx context.Context, invoice *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]
	InvoicePayment(ctx context.Context, invoice *Entity, id any, opts ...FetchOption) (*Entity, error)
	InvoicePayments(ctx context.Context, invoice *Entity, params Params, opts ...FetchOption) iter.Seq2[*Entity, error]

	// ClientProjects lists the projects of client.
	ClientProjects(ctx context.Context, client *Entity, opts ...FetchOption) iter.Seq2[*Entity, error]
	// ClientInvoices lists the invoices of client.
	ClientInvoices(ctx context.Context, client *Entity, opts ...FetchOption) iter.Seq2[*Entity, error]
}

// Client is the main harvest API client interface.
type Client interface {
	Fetcher
	TimeTrackingClients
	BillingClients

	// Ref returns an unfetched entity of kind carrying only id, usable as a
	// parent for nested fetches.
	Ref(kind string, id any) (*Entity, error)
	// Request performs one raw request against a path relative to the base
	// URL and parses the response.
	Request(ctx context.Context, method, path string, body []byte) (*Document, error)
	// Cache returns the client's cache.
	Cache() *Cache
	// Registry returns the kind registry the client resolves against.
	Registry() *Registry
	// Close releases resources held by the cache store.
	Close() error
}
