package harvest

import "fmt"

// Declared names of the built-in resource kinds.
const (
	KindEntry               = "Entry"
	KindClient              = "Client"
	KindContact             = "Contact"
	KindProject             = "Project"
	KindTask                = "Task"
	KindUser                = "User"
	KindExpenseCategory     = "ExpenseCategory"
	KindExpense             = "Expense"
	KindUserAssignment      = "UserAssignment"
	KindTaskAssignment      = "TaskAssignment"
	KindInvoice             = "Invoice"
	KindInvoiceMessage      = "InvoiceMessage"
	KindPayment             = "Payment"
	KindInvoiceItemCategory = "InvoiceItemCategory"
)

// DefaultKinds returns the built-in kind table. Parents always precede their
// children.
func DefaultKinds() []KindSpec {
	return []KindSpec{
		{
			Name:        KindEntry,
			ElementName: "day_entry",
			PluralName:  "day_entries",
			BasePath:    "/daily",
			FetchPath:   "/daily/show",
		},
		{Name: KindClient},
		{Name: KindContact, Parents: []string{KindClient}, Primary: true},
		{Name: KindProject},
		{Name: KindTask},
		{Name: KindUser, BasePath: "/people"},
		{Name: KindExpenseCategory, PluralName: "expense-categories"},
		{Name: KindExpense, Parents: []string{KindUser}},
		{Name: KindUserAssignment, Parents: []string{KindProject}},
		{Name: KindTaskAssignment, Parents: []string{KindProject}},
		{Name: KindInvoice},
		{Name: KindInvoiceMessage, BasePath: "/messages", Parents: []string{KindInvoice}},
		{Name: KindPayment, Parents: []string{KindInvoice}},
		{Name: KindInvoiceItemCategory, PluralName: "invoice-item-categories"},
	}
}

var defaultRegistry = NewRegistry()

func init() {
	for _, spec := range DefaultKinds() {
		defaultRegistry.MustRegister(spec)
	}
}

// DefaultRegistry returns the registry holding the built-in kinds. Additional
// kinds may be registered on it before a client is created.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// displayers render entities of kinds that have a more useful summary than
// "Kind: name".
var displayers = map[string]func(*Entity) string{
	KindEntry: func(e *Entity) string {
		return fmt.Sprintf("task %0.2f hours for project %s", e.Float("hours"), e.Text("project_id"))
	},
	KindContact: func(e *Entity) string {
		return fmt.Sprintf("Contact: %s %s", e.Text("first_name"), e.Text("last_name"))
	},
	KindUser: func(e *Entity) string {
		return fmt.Sprintf("User: %s %s", e.Text("first_name"), e.Text("last_name"))
	},
	KindUserAssignment: func(e *Entity) string {
		return fmt.Sprintf("user %s for project %s", e.Text("user_id"), e.Text("project_id"))
	},
	KindTaskAssignment: func(e *Entity) string {
		return fmt.Sprintf("task %s for project %s", e.Text("task_id"), e.Text("project_id"))
	},
}
