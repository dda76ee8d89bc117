package harvest_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func TestElementNameFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "project", harvest.ElementNameFor("Project"))
	assert.Equal(t, "expense-category", harvest.ElementNameFor("ExpenseCategory"))
	assert.Equal(t, "invoice-item-category", harvest.ElementNameFor("InvoiceItemCategory"))
}

func TestNewDescriptor(t *testing.T) {
	t.Parallel()

	t.Run("derived names", func(t *testing.T) {
		t.Parallel()

		desc, err := harvest.NewDescriptor(harvest.KindSpec{Name: "TimeOffRequest"})
		require.NoError(t, err)

		assert.Equal(t, "TimeOffRequest", desc.Name())
		assert.Equal(t, "time-off-request", desc.ElementName())
		assert.Equal(t, "time-off-requests", desc.PluralName())
		assert.Equal(t, "/time_off_requests", desc.BasePath())
		assert.Equal(t, "/time_off_requests", desc.FetchPath())
		assert.Equal(t, "time_off_request", desc.ItemAccessor())
		assert.Equal(t, "time_off_requests", desc.CollectionAccessor())
		assert.True(t, desc.Primary())
		assert.Empty(t, desc.Parents())
	})

	t.Run("nested kind is not primary by default", func(t *testing.T) {
		t.Parallel()

		desc, err := harvest.NewDescriptor(harvest.KindSpec{Name: "Payment", Parents: []string{"Invoice"}})
		require.NoError(t, err)

		assert.False(t, desc.Primary())
		assert.True(t, desc.HasParent("Invoice"))
		assert.False(t, desc.HasParent("Client"))
	})

	t.Run("parents are copied", func(t *testing.T) {
		t.Parallel()

		parents := []string{"Invoice"}
		desc, err := harvest.NewDescriptor(harvest.KindSpec{Name: "Payment", Parents: parents})
		require.NoError(t, err)

		parents[0] = "Client"
		returned := desc.Parents()
		returned[0] = "User"

		assert.Equal(t, []string{"Invoice"}, desc.Parents())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := harvest.NewDescriptor(harvest.KindSpec{})
		require.ErrorIs(t, err, harvest.ErrEmptyKindName)
	})
}

func TestDefaultRegistry_Paths(t *testing.T) {
	t.Parallel()

	registry := harvest.DefaultRegistry()

	tests := []struct {
		kind        string
		element     string
		plural      string
		basePath    string
		itemPath    string
		collections string
	}{
		{harvest.KindEntry, "day_entry", "day_entries", "/daily", "/daily/show/5", "/daily"},
		{harvest.KindClient, "client", "clients", "/clients", "/clients/5", "/clients"},
		{harvest.KindContact, "contact", "contacts", "/contacts", "/contacts/5", "/contacts"},
		{harvest.KindProject, "project", "projects", "/projects", "/projects/5", "/projects"},
		{harvest.KindTask, "task", "tasks", "/tasks", "/tasks/5", "/tasks"},
		{harvest.KindUser, "user", "users", "/people", "/people/5", "/people"},
		{harvest.KindExpenseCategory, "expense-category", "expense-categories", "/expense_categories", "/expense_categories/5", "/expense_categories"},
		{harvest.KindInvoice, "invoice", "invoices", "/invoices", "/invoices/5", "/invoices"},
		{harvest.KindInvoiceItemCategory, "invoice-item-category", "invoice-item-categories", "/invoice_item_categories", "/invoice_item_categories/5", "/invoice_item_categories"},
	}

	for _, testCase := range tests {
		t.Run(testCase.kind, func(t *testing.T) {
			t.Parallel()

			desc, err := registry.ResolvePrimary(testCase.kind)
			require.NoError(t, err)

			assert.Equal(t, testCase.element, desc.ElementName())
			assert.Equal(t, testCase.plural, desc.PluralName())
			assert.Equal(t, testCase.basePath, desc.BasePath())
			assert.Equal(t, testCase.itemPath, desc.ItemPath(5))
			assert.Equal(t, testCase.collections, desc.CollectionPath(nil))
		})
	}
}

func TestDefaultRegistry_NestedPaths(t *testing.T) {
	t.Parallel()

	registry := harvest.DefaultRegistry()

	tests := []struct {
		parent     string
		kind       string
		item       string
		collection string
	}{
		{harvest.KindClient, harvest.KindContact, "/clients/5/contacts/7", "/clients/5/contacts"},
		{harvest.KindUser, harvest.KindExpense, "/people/5/expenses/7", "/people/5/expenses"},
		{harvest.KindProject, harvest.KindUserAssignment, "/projects/5/user_assignments/7", "/projects/5/user_assignments"},
		{harvest.KindProject, harvest.KindTaskAssignment, "/projects/5/task_assignments/7", "/projects/5/task_assignments"},
		{harvest.KindInvoice, harvest.KindInvoiceMessage, "/invoices/5/messages/7", "/invoices/5/messages"},
		{harvest.KindInvoice, harvest.KindPayment, "/invoices/5/payments/7", "/invoices/5/payments"},
	}

	for _, testCase := range tests {
		t.Run(testCase.parent+"/"+testCase.kind, func(t *testing.T) {
			t.Parallel()

			parent, desc, err := registry.ResolveNested(testCase.parent, testCase.kind)
			require.NoError(t, err)

			assert.Equal(t, testCase.item, desc.NestedItemPath(parent, 5, 7))
			assert.Equal(t, testCase.collection, desc.NestedCollectionPath(parent, 5, nil))
		})
	}
}

func TestDefaultRegistry_Hierarchy(t *testing.T) {
	t.Parallel()

	registry := harvest.DefaultRegistry()

	assert.GreaterOrEqual(t, len(registry.Kinds()), 14)

	primaries := make([]string, 0)
	for _, desc := range registry.Primaries() {
		primaries = append(primaries, desc.Name())
	}

	assert.Subset(t, primaries, []string{
		harvest.KindEntry, harvest.KindClient, harvest.KindContact, harvest.KindProject, harvest.KindTask,
		harvest.KindUser, harvest.KindExpenseCategory, harvest.KindInvoice, harvest.KindInvoiceItemCategory,
	})
	assert.NotContains(t, primaries, harvest.KindExpense)
	assert.NotContains(t, primaries, harvest.KindPayment)

	names := func(descs []*harvest.Descriptor) []string {
		out := make([]string, 0, len(descs))
		for _, desc := range descs {
			out = append(out, desc.Name())
		}

		return out
	}

	assert.Equal(t, []string{harvest.KindUserAssignment, harvest.KindTaskAssignment}, names(registry.Children(harvest.KindProject)))
	assert.Equal(t, []string{harvest.KindInvoiceMessage, harvest.KindPayment}, names(registry.Children(harvest.KindInvoice)))
	assert.Equal(t, []string{harvest.KindContact}, names(registry.Children(harvest.KindClient)))
	assert.Empty(t, registry.Children(harvest.KindTask))
}

func TestRegistry_SeveralParents(t *testing.T) {
	t.Parallel()

	registry := harvest.NewRegistry()
	for _, spec := range harvest.DefaultKinds() {
		registry.MustRegister(spec)
	}

	note := registry.MustRegister(harvest.KindSpec{Name: "Note", Parents: []string{harvest.KindProject, harvest.KindUser}})
	assert.False(t, note.Primary())
	assert.Equal(t, []string{harvest.KindProject, harvest.KindUser}, note.Parents())

	projectDesc, desc, err := registry.ResolveNested(harvest.KindProject, "Note")
	require.NoError(t, err)
	assert.Same(t, note, desc)
	assert.Equal(t, "/projects/1/notes", desc.NestedCollectionPath(projectDesc, 1, nil))
	assert.Equal(t, "/projects/1/notes/10", desc.NestedItemPath(projectDesc, 1, 10))

	userDesc, _, err := registry.ResolveNested(harvest.KindUser, "Note")
	require.NoError(t, err)
	assert.Equal(t, "/people/1/notes", desc.NestedCollectionPath(userDesc, 1, nil))
	assert.Equal(t, "/people/1/notes/20", desc.NestedItemPath(userDesc, 1, 20))

	_, err = registry.ResolvePrimary("Note")
	require.Error(t, err)

	_, _, err = registry.ResolveNested(harvest.KindTask, "Note")
	require.ErrorIs(t, err, harvest.ErrNotNested)

	assert.Contains(t, registry.Children(harvest.KindUser), note)
	assert.Contains(t, registry.Children(harvest.KindProject), note)
	assert.NotEqual(t,
		harvest.ParentScope(harvest.KindProject, 1),
		harvest.ParentScope(harvest.KindUser, 1))
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry := harvest.DefaultRegistry()

	for _, name := range []string{"ExpenseCategory", "expensecategory", "expense-category", "expense_categories", "Expense-Categories"} {
		desc, ok := registry.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, harvest.KindExpenseCategory, desc.Name(), name)
	}

	desc, err := registry.Resolve("day_entries")
	require.NoError(t, err)
	assert.Equal(t, harvest.KindEntry, desc.Name())

	_, err = registry.Resolve("widgets")
	require.ErrorIs(t, err, harvest.ErrUnknownKind)
}

func TestRegistry_ResolveErrors(t *testing.T) {
	t.Parallel()

	registry := harvest.DefaultRegistry()

	_, err := registry.ResolvePrimary(harvest.KindPayment)
	require.ErrorIs(t, err, harvest.ErrNotPrimary)

	_, _, err = registry.ResolveNested(harvest.KindClient, harvest.KindPayment)
	require.ErrorIs(t, err, harvest.ErrNotNested)

	_, _, err = registry.ResolveNested("Widget", harvest.KindPayment)
	require.ErrorIs(t, err, harvest.ErrUnknownKind)
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()
		first, err := registry.Register(harvest.KindSpec{Name: "Project"})
		require.NoError(t, err)

		second, err := registry.Register(harvest.KindSpec{Name: "Project"})
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Len(t, registry.Kinds(), 1)
	})

	t.Run("conflicting spec", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()
		registry.MustRegister(harvest.KindSpec{Name: "Project"})

		_, err := registry.Register(harvest.KindSpec{Name: "Project", BasePath: "/work"})
		require.ErrorIs(t, err, harvest.ErrKindConflict)
	})

	t.Run("conflicting alias", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()
		registry.MustRegister(harvest.KindSpec{Name: "Project"})

		_, err := registry.Register(harvest.KindSpec{Name: "Job", ElementName: "project"})
		require.ErrorIs(t, err, harvest.ErrKindConflict)
	})

	t.Run("unknown parent", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()

		_, err := registry.Register(harvest.KindSpec{Name: "Payment", Parents: []string{"Invoice"}})
		require.ErrorIs(t, err, harvest.ErrUnknownParent)
		assert.Empty(t, registry.Kinds())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()

		_, err := registry.Register(harvest.KindSpec{})
		require.ErrorIs(t, err, harvest.ErrEmptyKindName)
	})

	t.Run("must register panics", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()

		assert.Panics(t, func() {
			registry.MustRegister(harvest.KindSpec{Name: "Payment", Parents: []string{"Invoice"}})
		})
	})

	t.Run("concurrent registration", func(t *testing.T) {
		t.Parallel()

		registry := harvest.NewRegistry()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := registry.Register(harvest.KindSpec{Name: "Project"})
				assert.NoError(t, err)
			}()
		}

		wg.Wait()
		assert.Len(t, registry.Kinds(), 1)
	})
}
