package harvest

import (
	"slices"
	"strings"
	"unicode"
)

// KindSpec declares a resource kind. Only Name is required; every other field
// is derived when left empty.
type KindSpec struct {
	// Name is the declared kind name, e.g. "ExpenseCategory".
	Name string
	// ElementName overrides the XML element name ("expense-category").
	ElementName string
	// PluralName overrides the plural name (ElementName + "s").
	PluralName string
	// BasePath overrides the collection path ("/" + PluralName, with
	// hyphens replaced by underscores).
	BasePath string
	// FetchPath is used for single-item fetches when it differs from
	// BasePath.
	FetchPath string
	// Parents lists the kinds this kind can be nested under, in order.
	Parents []string
	// Primary makes the kind reachable from the client root. A kind without
	// parents is always primary.
	Primary bool
}

// Descriptor is the resolved, immutable metadata of a resource kind.
type Descriptor struct {
	name        string
	elementName string
	pluralName  string
	basePath    string
	fetchPath   string
	parents     []string
	primary     bool
}

// NewDescriptor resolves spec into a Descriptor.
func NewDescriptor(spec KindSpec) (*Descriptor, error) {
	if spec.Name == "" {
		return nil, ErrEmptyKindName
	}

	elementName := spec.ElementName
	if elementName == "" {
		elementName = ElementNameFor(spec.Name)
	}

	pluralName := spec.PluralName
	if pluralName == "" {
		pluralName = elementName + "s"
	}

	basePath := spec.BasePath
	if basePath == "" {
		basePath = "/" + strings.ReplaceAll(pluralName, "-", "_")
	}

	return &Descriptor{
		name:        spec.Name,
		elementName: elementName,
		pluralName:  pluralName,
		basePath:    basePath,
		fetchPath:   spec.FetchPath,
		parents:     slices.Clone(spec.Parents),
		primary:     spec.Primary || len(spec.Parents) == 0,
	}, nil
}

// ElementNameFor derives an element name from a declared kind name: the first
// letter is lower-cased and every later capital becomes "-" plus its lower
// case ("InvoiceItemCategory" -> "invoice-item-category").
func ElementNameFor(name string) string {
	var builder strings.Builder

	for i, r := range name {
		switch {
		case i == 0:
			builder.WriteRune(unicode.ToLower(r))
		case unicode.IsUpper(r):
			builder.WriteByte('-')
			builder.WriteRune(unicode.ToLower(r))
		default:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// Name returns the declared kind name.
func (d *Descriptor) Name() string { return d.name }

// ElementName returns the XML element name matched in response documents.
func (d *Descriptor) ElementName() string { return d.elementName }

// PluralName returns the plural name.
func (d *Descriptor) PluralName() string { return d.pluralName }

// BasePath returns the collection path.
func (d *Descriptor) BasePath() string { return d.basePath }

// FetchPath returns the single-item path, falling back to BasePath.
func (d *Descriptor) FetchPath() string {
	if d.fetchPath != "" {
		return d.fetchPath
	}

	return d.basePath
}

// Parents returns the kinds this kind can be nested under.
func (d *Descriptor) Parents() []string { return slices.Clone(d.parents) }

// Primary reports whether the kind is reachable from the client root.
func (d *Descriptor) Primary() bool { return d.primary }

// HasParent reports whether the kind can be nested under parent.
func (d *Descriptor) HasParent(parent string) bool {
	return slices.Contains(d.parents, parent)
}

// ItemAccessor is the attribute-style name of the single-item operation
// ("expense_category").
func (d *Descriptor) ItemAccessor() string {
	return strings.ReplaceAll(d.elementName, "-", "_")
}

// CollectionAccessor is the attribute-style name of the collection operation
// ("expense_categories").
func (d *Descriptor) CollectionAccessor() string {
	return strings.ReplaceAll(d.pluralName, "-", "_")
}

// ItemPath is the path of a primary single-item fetch.
func (d *Descriptor) ItemPath(id any) string {
	return BuildPath(d.FetchPath(), id)
}

// CollectionPath is the path of a primary collection fetch.
func (d *Descriptor) CollectionPath(params Params) string {
	return BuildURL(d.basePath, nil, params)
}

// NestedItemPath is the path of a single-item fetch under a parent entity.
func (d *Descriptor) NestedItemPath(parent *Descriptor, parentID, id any) string {
	return BuildPath(parent.basePath, parentID, d.basePath, id)
}

// NestedCollectionPath is the path of a collection fetch under a parent
// entity.
func (d *Descriptor) NestedCollectionPath(parent *Descriptor, parentID any, params Params) string {
	return BuildURL(parent.basePath, []any{parentID, d.basePath}, params)
}

func (d *Descriptor) equal(other *Descriptor) bool {
	return d.name == other.name &&
		d.elementName == other.elementName &&
		d.pluralName == other.pluralName &&
		d.basePath == other.basePath &&
		d.fetchPath == other.fetchPath &&
		d.primary == other.primary &&
		slices.Equal(d.parents, other.parents)
}
