package model

import "fmt"

// Entity names a record collection.
type Entity string

const (
	EntityOrders   Entity = "orders"
	EntityPayments Entity = "payments"
	EntityProducts Entity = "products"
	EntityUsers    Entity = "users"
)

// Entities lists every collection in tab order.
var Entities = []Entity{EntityOrders, EntityPayments, EntityProducts, EntityUsers}

// FieldKind is the kind of a schema field. Only FieldNumber is stored as a
// number; money and dates are formatted text.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldMoney
	FieldDate
)

// FieldSpec describes one field of an entity.
type FieldSpec struct {
	Name        string // record field name, e.g. "orderId"
	Column      string // SQL column, e.g. "order_id"
	Label       string
	Kind        FieldKind
	Required    bool
	Placeholder string
	Options     []string
}

// Schema describes an entity's fields and id format.
type Schema struct {
	Entity    Entity
	Title     string
	Singular  string
	IDPrefix  string
	Fields    []FieldSpec
	Creatable bool
}

// Field returns the spec for name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// EditableFields returns every field except the id.
func (s Schema) EditableFields() []FieldSpec {
	var out []FieldSpec
	for _, f := range s.Fields {
		if f.Name == "id" {
			continue
		}
		out = append(out, f)
	}
	return out
}

var schemas = map[Entity]Schema{
	EntityOrders: {
		Entity:    EntityOrders,
		Title:     "Orders",
		Singular:  "Order",
		IDPrefix:  "ORD-",
		Creatable: true,
		Fields: []FieldSpec{
			{Name: "id", Column: "id", Label: "Order ID"},
			{Name: "customer", Column: "customer", Label: "Customer", Required: true, Placeholder: "Customer name"},
			{Name: "date", Column: "date", Label: "Date", Kind: FieldDate, Required: true, Placeholder: "YYYY-MM-DD"},
			{Name: "total", Column: "total", Label: "Total", Kind: FieldMoney, Required: true, Placeholder: "$0.00"},
			{Name: "items", Column: "items", Label: "Items", Kind: FieldNumber, Required: true, Placeholder: "1"},
			{Name: "status", Column: "status", Label: "Status", Required: true, Placeholder: "pending",
				Options: []string{"pending", "processing", "shipped", "completed", "cancelled", "refunded"}},
		},
	},
	EntityPayments: {
		Entity:   EntityPayments,
		Title:    "Payments",
		Singular: "Payment",
		IDPrefix: "PAY-",
		Fields: []FieldSpec{
			{Name: "id", Column: "id", Label: "Payment ID"},
			{Name: "date", Column: "date", Label: "Date", Kind: FieldDate, Required: true, Placeholder: "YYYY-MM-DD"},
			{Name: "amount", Column: "amount", Label: "Amount", Kind: FieldMoney, Required: true, Placeholder: "$0.00"},
			{Name: "method", Column: "method", Label: "Method", Required: true, Placeholder: "Credit Card"},
			{Name: "customer", Column: "customer", Label: "Customer", Required: true, Placeholder: "Customer name"},
			{Name: "orderId", Column: "order_id", Label: "Order ID", Required: true, Placeholder: "ORD-001"},
			{Name: "status", Column: "status", Label: "Status", Required: true, Placeholder: "pending",
				Options: []string{"pending", "completed", "failed", "refunded"}},
		},
	},
	EntityProducts: {
		Entity:    EntityProducts,
		Title:     "Products",
		Singular:  "Product",
		IDPrefix:  "PROD-",
		Creatable: true,
		Fields: []FieldSpec{
			{Name: "id", Column: "id", Label: "Product ID"},
			{Name: "name", Column: "name", Label: "Name", Required: true, Placeholder: "Product name"},
			{Name: "category", Column: "category", Label: "Category", Required: true, Placeholder: "Electronics"},
			{Name: "price", Column: "price", Label: "Price", Kind: FieldMoney, Required: true, Placeholder: "$0.00"},
			{Name: "stock", Column: "stock", Label: "Stock", Kind: FieldNumber, Required: true, Placeholder: "0"},
			{Name: "status", Column: "status", Label: "Status", Required: true, Placeholder: "active",
				Options: []string{"active", "low_stock", "out_of_stock", "discontinued"}},
		},
	},
	EntityUsers: {
		Entity:    EntityUsers,
		Title:     "Users",
		Singular:  "User",
		IDPrefix:  "USER-",
		Creatable: true,
		Fields: []FieldSpec{
			{Name: "id", Column: "id", Label: "User ID"},
			{Name: "name", Column: "name", Label: "Name", Required: true, Placeholder: "Full name"},
			{Name: "email", Column: "email", Label: "Email", Required: true, Placeholder: "name@example.com"},
			{Name: "joinDate", Column: "join_date", Label: "Join Date", Kind: FieldDate, Required: true, Placeholder: "YYYY-MM-DD"},
			{Name: "orders", Column: "orders", Label: "Orders", Kind: FieldNumber, Required: true, Placeholder: "0"},
			{Name: "status", Column: "status", Label: "Status", Required: true, Placeholder: "active",
				Options: []string{"active", "pending", "inactive"}},
		},
	},
}

// SchemaFor returns the schema registered for e.
func SchemaFor(e Entity) (Schema, error) {
	s, ok := schemas[e]
	if !ok {
		return Schema{}, fmt.Errorf("unknown entity %q", e)
	}
	return s, nil
}

// MustSchema is SchemaFor for entities known at compile time.
func MustSchema(e Entity) Schema {
	s, err := SchemaFor(e)
	if err != nil {
		panic(err)
	}
	return s
}
