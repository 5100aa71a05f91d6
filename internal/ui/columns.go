package ui

import (
	"backoffice/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	outOfStockStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	lowStockStyle   = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
)

func statusCell(e model.Entity) func(model.Record) string {
	return func(r model.Record) string {
		return StatusBadge(e, r.Value("status").String())
	}
}

// stockCell colours stock counts: red when sold out, orange below 50.
func stockCell(r model.Record) string {
	v := r.Value("stock")
	n, ok := v.AsNumber()
	switch {
	case ok && n == 0:
		return outOfStockStyle.Render(v.String())
	case ok && n < 50:
		return lowStockStyle.Render(v.String())
	}
	return v.String()
}

// ColumnsFor returns the list columns of an entity.
func ColumnsFor(e model.Entity) []Column {
	switch e {
	case model.EntityOrders:
		return []Column{
			{Header: "Order ID", Accessor: "id", Width: 10},
			{Header: "Customer", Accessor: "customer", Width: 18},
			{Header: "Date", Accessor: "date", Width: 12},
			{Header: "Total", Accessor: "total", Width: 11},
			{Header: "Items", Accessor: "items", Width: 7},
			{Header: "Status", Accessor: "status", Width: 14, Cell: statusCell(e)},
		}
	case model.EntityPayments:
		return []Column{
			{Header: "Payment ID", Accessor: "id", Width: 12},
			{Header: "Date", Accessor: "date", Width: 12},
			{Header: "Amount", Accessor: "amount", Width: 11},
			{Header: "Method", Accessor: "method", Width: 14},
			{Header: "Customer", Accessor: "customer", Width: 18},
			{Header: "Order ID", Accessor: "orderId", Width: 10},
			{Header: "Status", Accessor: "status", Width: 13, Cell: statusCell(e)},
		}
	case model.EntityProducts:
		return []Column{
			{Header: "Product ID", Accessor: "id", Width: 12},
			{Header: "Name", Accessor: "name", Width: 22},
			{Header: "Category", Accessor: "category", Width: 13},
			{Header: "Price", Accessor: "price", Width: 10},
			{Header: "Stock", Accessor: "stock", Width: 7, Cell: stockCell},
			{Header: "Status", Accessor: "status", Width: 15, Cell: statusCell(e)},
		}
	case model.EntityUsers:
		return []Column{
			{Header: "User ID", Accessor: "id", Width: 10},
			{Header: "Name", Accessor: "name", Width: 18},
			{Header: "Email", Accessor: "email", Width: 24},
			{Header: "Join Date", Accessor: "joinDate", Width: 12},
			{Header: "Orders", Accessor: "orders", Width: 8},
			{Header: "Status", Accessor: "status", Width: 12, Cell: statusCell(e)},
		}
	}
	return nil
}
