package entity

// Report identifies one of the fixed read-only reports.
type Report int

const (
	ReportOutOfStock Report = iota + 1
	ReportOrdersPerCustomer
	ReportMostExpensivePerOrder
	ReportNeverOrdered
	ReportRevenuePerSupplier
)

// Reports lists every report in menu order.
var Reports = []Report{
	ReportOutOfStock,
	ReportOrdersPerCustomer,
	ReportMostExpensivePerOrder,
	ReportNeverOrdered,
	ReportRevenuePerSupplier,
}

func (r Report) String() string {
	switch r {
	case ReportOutOfStock:
		return "out_of_stock_products"
	case ReportOrdersPerCustomer:
		return "orders_per_customer"
	case ReportMostExpensivePerOrder:
		return "most_expensive_product_per_order"
	case ReportNeverOrdered:
		return "never_ordered_products"
	case ReportRevenuePerSupplier:
		return "revenue_per_supplier"
	default:
		return "unknown"
	}
}

// Title is the menu caption of the report.
func (r Report) Title() string {
	switch r {
	case ReportOutOfStock:
		return "List all products that are out of stock."
	case ReportOrdersPerCustomer:
		return "Find the total number of orders placed by each customer."
	case ReportMostExpensivePerOrder:
		return "Display the details of the most expensive product ordered in each order."
	case ReportNeverOrdered:
		return "Retrieve a list of products that have never been ordered."
	case ReportRevenuePerSupplier:
		return "Show the total revenue generated by each supplier."
	default:
		return ""
	}
}

// ResultSet holds column names and positionally aligned row values.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func (r *ResultSet) Empty() bool {
	return r == nil || len(r.Rows) == 0
}
