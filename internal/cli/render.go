package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/catalog"
	"github.com/xenking/blossom-storefront/internal/domain/checkout"
)

func price(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderProducts(w io.Writer, products []catalog.Product) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		stock := fmt.Sprintf("%d", p.CountInStock)
		if !p.InStock() {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, price(p.Price), stock)
	}
	tw.Flush()
}

func renderCart(w io.Writer, items []cart.LineItem) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL")
	for _, li := range items {
		lineTotal := li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", li.ID, li.Name, li.Quantity, price(li.Price), price(lineTotal))
	}
	tw.Flush()
}

func renderQuote(w io.Writer, q checkout.Quote) {
	fmt.Fprintf(w, "Items:    %s\n", price(q.ItemsPrice))
	if q.FreeShipping() {
		fmt.Fprintf(w, "Shipping: free\n")
	} else {
		fmt.Fprintf(w, "Shipping: %s\n", price(q.ShippingPrice))
	}
	fmt.Fprintf(w, "Total:    %s\n", price(q.TotalPrice))
}

func renderOrders(w io.Writer, orders []api.Order) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tITEMS\tTOTAL\tSTATUS")
	for _, o := range orders {
		date := ""
		if !o.CreatedAt.IsZero() {
			date = o.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", o.ID, date, len(o.OrderItems), price(o.TotalPrice), o.Status)
	}
	tw.Flush()
}

func renderOrder(w io.Writer, o *api.Order) {
	fmt.Fprintf(w, "Order %s\n", o.ID)
	fmt.Fprintf(w, "Status:  %s\n", o.Status)
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Placed:  %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	}
	if o.User != nil {
		fmt.Fprintf(w, "Buyer:   %s <%s>\n", o.User.Name, o.User.Email)
	}
	fmt.Fprintf(w, "Ship to: %s, %s, %s %s, %s (%s)\n",
		o.ShippingAddress.Address, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country, o.ShippingAddress.Phone)
	fmt.Fprintf(w, "Payment: %s\n\n", o.PaymentMethod)

	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE")
	for _, it := range o.OrderItems {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.Product, it.Name, it.Quantity, price(it.Price))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nItems:    %s\n", price(o.ItemsPrice))
	fmt.Fprintf(w, "Shipping: %s\n", price(o.ShippingPrice))
	fmt.Fprintf(w, "Total:    %s\n", price(o.TotalPrice))
}
