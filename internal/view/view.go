// Package view renders the printable HTML documents: today only the
// sale voucher. Templates are embedded so the binary stays self-contained.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/solviatours/backoffice/internal/i18n"
	"github.com/solviatours/backoffice/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs returns the shared template helpers: i18n lookup, price math,
// and date formatting.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		"mul":  func(a float64, n int) float64 { return a * float64(n) },
		"money": func(amount float64, currency string) string {
			if currency == "" {
				currency = "USD"
			}
			return fmt.Sprintf("%.2f %s", amount, currency)
		},
	}
}

// VoucherData is the model handed to the voucher template.
type VoucherData struct {
	Details    *models.SaleDetails
	ClientName string
	Passport   string
	ShowPrice  bool
}

// RenderVoucher writes the printable voucher for a sale. Client-override
// fields from the hotel blob take precedence over the linked client
// record, matching what the sales desk prints for walk-ins.
func RenderVoucher(w io.Writer, lang string, d *models.SaleDetails) error {
	data := VoucherData{
		Details:    d,
		ClientName: d.Sale.ClientName,
		ShowPrice:  true,
	}
	if h := d.Sale.Hotel; h != nil {
		data.ShowPrice = h.ShowPriceOnVoucher
		if o := h.ClientOverride; o != nil {
			if o.Name != "" {
				data.ClientName = o.Name
			}
			data.Passport = o.Passport
		}
	}
	t, err := template.New("voucher.html").Funcs(Funcs(lang)).ParseFS(templateFS, "templates/voucher.html")
	if err != nil {
		return fmt.Errorf("parse voucher template: %w", err)
	}
	return t.Execute(w, data)
}
