package store

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/i18n"
	"github.com/solviatours/backoffice/internal/models"
)

const dateLayout = "2006-01-02"

// voucherCode derives the printable voucher reference: "VOU-" + a
// 3-letter uppercase prefix taken from the destination title ("GEN" when
// no title resolves) + the last 3 digits of the creation timestamp.
func voucherCode(title string, now time.Time) string {
	prefix := make([]rune, 0, 3)
	for _, r := range title {
		if unicode.IsLetter(r) {
			prefix = append(prefix, unicode.ToUpper(r))
			if len(prefix) == 3 {
				break
			}
		}
	}
	p := "GEN"
	if len(prefix) == 3 {
		p = string(prefix)
	}
	return fmt.Sprintf("VOU-%s-%03d", p, now.UnixMilli()%1000)
}

// AddSale creates a booking. Derived fields are stamped before the write:
// the voucher code, the destination-name snapshot, the acting user as
// assignee, today's booking and emission dates, and a total computed from
// the custom itinerary when none was supplied.
func (s *Store) AddSale(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	if sale.ClientName == "" && sale.ClientID == nil {
		return nil, s.failValidation(ctx, "add_sale", "validation_name")
	}

	if sale.DestinationID != nil && sale.DestinationName == "" {
		sale.DestinationName = s.destinationTitle(*sale.DestinationID)
	}
	if sale.ClientID != nil && sale.ClientName == "" {
		s.mu.RLock()
		for _, c := range s.clients {
			if c.ID == *sale.ClientID {
				sale.ClientName = c.FullName()
				break
			}
		}
		s.mu.RUnlock()
	}
	sale.VoucherCode = voucherCode(sale.DestinationName, s.now())
	if sale.Status == "" {
		sale.Status = models.StatusConfirmada
	}
	today := s.now().Format(dateLayout)
	if sale.BookingDate == "" {
		sale.BookingDate = today
	}
	if sale.EmissionDate == "" {
		sale.EmissionDate = today
	}
	if sale.AssignedTo == 0 {
		if uid, ok := auth.UserIDFromContext(ctx); ok {
			sale.AssignedTo = uid
		}
	}
	if sale.TotalAmount == 0 && len(sale.CustomItinerary) > 0 {
		sale.TotalAmount = sale.ItineraryTotal()
	}

	rows, err := s.gw.Insert(ctx, gateway.TableSales, []gateway.Row{saleRow(sale)})
	if err != nil {
		return nil, s.fail(ctx, "add_sale", "save_failed", err)
	}
	rec := normalizeSale(rows[0])

	s.mu.Lock()
	s.sales = insertFront(s.sales, rec, rec.ID, saleID)
	s.mu.Unlock()

	s.ok(ctx, "add_sale", "sale_created")
	return &rec, nil
}

// UpdateSale rewrites a booking. When the sale carries a custom itinerary
// the total is recomputed from it, so traveller-count edits reprice the
// sale instead of keeping a stale amount.
func (s *Store) UpdateSale(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	if len(sale.CustomItinerary) > 0 {
		sale.TotalAmount = sale.ItineraryTotal()
	}
	rows, err := s.gw.Update(ctx, gateway.TableSales, saleRow(sale), gateway.Filter{"id": sale.ID})
	if err != nil {
		return nil, s.fail(ctx, "update_sale", "save_failed", err)
	}
	if len(rows) == 0 {
		return nil, s.fail(ctx, "update_sale", "permission_denied", ErrPermissionDenied)
	}
	rec := normalizeSale(rows[0])

	s.mu.Lock()
	s.sales = replaceByID(s.sales, rec, rec.ID, saleID)
	s.mu.Unlock()

	s.ok(ctx, "update_sale", "sale_updated")
	return &rec, nil
}

// DeleteSale removes a booking.
func (s *Store) DeleteSale(ctx context.Context, id uint) error {
	rows, err := s.gw.Delete(ctx, gateway.TableSales, gateway.Filter{"id": id})
	if err != nil {
		return s.fail(ctx, "delete_sale", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_sale", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	s.sales = removeByID(s.sales, id, saleID)
	s.mu.Unlock()

	s.ok(ctx, "delete_sale", "sale_deleted")
	return nil
}

// GetSaleDetails joins a sale with its destination for the voucher and
// detail views. A sale whose destination was deleted gets a synthesized
// placeholder built from the snapshot name, so the views degrade instead
// of breaking.
func (s *Store) GetSaleDetails(ctx context.Context, id uint) (*models.SaleDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sale *models.Sale
	for i := range s.sales {
		if s.sales[i].ID == id {
			sale = &s.sales[i]
			break
		}
	}
	if sale == nil {
		return nil, fmt.Errorf("get_sale_details: %w", ErrNotFound)
	}

	if sale.DestinationID != nil {
		for _, d := range s.destinations {
			if d.ID == *sale.DestinationID {
				return &models.SaleDetails{Sale: *sale, Destination: d}, nil
			}
		}
	}
	marker := i18n.T(i18n.LangFromContext(ctx), "deleted_marker")
	placeholder := models.Destination{
		Title:    sale.DestinationName + " " + marker,
		Currency: sale.Currency,
		Includes: []string{},
		Images:   []models.DestinationImage{},
	}
	return &models.SaleDetails{Sale: *sale, Destination: placeholder}, nil
}
