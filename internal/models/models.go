// Package models defines the normalized records published by the domain
// store. These are the UI-facing shapes: backend rows (snake_case, split
// across tables) are merged and renamed into these structs at read time.
package models

import (
	"strings"
	"time"

	"github.com/solviatours/backoffice/internal/access"
)

// DestinationImage is one gallery image of a destination.
type DestinationImage struct {
	ID            uint   `json:"id"`
	DestinationID uint   `json:"destinationId"`
	URL           string `json:"url"`
	DisplayOrder  int    `json:"displayOrder"`
}

// Destination is a sellable travel product.
// Images is always non-nil, ordered by DisplayOrder.
type Destination struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Description string             `json:"description"`
	Currency    string             `json:"currency"`
	PriceAdult  float64            `json:"priceAdult"`
	Category    string             `json:"category"`
	AirportCode string             `json:"airportCode"`
	ImageURL    string             `json:"imageUrl"`
	Includes    []string           `json:"includes"`
	Premium     bool               `json:"premium"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"createdAt"`
	Images      []DestinationImage `json:"images"`
}

// Excursion is a bookable activity tied to one destination. DestinationID
// is nil once the owning destination has been deleted; DestinationTitle is
// denormalized so the activity stays displayable afterwards.
type Excursion struct {
	ID               uint    `json:"id"`
	DestinationID    *uint   `json:"destinationId"`
	DestinationTitle string  `json:"destinationTitle"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	PriceAdult       float64 `json:"priceAdult"`
	PriceChild       float64 `json:"priceChild"`
	ImageURL         string  `json:"imageUrl"`
	Active           bool    `json:"active"`
}

// ClientIdentity is the optional passport extension of a client, stored in
// its own table and merged onto the client at read time.
type ClientIdentity struct {
	PassportNumber string `json:"passportNumber"`
	BirthDate      string `json:"birthDate"`
	Nationality    string `json:"nationality"`
}

// Client is a person the agency sells to.
type Client struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Surname     string          `json:"surname"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
	BookingDate string          `json:"bookingDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	Identity    *ClientIdentity `json:"identity,omitempty"`
}

// FullName joins name and surname for display and for the denormalized
// client_name snapshot on sales.
func (c Client) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.Surname)
}

// ClientOverride carries voucher-only overrides of client fields.
type ClientOverride struct {
	Name        string `json:"name"`
	Passport    string `json:"passport"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birthDate"`
}

// HotelInfo is the free-form hotel/reservation blob attached to a sale.
type HotelInfo struct {
	HotelName          string          `json:"hotelName"`
	HotelAddress       string          `json:"hotelAddress"`
	HotelPhone         string          `json:"hotelPhone"`
	Occupancy          string          `json:"occupancy"`
	ConfirmationID     string          `json:"confirmationId"`
	ShowPriceOnVoucher bool            `json:"showPriceOnVoucher"`
	ClientOverride     *ClientOverride `json:"clientOverride,omitempty"`
}

// ItineraryItem is one snapshotted line of a sale's custom itinerary,
// independent of the live excursion records.
type ItineraryItem struct {
	Day        int     `json:"day"`
	Name       string  `json:"name"`
	PriceAdult float64 `json:"priceAdult"`
	PriceChild float64 `json:"priceChild"`
}

// Sale statuses, canonical lowercase on the wire.
const (
	StatusConfirmada = "confirmada"
	StatusPendiente  = "pendiente"
	StatusCancelada  = "cancelada"
	StatusCompletada = "completada"
)

// DisplayStatus titlecases a wire status for the UI ("confirmada" →
// "Confirmada"). Unknown statuses pass through titlecased as well.
func DisplayStatus(wire string) string {
	s := strings.ToLower(strings.TrimSpace(wire))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WireStatus lowercases a status back to its canonical wire form.
func WireStatus(display string) string {
	return strings.ToLower(strings.TrimSpace(display))
}

// Sale is a booking with its printable voucher data. Dates are plain
// "2006-01-02" strings, matching how the forms capture them.
type Sale struct {
	ID              uint            `json:"id"`
	VoucherCode     string          `json:"voucherCode"`
	DestinationID   *uint           `json:"destinationId"`
	DestinationName string          `json:"destinationName"`
	ClientID        *uint           `json:"clientId"`
	ClientName      string          `json:"clientName"`
	AssignedTo      uint            `json:"assignedTo"`
	Status          string          `json:"status"` // display-cased in memory
	NumAdults       int             `json:"numAdults"`
	NumChildren     int             `json:"numChildren"`
	TotalAmount     float64         `json:"totalAmount"`
	AmountPaid      float64         `json:"amountPaid"`
	Currency        string          `json:"currency"`
	TravelDate      string          `json:"travelDate"`
	ReturnDate      string          `json:"returnDate"`
	BookingDate     string          `json:"bookingDate"`
	EmissionDate    string          `json:"emissionDate"`
	Hotel           *HotelInfo      `json:"hotel,omitempty"`
	CustomItinerary []ItineraryItem `json:"customItinerary"`
	CustomIncludes  []string        `json:"customIncludes"`
	PreparedBy      string          `json:"preparedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ItineraryTotal derives the sale total from its custom itinerary:
// Σ (priceAdult×adults + priceChild×children) over all items.
func (s Sale) ItineraryTotal() float64 {
	var total float64
	for _, it := range s.CustomItinerary {
		total += it.PriceAdult*float64(s.NumAdults) + it.PriceChild*float64(s.NumChildren)
	}
	return total
}

// Profile is a back-office user account.
type Profile struct {
	ID        uint        `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	RoleLabel string      `json:"roleLabel"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt"`
}

// FullName joins first and last name for display.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SessionUser is the session-facing merge of auth identity and profile.
type SessionUser struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        access.Role `json:"role"`
	RoleLabel   string      `json:"roleLabel"`
	Active      bool        `json:"active"`
}

// Stats is the read-only derived snapshot shown on the dashboard.
type Stats struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	ActiveDestinations int     `json:"activeDestinations"`
	TotalSales         int     `json:"totalSales"`
	UniqueClients      int     `json:"uniqueClients"`
}

// SaleDetails joins a sale with its destination for voucher rendering. The
// destination is synthesized when the live record no longer exists.
type SaleDetails struct {
	Sale        Sale        `json:"sale"`
	Destination Destination `json:"destination"`
}
