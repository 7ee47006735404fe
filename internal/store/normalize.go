package store

import (
	"sort"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// Normalization: backend rows (snake_case, split across tables) become the
// UI-facing records the collections hold. The inverse helpers build wire
// rows for writes.

func normalizeImage(r gateway.Row) models.DestinationImage {
	return models.DestinationImage{
		ID:            gateway.Uint(r, "id"),
		DestinationID: gateway.Uint(r, "destination_id"),
		URL:           gateway.Str(r, "url"),
		DisplayOrder:  gateway.Int(r, "display_order"),
	}
}

// normalizeDestination attaches the grouped image list; images is always
// published non-nil, ordered by display order.
func normalizeDestination(r gateway.Row, images []models.DestinationImage) models.Destination {
	d := models.Destination{
		ID:          gateway.Uint(r, "id"),
		Title:       gateway.Str(r, "title"),
		Subtitle:    gateway.Str(r, "subtitle"),
		Description: gateway.Str(r, "description"),
		Currency:    gateway.Str(r, "currency"),
		PriceAdult:  gateway.Float(r, "price_adults"),
		Category:    gateway.Str(r, "category"),
		AirportCode: gateway.Str(r, "airport_code"),
		ImageURL:    gateway.Str(r, "image_url"),
		Premium:     gateway.Bool(r, "premium"),
		Active:      gateway.Bool(r, "active"),
		CreatedAt:   gateway.Time(r, "created_at"),
	}
	gateway.JSONInto(r, "includes", &d.Includes)
	if d.Includes == nil {
		d.Includes = []string{}
	}
	if images == nil {
		images = []models.DestinationImage{}
	}
	sort.SliceStable(images, func(i, j int) bool { return images[i].DisplayOrder < images[j].DisplayOrder })
	d.Images = images
	return d
}

func destinationRow(d models.Destination) gateway.Row {
	includes := d.Includes
	if includes == nil {
		includes = []string{}
	}
	return gateway.Row{
		"title":        d.Title,
		"subtitle":     d.Subtitle,
		"description":  d.Description,
		"currency":     d.Currency,
		"price_adults": d.PriceAdult,
		"category":     d.Category,
		"airport_code": d.AirportCode,
		"image_url":    d.ImageURL,
		"includes":     includes,
		"premium":      d.Premium,
		"active":       d.Active,
	}
}

func normalizeExcursion(r gateway.Row) models.Excursion {
	return models.Excursion{
		ID:               gateway.Uint(r, "id"),
		DestinationID:    gateway.UintPtr(r, "destination_id"),
		DestinationTitle: gateway.Str(r, "destination_title"),
		Name:             gateway.Str(r, "name"),
		Description:      gateway.Str(r, "description"),
		PriceAdult:       gateway.Float(r, "adult_price"),
		PriceChild:       gateway.Float(r, "child_price"),
		ImageURL:         gateway.Str(r, "image_url"),
		Active:           gateway.Bool(r, "active"),
	}
}

func excursionRow(e models.Excursion) gateway.Row {
	row := gateway.Row{
		"destination_title": e.DestinationTitle,
		"name":              e.Name,
		"description":       e.Description,
		"adult_price":       e.PriceAdult,
		"child_price":       e.PriceChild,
		"image_url":         e.ImageURL,
		"active":            e.Active,
	}
	if e.DestinationID != nil {
		row["destination_id"] = *e.DestinationID
	}
	return row
}

func normalizeIdentity(r gateway.Row) *models.ClientIdentity {
	return &models.ClientIdentity{
		PassportNumber: gateway.Str(r, "passport_number"),
		BirthDate:      gateway.Str(r, "birth_date"),
		Nationality:    gateway.Str(r, "nationality"),
	}
}

// normalizeClient merges the optional identity extension onto the client.
func normalizeClient(r gateway.Row, identity *models.ClientIdentity) models.Client {
	return models.Client{
		ID:          gateway.Uint(r, "id"),
		Name:        gateway.Str(r, "name"),
		Surname:     gateway.Str(r, "surname"),
		Phone:       gateway.Str(r, "phone"),
		Email:       gateway.Str(r, "email"),
		Address:     gateway.Str(r, "address"),
		Notes:       gateway.Str(r, "notes"),
		BookingDate: gateway.Str(r, "booking_date"),
		CreatedAt:   gateway.Time(r, "created_at"),
		Identity:    identity,
	}
}

func clientRow(c models.Client) gateway.Row {
	return gateway.Row{
		"name":         c.Name,
		"surname":      c.Surname,
		"phone":        c.Phone,
		"email":        c.Email,
		"address":      c.Address,
		"notes":        c.Notes,
		"booking_date": c.BookingDate,
	}
}

func identityRow(clientID uint, id models.ClientIdentity) gateway.Row {
	return gateway.Row{
		"client_id":       clientID,
		"passport_number": id.PassportNumber,
		"birth_date":      id.BirthDate,
		"nationality":     id.Nationality,
	}
}

func normalizeSale(r gateway.Row) models.Sale {
	s := models.Sale{
		ID:              gateway.Uint(r, "id"),
		VoucherCode:     gateway.Str(r, "voucher_code"),
		DestinationID:   gateway.UintPtr(r, "destination_id"),
		DestinationName: gateway.Str(r, "destination_name"),
		ClientID:        gateway.UintPtr(r, "client_id"),
		ClientName:      gateway.Str(r, "client_name"),
		AssignedTo:      gateway.Uint(r, "assigned_to"),
		Status:          models.DisplayStatus(gateway.Str(r, "status")),
		NumAdults:       gateway.Int(r, "num_adults"),
		NumChildren:     gateway.Int(r, "num_children"),
		TotalAmount:     gateway.Float(r, "total_amount"),
		AmountPaid:      gateway.Float(r, "amount_paid"),
		Currency:        gateway.Str(r, "currency"),
		TravelDate:      gateway.Str(r, "travel_date"),
		ReturnDate:      gateway.Str(r, "return_date"),
		BookingDate:     gateway.Str(r, "booking_date"),
		EmissionDate:    gateway.Str(r, "emission_date"),
		PreparedBy:      gateway.Str(r, "prepared_by"),
		CreatedAt:       gateway.Time(r, "created_at"),
	}
	var hotel models.HotelInfo
	if _, present := r["hotel_info"]; present && r["hotel_info"] != nil {
		gateway.JSONInto(r, "hotel_info", &hotel)
		s.Hotel = &hotel
	}
	gateway.JSONInto(r, "custom_itinerary", &s.CustomItinerary)
	if s.CustomItinerary == nil {
		s.CustomItinerary = []models.ItineraryItem{}
	}
	gateway.JSONInto(r, "custom_includes", &s.CustomIncludes)
	if s.CustomIncludes == nil {
		s.CustomIncludes = []string{}
	}
	return s
}

func saleRow(sale models.Sale) gateway.Row {
	itinerary := sale.CustomItinerary
	if itinerary == nil {
		itinerary = []models.ItineraryItem{}
	}
	includes := sale.CustomIncludes
	if includes == nil {
		includes = []string{}
	}
	row := gateway.Row{
		"voucher_code":     sale.VoucherCode,
		"destination_name": sale.DestinationName,
		"client_name":      sale.ClientName,
		"status":           models.WireStatus(sale.Status),
		"num_adults":       sale.NumAdults,
		"num_children":     sale.NumChildren,
		"total_amount":     sale.TotalAmount,
		"amount_paid":      sale.AmountPaid,
		"currency":         sale.Currency,
		"travel_date":      sale.TravelDate,
		"return_date":      sale.ReturnDate,
		"booking_date":     sale.BookingDate,
		"emission_date":    sale.EmissionDate,
		"custom_itinerary": itinerary,
		"custom_includes":  includes,
		"prepared_by":      sale.PreparedBy,
	}
	if sale.DestinationID != nil {
		row["destination_id"] = *sale.DestinationID
	}
	if sale.ClientID != nil {
		row["client_id"] = *sale.ClientID
	}
	if sale.AssignedTo != 0 {
		row["assigned_to"] = sale.AssignedTo
	}
	if sale.Hotel != nil {
		row["hotel_info"] = sale.Hotel
	}
	return row
}

func normalizeProfile(r gateway.Row) models.Profile {
	role := access.Role(gateway.Str(r, "role"))
	return models.Profile{
		ID:        gateway.Uint(r, "id"),
		FirstName: gateway.Str(r, "first_name"),
		LastName:  gateway.Str(r, "last_name"),
		Email:     gateway.Str(r, "email"),
		Role:      role,
		RoleLabel: access.Label(role),
		Active:    gateway.Bool(r, "active"),
		CreatedAt: gateway.Time(r, "created_at"),
	}
}

func profileRow(p models.Profile) gateway.Row {
	return gateway.Row{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"role":       string(p.Role),
		"active":     p.Active,
	}
}
