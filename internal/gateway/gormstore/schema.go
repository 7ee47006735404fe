package gormstore

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/solviatours/backoffice/internal/gateway"
)

// Server-side row shapes. JSON tags are the wire keys (snake_case column
// names); association fields exist only so AutoMigrate emits the foreign
// key constraints and are excluded from wire rows.

type Destination struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null;index" json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Currency    string         `json:"currency"`
	PriceAdults float64        `json:"price_adults"`
	Category    string         `json:"category"`
	AirportCode string         `json:"airport_code"`
	ImageURL    string         `json:"image_url"`
	Includes    datatypes.JSON `json:"includes"`
	Premium     bool           `json:"premium"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`

	Images     []DestinationImage `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE" json:"-"`
	Excursions []Excursion        `gorm:"foreignKey:DestinationID;constraint:OnDelete:SET NULL" json:"-"`
	Sales      []Sale             `gorm:"foreignKey:DestinationID;constraint:OnDelete:RESTRICT" json:"-"`
}

type DestinationImage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	DestinationID uint   `gorm:"not null;index" json:"destination_id"`
	URL           string `gorm:"not null" json:"url"`
	DisplayOrder  int    `json:"display_order"`
}

type Excursion struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	DestinationID    *uint   `gorm:"index" json:"destination_id"`
	DestinationTitle string  `json:"destination_title"`
	Name             string  `gorm:"not null" json:"name"`
	Description      string  `json:"description"`
	AdultPrice       float64 `json:"adult_price"`
	ChildPrice       float64 `json:"child_price"`
	ImageURL         string  `json:"image_url"`
	Active           bool    `json:"active"`
}

type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Surname     string    `json:"surname"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	BookingDate string    `json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`

	Identity *ClientIdentity `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Sales    []Sale          `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"-"`
}

type ClientIdentity struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ClientID       uint   `gorm:"not null;uniqueIndex" json:"client_id"`
	PassportNumber string `json:"passport_number"`
	BirthDate      string `json:"birth_date"`
	Nationality    string `json:"nationality"`
}

type Sale struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	VoucherCode     string         `gorm:"uniqueIndex" json:"voucher_code"`
	DestinationID   *uint          `gorm:"index" json:"destination_id"`
	DestinationName string         `json:"destination_name"`
	ClientID        *uint          `gorm:"index" json:"client_id"`
	ClientName      string         `json:"client_name"`
	AssignedTo      *uint          `gorm:"index" json:"assigned_to"`
	Status          string         `gorm:"not null" json:"status"`
	NumAdults       int            `json:"num_adults"`
	NumChildren     int            `json:"num_children"`
	TotalAmount     float64        `json:"total_amount"`
	AmountPaid      float64        `json:"amount_paid"`
	Currency        string         `json:"currency"`
	TravelDate      string         `json:"travel_date"`
	ReturnDate      string         `json:"return_date"`
	BookingDate     string         `json:"booking_date"`
	EmissionDate    string         `json:"emission_date"`
	HotelInfo       datatypes.JSON `json:"hotel_info"`
	CustomItinerary datatypes.JSON `json:"custom_itinerary"`
	CustomIncludes  datatypes.JSON `json:"custom_includes"`
	PreparedBy      string         `json:"prepared_by"`
	CreatedAt       time.Time      `json:"created_at"`
}

type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"index" json:"email"`
	Role      string    `gorm:"not null" json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`

	Sales []Sale `gorm:"foreignKey:AssignedTo;constraint:OnDelete:RESTRICT" json:"-"`
}

type AuthUser struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"password_hash"`

	Profile *Profile `gorm:"foreignKey:ID;references:ID" json:"-"`
}

// AutoMigrate creates or updates all back-office tables. Order matters:
// referenced tables first so constraints can be emitted.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range []any{
		&AuthUser{}, &Profile{}, &Destination{}, &DestinationImage{},
		&Excursion{}, &Client{}, &ClientIdentity{}, &Sale{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// newEntity returns a pointer to the schema struct for a table.
func newEntity(t gateway.Table) (any, error) {
	switch t {
	case gateway.TableDestinations:
		return &Destination{}, nil
	case gateway.TableDestinationImages:
		return &DestinationImage{}, nil
	case gateway.TableExcursions:
		return &Excursion{}, nil
	case gateway.TableClients:
		return &Client{}, nil
	case gateway.TableClientIdentities:
		return &ClientIdentity{}, nil
	case gateway.TableSales:
		return &Sale{}, nil
	case gateway.TableProfiles:
		return &Profile{}, nil
	case gateway.TableAuthUsers:
		return &AuthUser{}, nil
	}
	return nil, fmt.Errorf("unknown table %q", t)
}

// newSlice returns a pointer to a slice of the schema struct for a table.
func newSlice(t gateway.Table) (any, error) {
	switch t {
	case gateway.TableDestinations:
		return &[]Destination{}, nil
	case gateway.TableDestinationImages:
		return &[]DestinationImage{}, nil
	case gateway.TableExcursions:
		return &[]Excursion{}, nil
	case gateway.TableClients:
		return &[]Client{}, nil
	case gateway.TableClientIdentities:
		return &[]ClientIdentity{}, nil
	case gateway.TableSales:
		return &[]Sale{}, nil
	case gateway.TableProfiles:
		return &[]Profile{}, nil
	case gateway.TableAuthUsers:
		return &[]AuthUser{}, nil
	}
	return nil, fmt.Errorf("unknown table %q", t)
}
