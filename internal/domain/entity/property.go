package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// Property represents an operating hotel/resort site. Operators are members;
// all revenue data is scoped to a property.
type Property struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Slug      string           `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  PropertySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Owner   User                 `gorm:"foreignKey:OwnerID" json:"-"`
	Members []PropertyMembership `gorm:"foreignKey:PropertyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new property
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// PropertyMembership represents an operator's membership in a property
type PropertyMembership struct {
	PropertyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"property_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role       string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (pm *PropertyMembership) PopulateUserDetails() {
	if pm.User.ID != uuid.Nil {
		pm.MemberUser = &MemberUser{
			ID:        pm.User.ID,
			FirstName: pm.User.FirstName,
			LastName:  pm.User.LastName,
			Email:     pm.User.Email,
		}
	}
}

// TableName returns the table name for the PropertyMembership model
func (PropertyMembership) TableName() string {
	return "property_memberships"
}

// PropertySettings holds property-wide billing configuration. Calculation
// sites never read it live from a shared object: the settings service hands
// out a snapshot captured at the moment of calculation so an admin edit
// cannot drift a cart that is already open.
type PropertySettings struct {
	PricingMode enum.PricingMode `json:"pricing_mode"`
	Currency    string           `json:"currency,omitempty"`
	Timezone    string           `json:"timezone,omitempty"`
	DateFormat  string           `json:"date_format,omitempty"`

	// Receipt header/footer
	ReceiptName    string `json:"receipt_name,omitempty"`
	ReceiptAddress string `json:"receipt_address,omitempty"`
	ReceiptPhone   string `json:"receipt_phone,omitempty"`
	ReceiptTaxID   string `json:"receipt_tax_id,omitempty"`
	ReceiptFooter  string `json:"receipt_footer,omitempty"`

	// Numbering
	POSPrefix      string `json:"pos_prefix,omitempty"`
	FolioPrefix    string `json:"folio_prefix,omitempty"`
	ProformaPrefix string `json:"proforma_prefix,omitempty"`
}

// Scan implements the sql.Scanner interface for PropertySettings
func (ps *PropertySettings) Scan(value interface{}) error {
	if value == nil {
		*ps = PropertySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PropertySettings: unsupported type")
	}

	return json.Unmarshal(bytes, ps)
}

// Value implements the driver.Valuer interface for PropertySettings
func (ps PropertySettings) Value() (driver.Value, error) {
	return json.Marshal(ps)
}

// DefaultPropertySettings returns default settings for new properties
func DefaultPropertySettings() PropertySettings {
	return PropertySettings{
		PricingMode:    enum.PricingModeInclusive,
		Currency:       "NGN",
		Timezone:       "Africa/Lagos",
		DateFormat:     "DD/MM/YYYY",
		POSPrefix:      "POS-",
		FolioPrefix:    "FOL-",
		ProformaPrefix: "PRO-",
		ReceiptFooter:  "Thank you for staying with us!",
	}
}
