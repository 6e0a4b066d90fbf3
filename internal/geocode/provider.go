package geocode

import (
	"context"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// ResolvedAddress is the result of resolving free-form address text: the
// coordinate the search pipeline centers on, plus the normalized address
// fields used for display and export.
type ResolvedAddress struct {
	Coordinates      models.Coordinates // Coordinates of the resolved address.
	FormattedAddress string             // FormattedAddress is the normalized full address.
	City             string             // City (locality), may be empty.
	State            string             // State (short form), may be empty.
	Zip              string             // Zip (postal code), may be empty.
	Country          string             // Country (short form), may be empty.
}

// Provider is an interface that defines a method for resolving free-form
// address text. The Resolve method takes a context and an address string
// as input, and returns the resolved address and an error if any occurs.
type Provider interface {
	Resolve(ctx context.Context, address string) (*ResolvedAddress, error)
}
