package kernel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Latitude and longitude bounds in degrees.
const (
	LatitudeMin  float64 = -90
	LatitudeMax  float64 = 90
	LongitudeMin float64 = -180
	LongitudeMax float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// GeoPoint is an immutable value object holding a latitude/longitude pair in
// degrees. Coordinates are validated at construction; the zero value is
// invalid and fails Validate.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(55.75, 37.61)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint, validating that latitude is within
// [LatitudeMin, LatitudeMax] and longitude within [LongitudeMin, LongitudeMax].
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.lat, p.lng)
}

// IsEqual compares two geo points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceTo calculates the Euclidean distance between two points treating raw
// degrees as planar coordinates. There is no great-circle correction: this is
// a deliberately approximate metric used only to rank courier candidates, not
// to estimate real road distance. Both points must be properly constructed.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := p.lat - other.lat
	dLng := p.lng - other.lng
	return math.Sqrt(dLat*dLat + dLng*dLng), nil
}

// geoPointJSON is the wire form of GeoPoint for events and DTOs.
type geoPointJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MarshalJSON implements json.Marshaler so geo points can travel in domain events.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoPointJSON{Lat: p.lat, Lng: p.lng})
}

// UnmarshalJSON implements json.Unmarshaler, re-validating coordinates.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoPointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	point, err := NewGeoPoint(raw.Lat, raw.Lng)
	if err != nil {
		return err
	}

	*p = point
	return nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	p.lng = lng
	return nil
}

// Address is an immutable value object combining a geo point with a postal
// address. Deliveries use it for both pickup (restaurant) and drop-off
// (customer) locations.
type Address struct { //nolint:recvcheck //using for validation
	location GeoPoint
	street   string
	city     string
	country  string
	guard    guard.ConstructorGuard
}

// NewAddress creates an Address. The location must be a constructed GeoPoint
// and street must be non-empty; city and country are free-form.
func NewAddress(location GeoPoint, street string, city string, country string) (Address, error) {
	if err := location.Validate(); err != nil {
		return Address{}, err
	}
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}

	return Address{
		location: location,
		street:   street,
		city:     city,
		country:  country,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Location returns the geo point of the address.
func (a Address) Location() GeoPoint {
	return a.location
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Country returns the country of the address.
func (a Address) Country() string {
	return a.country
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("Address(%s, %s, %s)", a.street, a.city, a.country)
}

type addressJSON struct {
	Location GeoPoint `json:"location"`
	Street   string   `json:"street"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
}

// MarshalJSON implements json.Marshaler so addresses can travel in domain events.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Location: a.location,
		Street:   a.street,
		City:     a.city,
		Country:  a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler, re-validating the address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	address, err := NewAddress(raw.Location, raw.Street, raw.City, raw.Country)
	if err != nil {
		return err
	}

	*a = address
	return nil
}
