package services

import (
	"strings"

	"ecommerce-api/models"
)

// BuildAddressSnapshot merges the request body over the stored profile,
// field by field: a value present in the request wins, otherwise the
// profile value is used, otherwise the field stays null. The result is
// embedded into the order at creation and never written back to the user.
func BuildAddressSnapshot(user *models.User, req *models.CreateOrderRequest) models.AddressSnapshot {
	return models.AddressSnapshot{
		AddressLine1: pick(req.AddressLine1, user.AddressLine1),
		AddressLine2: pick(req.AddressLine2, user.AddressLine2),
		City:         pick(req.City, user.City),
		State:        pick(req.State, user.State),
		PostalCode:   pick(req.PostalCode, user.PostalCode),
		Country:      pick(req.Country, user.Country),
		Phone:        pick(req.Phone, user.Phone),
	}
}

func pick(fromRequest string, fromProfile *string) *string {
	if v := strings.TrimSpace(fromRequest); v != "" {
		return &v
	}
	return fromProfile
}
