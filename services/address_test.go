package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-api/models"
)

func strPtr(s string) *string { return &s }

func TestBuildAddressSnapshotPrefersRequestFields(t *testing.T) {
	user := &models.User{
		AddressLine1: strPtr("12 Profile St"),
		City:         strPtr("Profile City"),
		Country:      strPtr("IN"),
	}
	req := &models.CreateOrderRequest{
		City:  "Request City",
		Phone: "9999999999",
	}

	snap := BuildAddressSnapshot(user, req)

	require.NotNil(t, snap.City)
	assert.Equal(t, "Request City", *snap.City)

	// Fields absent from the request fall back to the profile independently.
	require.NotNil(t, snap.AddressLine1)
	assert.Equal(t, "12 Profile St", *snap.AddressLine1)
	require.NotNil(t, snap.Country)
	assert.Equal(t, "IN", *snap.Country)

	require.NotNil(t, snap.Phone)
	assert.Equal(t, "9999999999", *snap.Phone)
}

func TestBuildAddressSnapshotNullWhenBothAbsent(t *testing.T) {
	snap := BuildAddressSnapshot(&models.User{}, &models.CreateOrderRequest{})

	assert.Nil(t, snap.AddressLine1)
	assert.Nil(t, snap.AddressLine2)
	assert.Nil(t, snap.City)
	assert.Nil(t, snap.State)
	assert.Nil(t, snap.PostalCode)
	assert.Nil(t, snap.Country)
	assert.Nil(t, snap.Phone)
}

func TestBuildAddressSnapshotIgnoresWhitespaceRequestValues(t *testing.T) {
	user := &models.User{State: strPtr("KA")}
	req := &models.CreateOrderRequest{State: "   "}

	snap := BuildAddressSnapshot(user, req)

	require.NotNil(t, snap.State)
	assert.Equal(t, "KA", *snap.State)
}
