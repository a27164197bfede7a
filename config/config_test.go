package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "shop",
		DBPassword: "pw",
		DBHost:     "db.internal",
		DBPort:     "3306",
		DBName:     "ecommerce",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "shop:pw@tcp(db.internal:3306)/ecommerce")
	assert.Contains(t, dsn, "parseTime=true")
	// Matched rows, not changed rows: rewriting an order's current status
	// must not read as a missing order.
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestRazorpayConfigured(t *testing.T) {
	assert.False(t, (&Config{}).RazorpayConfigured())
	assert.False(t, (&Config{RazorpayKeyID: "rzp_test_key"}).RazorpayConfigured())
	assert.True(t, (&Config{RazorpayKeyID: "rzp_test_key", RazorpayKeySecret: "s"}).RazorpayConfigured())
}
