package contacts

import (
	"errors"
	"fmt"
	"strings"
)

// Platform identifies the delivery channel for a contact.
type Platform string

const (
	PlatformEmail   Platform = "email"
	PlatformNetwork Platform = "network"
)

// Contact is one outreach recipient. Exactly one delivery-address field is
// populated, matching the platform.
type Contact struct {
	Name          string
	Email         string
	Platform      Platform
	NetworkHandle string
}

// Validate checks the contact shape: a known platform and the address field
// that platform requires, with the other address field empty.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("contact name is required")
	}
	switch c.Platform {
	case PlatformEmail:
		if strings.TrimSpace(c.Email) == "" {
			return errors.New("email platform requires an email address")
		}
		if c.NetworkHandle != "" {
			return errors.New("email contact must not carry a network handle")
		}
	case PlatformNetwork:
		if strings.TrimSpace(c.NetworkHandle) == "" {
			return errors.New("network platform requires a network handle")
		}
		if c.Email != "" {
			return errors.New("network contact must not carry an email address")
		}
	default:
		return fmt.Errorf("unknown platform %q", string(c.Platform))
	}
	return nil
}

// Record returns the contact as a CSV row in source column order.
func (c Contact) Record() []string {
	return []string{c.Name, c.Email, string(c.Platform), c.NetworkHandle}
}

// FromRecord builds a contact from a name,email,platform,network_handle row.
// Short rows are padded; no validation beyond platform normalization.
func FromRecord(row []string) Contact {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return Contact{
		Name:          get(0),
		Email:         get(1),
		Platform:      NormalizePlatform(get(2)),
		NetworkHandle: get(3),
	}
}

// NormalizePlatform lowercases a platform value and maps the legacy
// service-specific names onto the channel enum.
func NormalizePlatform(value string) Platform {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "email", "gmail":
		return PlatformEmail
	case "network", "linkedin":
		return PlatformNetwork
	default:
		return Platform(strings.ToLower(strings.TrimSpace(value)))
	}
}
