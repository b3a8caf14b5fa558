// Package email delivers one-time passcodes to users. Delivery is
// best-effort: callers log failures and never fail the request on them.
package email

import "context"

// Sender delivers a one-time passcode to an address.
type Sender interface {
	SendOTP(ctx context.Context, to, code string) error
}

// NopSender discards everything. Used in dev and tests when no SMTP
// server is configured.
type NopSender struct{}

func (NopSender) SendOTP(context.Context, string, string) error { return nil }
