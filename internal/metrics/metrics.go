// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OTPIssued counts issued one-time passcodes by purpose.
	OTPIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signet_otp_issued_total",
		Help: "One-time passcodes issued, by purpose.",
	}, []string{"purpose"})

	// OTPVerified counts successful OTP verifications.
	OTPVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signet_otp_verified_total",
		Help: "Successful OTP verifications.",
	})

	// AccountsCreated counts new user records by origin (local or a
	// third-party provider).
	AccountsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signet_accounts_created_total",
		Help: "User accounts created, by origin.",
	}, []string{"origin"})

	// Logins counts successful authentications by method.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signet_logins_total",
		Help: "Successful logins, by method.",
	}, []string{"method"})

	// EmailSendFailures counts absorbed notification failures.
	EmailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signet_email_send_failures_total",
		Help: "OTP email deliveries that failed and were absorbed.",
	})
)
