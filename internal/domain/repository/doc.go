// Package repository holds the domain records (User, Identity, OTP) and
// the repository interfaces the store adapters implement.
package repository
