package domain

import "strings"

// TenantID is the company scope every balance-bearing record belongs to.
type TenantID string

// Validate rejects an empty tenant.
func (t TenantID) Validate() error {
	if strings.TrimSpace(string(t)) == "" {
		return ErrMissingCompany
	}
	return nil
}

func (t TenantID) String() string {
	return string(t)
}
