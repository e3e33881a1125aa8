package tracking

import (
	"strings"
	"unicode/utf8"

	"github.com/jmehdipour/email-tracker/internal/model"
)

// MaxCustomerIDLength matches the customer_id column width.
const MaxCustomerIDLength = 191

const (
	msgCustomerRequired = "customer_id is required"
	msgCustomerTooLong  = "customer_id is too long"
	msgTenantRequired   = "tenant_id is required"
	msgUnknownTenant    = "unknown tenant"
)

// Validator checks identifying fields against the configured tenant allowlist.
type Validator struct {
	tenants model.TenantSet
}

func NewValidator(tenants model.TenantSet) *Validator {
	return &Validator{tenants: tenants}
}

func (v *Validator) Tenants() model.TenantSet { return v.tenants }

// Validate normalizes the raw fields and returns the pair to record.
// Every failing field is listed in the error details; the message is the first failure.
func (v *Validator) Validate(customerID, tenantID string) (model.Pair, error) {
	customerID = strings.TrimSpace(customerID)
	tenantID = strings.TrimSpace(tenantID)

	var (
		first   string
		details = map[string]string{}
	)
	fail := func(field, msg, detail string) {
		if first == "" {
			first = msg
		}
		details[field] = detail
	}

	switch {
	case customerID == "":
		fail("customer_id", msgCustomerRequired, msgCustomerRequired)
	case utf8.RuneCountInString(customerID) > MaxCustomerIDLength:
		fail("customer_id", msgCustomerTooLong, msgCustomerTooLong)
	}

	switch {
	case tenantID == "":
		fail("tenant_id", msgTenantRequired, msgTenantRequired)
	case !v.tenants.Contains(tenantID):
		fail("tenant_id", msgUnknownTenant, msgUnknownTenant+": "+tenantID)
	}

	if first != "" {
		return model.Pair{}, InvalidInput(first, details)
	}
	return model.Pair{CustomerID: customerID, TenantID: tenantID}, nil
}
