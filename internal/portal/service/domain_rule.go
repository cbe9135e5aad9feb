package service

import (
	"strings"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

// ValidateInviteDomain is the one place invite targets are checked against
// hub and inviter domains.
//
// Staff may invite addresses on the hub's client domain, or on staffDomain
// for internal reviewers. Clients may only invite colleagues on their own
// domain, and that domain must be the hub's client domain.
func ValidateInviteDomain(hub domain.Hub, inviter domain.Principal, email, staffDomain string) error {
	target := domain.EmailDomain(strings.ToLower(strings.TrimSpace(email)))
	if target == "" {
		return invalidField("email", "must be an email address")
	}
	clientDomain := strings.ToLower(hub.ClientDomain)
	staffDomain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(staffDomain), "@"))

	if inviter.IsStaff() {
		if target == clientDomain || (staffDomain != "" && target == staffDomain) {
			return nil
		}
		return ErrDomainNotAllowed
	}

	if target != inviter.Domain || inviter.Domain != clientDomain {
		return ErrDomainNotAllowed
	}
	return nil
}
