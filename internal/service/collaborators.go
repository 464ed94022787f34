package service

import "context"

// MembershipStatus is the verdict of the external membership collaborator.
type MembershipStatus int

const (
	MembershipUnknown MembershipStatus = iota
	MembershipMember
	MembershipNotMember
)

// MembershipClient answers whether an external identity is currently a
// member of the required channel.
type MembershipClient interface {
	CheckMembership(ctx context.Context, externalID int64) (MembershipStatus, error)
}

// Transport delivers an outbound message to a single recipient.
type Transport interface {
	Deliver(ctx context.Context, recipientID int64, message string) error
}
