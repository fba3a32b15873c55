package domain

import "fmt"

// Role of a user within the office
type Role string

// User roles
const (
	RoleAdmin   Role = "admin"   // full access, user management
	RoleManager Role = "manager" // can see and send every bill
	RoleOfficer Role = "officer" // works own bills
	RoleStaff   Role = "staff"   // works own bills
	RoleViewer  Role = "viewer"  // read-only default
)

// ParseRole validates a role string from a request boundary
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleOfficer, RoleStaff, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ElectionType of the election a bill belongs to
type ElectionType string

// Election types
const (
	ByElection      ElectionType = "by-election"      // ballot re-run in a single district
	ProjectElection ElectionType = "project-election" // project-funded election
)

// ParseElectionType validates an election type string from a request boundary
func ParseElectionType(s string) (ElectionType, error) {
	switch ElectionType(s) {
	case ByElection, ProjectElection:
		return ElectionType(s), nil
	}
	return "", fmt.Errorf("unknown election type %q", s)
}

// DocumentStatus is shared by Bill, Document and Delivery:
// created -> sent -> {delivered, paid}; any -> cancelled.
// "paid" is never assigned by any service operation; it is recorded
// out of band by an administrative action.
type DocumentStatus string

// Lifecycle statuses
const (
	StatusCreated   DocumentStatus = "created"
	StatusSent      DocumentStatus = "sent"
	StatusDelivered DocumentStatus = "delivered"
	StatusPaid      DocumentStatus = "paid"
	StatusCancelled DocumentStatus = "cancelled"
)

// ParseDocumentStatus validates a status string from a request boundary
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusCreated, StatusSent, StatusDelivered, StatusPaid, StatusCancelled:
		return DocumentStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// DeliveryMethod is the channel a bill is transmitted over
type DeliveryMethod string

// Delivery methods
const (
	MethodEmail        DeliveryMethod = "email"
	MethodSMS          DeliveryMethod = "sms"
	MethodPost         DeliveryMethod = "post"
	MethodHandDelivery DeliveryMethod = "hand_delivery"
)

// ParseDeliveryMethod validates a delivery method string from a request boundary
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case MethodEmail, MethodSMS, MethodPost, MethodHandDelivery:
		return DeliveryMethod(s), nil
	}
	return "", fmt.Errorf("unknown delivery method %q", s)
}
