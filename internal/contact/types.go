// Package contact defines the contact-form submission model and the pure
// checks (field validation, spam filtering) applied before a submission is
// accepted.
package contact

import "time"

// Status values a submission moves through during admin review. The set is
// a convention, not a state machine: the admin surface may move a
// submission from any status to any other.
const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

// KnownStatuses lists every status the admin surface accepts.
var KnownStatuses = []string{StatusNew, StatusRead, StatusReplied, StatusArchived}

// IsKnownStatus reports whether s is one of the review statuses.
func IsKnownStatus(s string) bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Submission is one contact-form entry. The ID is assigned by the store on
// create and never changes; Status is the only field mutated afterwards.
type Submission struct {
	ID        string    `json:"id" dynamodbav:"ID"`
	FullName  string    `json:"fullName" dynamodbav:"FullName"`
	Email     string    `json:"email" dynamodbav:"Email"`
	Subject   string    `json:"subject" dynamodbav:"Subject"`
	Message   string    `json:"message" dynamodbav:"Message"`
	ClientIP  string    `json:"clientIp,omitempty" dynamodbav:"ClientIP"`
	UserAgent string    `json:"userAgent,omitempty" dynamodbav:"UserAgent"`
	Status    string    `json:"status" dynamodbav:"Status"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// Fields is the raw form input before validation.
type Fields struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}
