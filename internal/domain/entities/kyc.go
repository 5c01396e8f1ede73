package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// KYCStatus is the state of a customer's identity verification
type KYCStatus string

const (
	KYCStatusPending      KYCStatus = "Pending"
	KYCStatusApproved     KYCStatus = "Approved"
	KYCStatusRejected     KYCStatus = "Rejected"
	KYCStatusNotSubmitted KYCStatus = "Not Submitted"
)

// MaxKYCDocuments caps the number of documents per submission
const MaxKYCDocuments = 3

// KYCRequest is the latest verification submission of a user
type KYCRequest struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	DocumentURLs []string    `json:"documentUrls"`
	Status       KYCStatus   `json:"status"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	ReviewedAt   null.Time   `json:"reviewedAt"`
	ReviewerID   null.String `json:"reviewerId"`
}

// BlocksSubmission reports whether the request prevents a new submission.
// An approved request only blocks while the user still holds the verified flag.
func (k *KYCRequest) BlocksSubmission(userVerified bool) bool {
	return k.Status == KYCStatusPending || (k.Status == KYCStatusApproved && userVerified)
}

// MatchesVerification reports whether a reviewed request agrees with the user's flag.
func (k *KYCRequest) MatchesVerification(verified bool) bool {
	if verified {
		return k.Status == KYCStatusApproved
	}
	return k.Status != KYCStatusApproved
}

// Clone returns a deep copy.
func (k KYCRequest) Clone() KYCRequest {
	k.DocumentURLs = append([]string(nil), k.DocumentURLs...)
	return k
}

// KYCSubmissionInput carries mock document references
type KYCSubmissionInput struct {
	DocumentURLs []string `json:"documentUrls"`
}

// KYCReviewInput is the admin decision on a request
type KYCReviewInput struct {
	Approve bool `json:"approve"`
}

// KYCVerificationInput sets a user's verification flag directly
type KYCVerificationInput struct {
	Verified bool `json:"verified"`
}
