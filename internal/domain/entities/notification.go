package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// NotificationType categorizes in-app notifications
type NotificationType string

const (
	NotificationInfo                 NotificationType = "Info"
	NotificationSuccess              NotificationType = "Success"
	NotificationError                NotificationType = "Error"
	NotificationKYCApproved          NotificationType = "KYC Approved"
	NotificationKYCRejected          NotificationType = "KYC Rejected"
	NotificationWithdrawalApproved   NotificationType = "Withdrawal Approved"
	NotificationWithdrawalRejected   NotificationType = "Withdrawal Rejected"
	NotificationNewKYCSubmission     NotificationType = "New KYC Submission"
	NotificationNewWithdrawalRequest NotificationType = "New Withdrawal Request"
	NotificationAdminMessage         NotificationType = "Admin Message"
	NotificationTransferSent         NotificationType = "Transfer Sent"
	NotificationTransferReceived     NotificationType = "Transfer Received"
	NotificationBalanceDeducted      NotificationType = "Balance Deducted"
	NotificationBalanceFunded        NotificationType = "Balance Funded"
	NotificationFeeRequired          NotificationType = "Fee Required"
)

// Notification targets either one customer or every admin
type Notification struct {
	ID        string           `json:"id"`
	UserID    null.String      `json:"userId"`
	AdminOnly bool             `json:"adminOnly"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	LinkTo    null.String      `json:"linkTo"`
}

// VisibleTo reports whether a viewer may see the notification.
func (n *Notification) VisibleTo(userID string, isAdmin bool) bool {
	if isAdmin {
		return n.AdminOnly
	}
	return !n.AdminOnly && n.UserID.Valid && n.UserID.String == userID
}

// NotificationInput is the payload for creating a notification
type NotificationInput struct {
	UserID    string
	AdminOnly bool
	Type      NotificationType
	Message   string
	LinkTo    string
}

// AdminMessageInput lets an admin message a customer
type AdminMessageInput struct {
	Message string `json:"message" binding:"required,max=500"`
}
