package usecases

// Credential rules
const (
	MinPasswordLength = 6
	TransferPinLength = 4
)

// ExchangeRoundingPlaces is the precision of a converted balance
const ExchangeRoundingPlaces = 2

// Admin console links attached to admin notifications
const (
	AdminKYCLink         = "/admin/kyc"
	AdminWithdrawalsLink = "/admin/withdrawals"
)

// ID prefixes of generated records
const (
	userIDPrefix         = "user"
	transactionIDPrefix  = "txn"
	kycIDPrefix          = "kyc"
	withdrawalIDPrefix   = "wd"
	notificationIDPrefix = "notif"
	feeIDPrefix          = "fee"
	sessionIDPrefix      = "sess"
)

// Operation labels used for ledger metrics
const (
	opFund       = "fund"
	opDeduct     = "deduct"
	opTransfer   = "transfer"
	opExchange   = "exchange"
	opWithdrawal = "withdrawal"
)
