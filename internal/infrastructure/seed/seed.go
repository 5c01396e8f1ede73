// Package seed builds the initial bank state from the embedded fixture.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"brixium.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var fixture []byte

// Hasher turns a plaintext secret into its stored form
type Hasher interface {
	Hash(secret string) (string, error)
}

// Data is the complete initial state
type Data struct {
	Users              []*entities.User
	Transactions       []*entities.Transaction
	KYCRequests        []*entities.KYCRequest
	WithdrawalRequests []*entities.WithdrawalRequest
	Notifications      []*entities.Notification
	Settings           entities.AppSettings
}

type fileUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Balance  string `yaml:"balance"`
	Currency string `yaml:"currency"`
	Verified bool   `yaml:"verified"`
	Pin      string `yaml:"pin"`
	Phone    string `yaml:"phone"`
	Age      string `yaml:"age"`
}

type fileTransaction struct {
	ID                 string `yaml:"id"`
	UserID             string `yaml:"userId"`
	Type               string `yaml:"type"`
	Status             string `yaml:"status"`
	Amount             string `yaml:"amount"`
	Currency           string `yaml:"currency"`
	Age                string `yaml:"age"`
	Description        string `yaml:"description"`
	FromUserID         string `yaml:"fromUserId"`
	ToUserID           string `yaml:"toUserId"`
	ToAddress          string `yaml:"toAddress"`
	NetworkFee         string `yaml:"networkFee"`
	NetworkFeeCurrency string `yaml:"networkFeeCurrency"`
}

type fileKYC struct {
	ID           string   `yaml:"id"`
	UserID       string   `yaml:"userId"`
	DocumentURLs []string `yaml:"documentUrls"`
	Status       string   `yaml:"status"`
	Age          string   `yaml:"age"`
	ReviewedAge  string   `yaml:"reviewedAge"`
	ReviewerID   string   `yaml:"reviewerId"`
}

type fileWithdrawal struct {
	ID              string `yaml:"id"`
	UserID          string `yaml:"userId"`
	Amount          string `yaml:"amount"`
	Currency        string `yaml:"currency"`
	WalletAddress   string `yaml:"walletAddress"`
	Status          string `yaml:"status"`
	Age             string `yaml:"age"`
	FeePaidAmount   string `yaml:"feePaidAmount"`
	FeePaidCurrency string `yaml:"feePaidCurrency"`
	FeeWalletType   string `yaml:"feeWalletType"`
	FeeSettingID    string `yaml:"feeSettingId"`
}

type fileNotification struct {
	ID        string `yaml:"id"`
	UserID    string `yaml:"userId"`
	AdminOnly bool   `yaml:"adminOnly"`
	Type      string `yaml:"type"`
	Message   string `yaml:"message"`
	Read      bool   `yaml:"read"`
	Age       string `yaml:"age"`
	LinkTo    string `yaml:"linkTo"`
}

type fileWallet struct {
	Type             string `yaml:"type"`
	Name             string `yaml:"name"`
	Address          string `yaml:"address"`
	Network          string `yaml:"network"`
	QRCode           string `yaml:"qrCode"`
	CustomTypeDetail string `yaml:"customTypeDetail"`
}

type fileFee struct {
	ID              string       `yaml:"id"`
	TransactionType string       `yaml:"transactionType"`
	Description     string       `yaml:"description"`
	FeeAmount       string       `yaml:"feeAmount"`
	FeeCurrency     string       `yaml:"feeCurrency"`
	IsEnabled       bool         `yaml:"isEnabled"`
	PaymentOptions  []fileWallet `yaml:"paymentOptions"`
}

type fileSettings struct {
	SupportedCurrencies []string  `yaml:"supportedCurrencies"`
	MaintenanceMode     bool      `yaml:"maintenanceMode"`
	DefaultUserCurrency string    `yaml:"defaultUserCurrency"`
	NetworkFees         []fileFee `yaml:"networkFees"`
}

type file struct {
	Users              []fileUser         `yaml:"users"`
	Transactions       []fileTransaction  `yaml:"transactions"`
	KYCRequests        []fileKYC          `yaml:"kycRequests"`
	WithdrawalRequests []fileWithdrawal   `yaml:"withdrawalRequests"`
	Notifications      []fileNotification `yaml:"notifications"`
	Settings           fileSettings       `yaml:"settings"`
}

func parse(raw []byte) (*file, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	return &f, nil
}

// Settings returns the default settings document, including both fee rules
func Settings() (entities.AppSettings, error) {
	f, err := parse(fixture)
	if err != nil {
		return entities.AppSettings{}, err
	}
	return f.Settings.toEntity()
}

// Load builds the initial state with ages resolved against now
func Load(now time.Time, hasher Hasher) (*Data, error) {
	return load(fixture, now, hasher)
}

func load(raw []byte, now time.Time, hasher Hasher) (*Data, error) {
	f, err := parse(raw)
	if err != nil {
		return nil, err
	}

	data := &Data{}
	if data.Settings, err = f.Settings.toEntity(); err != nil {
		return nil, err
	}
	for _, u := range f.Users {
		user, err := u.toEntity(now, hasher)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", u.ID, err)
		}
		data.Users = append(data.Users, user)
	}
	for _, t := range f.Transactions {
		tx, err := t.toEntity(now)
		if err != nil {
			return nil, fmt.Errorf("seed transaction %s: %w", t.ID, err)
		}
		data.Transactions = append(data.Transactions, tx)
	}
	for _, k := range f.KYCRequests {
		req, err := k.toEntity(now)
		if err != nil {
			return nil, fmt.Errorf("seed kyc request %s: %w", k.ID, err)
		}
		data.KYCRequests = append(data.KYCRequests, req)
	}
	for _, w := range f.WithdrawalRequests {
		req, err := w.toEntity(now)
		if err != nil {
			return nil, fmt.Errorf("seed withdrawal %s: %w", w.ID, err)
		}
		data.WithdrawalRequests = append(data.WithdrawalRequests, req)
	}
	for _, n := range f.Notifications {
		notif, err := n.toEntity(now)
		if err != nil {
			return nil, fmt.Errorf("seed notification %s: %w", n.ID, err)
		}
		data.Notifications = append(data.Notifications, notif)
	}
	return data, nil
}

func ago(now time.Time, age string) (time.Time, error) {
	if age == "" {
		return now, nil
	}
	d, err := time.ParseDuration(age)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}

func amount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func optionalAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func optional(s string) null.String {
	return null.NewString(s, s != "")
}

func (u fileUser) toEntity(now time.Time, hasher Hasher) (*entities.User, error) {
	balance, err := amount(u.Balance)
	if err != nil {
		return nil, err
	}
	created, err := ago(now, u.Age)
	if err != nil {
		return nil, err
	}
	passwordHash, err := hasher.Hash(u.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  passwordHash,
		Balance:       balance,
		Currency:      entities.Currency(u.Currency),
		IsVerifiedKYC: u.Verified,
		Phone:         optional(u.Phone),
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	if u.Pin != "" {
		pinHash, err := hasher.Hash(u.Pin)
		if err != nil {
			return nil, err
		}
		user.TransferPinHash = null.StringFrom(pinHash)
	}
	return user, nil
}

func (t fileTransaction) toEntity(now time.Time) (*entities.Transaction, error) {
	amt, err := amount(t.Amount)
	if err != nil {
		return nil, err
	}
	fee, err := optionalAmount(t.NetworkFee)
	if err != nil {
		return nil, err
	}
	date, err := ago(now, t.Age)
	if err != nil {
		return nil, err
	}
	return &entities.Transaction{
		ID:                 t.ID,
		UserID:             t.UserID,
		Type:               entities.TransactionType(t.Type),
		Status:             entities.TransactionStatus(t.Status),
		Amount:             amt,
		Currency:           entities.Currency(t.Currency),
		Date:               date,
		Description:        t.Description,
		FromUserID:         optional(t.FromUserID),
		ToUserID:           optional(t.ToUserID),
		ToAddress:          optional(t.ToAddress),
		NetworkFee:         fee,
		NetworkFeeCurrency: optional(t.NetworkFeeCurrency),
	}, nil
}

func (k fileKYC) toEntity(now time.Time) (*entities.KYCRequest, error) {
	submitted, err := ago(now, k.Age)
	if err != nil {
		return nil, err
	}
	req := &entities.KYCRequest{
		ID:           k.ID,
		UserID:       k.UserID,
		DocumentURLs: append([]string(nil), k.DocumentURLs...),
		Status:       entities.KYCStatus(k.Status),
		SubmittedAt:  submitted,
		ReviewerID:   optional(k.ReviewerID),
	}
	if k.ReviewedAge != "" {
		reviewed, err := ago(now, k.ReviewedAge)
		if err != nil {
			return nil, err
		}
		req.ReviewedAt = null.TimeFrom(reviewed)
	}
	return req, nil
}

func (w fileWithdrawal) toEntity(now time.Time) (*entities.WithdrawalRequest, error) {
	amt, err := amount(w.Amount)
	if err != nil {
		return nil, err
	}
	feePaid, err := optionalAmount(w.FeePaidAmount)
	if err != nil {
		return nil, err
	}
	requested, err := ago(now, w.Age)
	if err != nil {
		return nil, err
	}
	return &entities.WithdrawalRequest{
		ID:                          w.ID,
		UserID:                      w.UserID,
		Amount:                      amt,
		Currency:                    entities.Currency(w.Currency),
		WalletAddress:               w.WalletAddress,
		Status:                      entities.TransactionStatus(w.Status),
		RequestedAt:                 requested,
		NetworkFeePaidAmount:        feePaid,
		NetworkFeePaidCurrency:      optional(w.FeePaidCurrency),
		NetworkFeePaymentWalletType: optional(w.FeeWalletType),
		FeeSettingID:                optional(w.FeeSettingID),
	}, nil
}

func (n fileNotification) toEntity(now time.Time) (*entities.Notification, error) {
	created, err := ago(now, n.Age)
	if err != nil {
		return nil, err
	}
	return &entities.Notification{
		ID:        n.ID,
		UserID:    optional(n.UserID),
		AdminOnly: n.AdminOnly,
		Type:      entities.NotificationType(n.Type),
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: created,
		LinkTo:    optional(n.LinkTo),
	}, nil
}

func (s fileSettings) toEntity() (entities.AppSettings, error) {
	out := entities.AppSettings{
		MaintenanceMode:     s.MaintenanceMode,
		DefaultUserCurrency: entities.Currency(s.DefaultUserCurrency),
		NetworkFees:         []entities.FeeSetting{},
	}
	for _, c := range s.SupportedCurrencies {
		out.SupportedCurrencies = append(out.SupportedCurrencies, entities.Currency(c))
	}
	for _, f := range s.NetworkFees {
		feeAmount, err := amount(f.FeeAmount)
		if err != nil {
			return entities.AppSettings{}, fmt.Errorf("seed fee %s: %w", f.ID, err)
		}
		fee := entities.FeeSetting{
			ID:              f.ID,
			TransactionType: entities.TransactionType(f.TransactionType),
			Description:     f.Description,
			FeeAmount:       feeAmount,
			FeeCurrency:     entities.Currency(f.FeeCurrency),
			IsEnabled:       f.IsEnabled,
			PaymentOptions:  []entities.NetworkFeeWallet{},
		}
		for _, w := range f.PaymentOptions {
			fee.PaymentOptions = append(fee.PaymentOptions, entities.NetworkFeeWallet{
				Type:             entities.NetworkFeeWalletType(w.Type),
				Name:             w.Name,
				Address:          w.Address,
				Network:          w.Network,
				QRCode:           w.QRCode,
				CustomTypeDetail: w.CustomTypeDetail,
			})
		}
		out.NetworkFees = append(out.NetworkFees, fee)
	}
	return out, nil
}
