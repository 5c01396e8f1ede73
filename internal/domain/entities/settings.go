package entities

// AppSettings is the system-wide configuration edited from the admin console
type AppSettings struct {
	SupportedCurrencies []Currency   `json:"supportedCurrencies"`
	NetworkFees         []FeeSetting `json:"networkFees"`
	MaintenanceMode     bool         `json:"maintenanceMode"`
	DefaultUserCurrency Currency     `json:"defaultUserCurrency"`
}

// Supports reports whether customers may hold the currency.
func (s *AppSettings) Supports(c Currency) bool {
	for _, sc := range s.SupportedCurrencies {
		if sc == c {
			return true
		}
	}
	return false
}

// ApplicableFee returns the first enabled fee rule for the transaction type.
func (s *AppSettings) ApplicableFee(t TransactionType) *FeeSetting {
	for i := range s.NetworkFees {
		if s.NetworkFees[i].TransactionType == t && s.NetworkFees[i].IsEnabled {
			fee := s.NetworkFees[i].Clone()
			return &fee
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s AppSettings) Clone() AppSettings {
	s.SupportedCurrencies = append([]Currency(nil), s.SupportedCurrencies...)
	fees := make([]FeeSetting, len(s.NetworkFees))
	for i, f := range s.NetworkFees {
		fees[i] = f.Clone()
	}
	s.NetworkFees = fees
	return s
}

// UpdateSettingsInput is a partial update of the general settings
type UpdateSettingsInput struct {
	SupportedCurrencies []Currency `json:"supportedCurrencies"`
	MaintenanceMode     *bool      `json:"maintenanceMode"`
	DefaultUserCurrency Currency   `json:"defaultUserCurrency"`
}

// PublicSettings is the subset of settings shown before login
type PublicSettings struct {
	SupportedCurrencies []Currency `json:"supportedCurrencies"`
	DefaultUserCurrency Currency   `json:"defaultUserCurrency"`
	MaintenanceMode     bool       `json:"maintenanceMode"`
}

// DashboardStats summarizes the platform for the admin console
type DashboardStats struct {
	TotalUsers         int    `json:"totalUsers"`
	PlatformBalanceUSD string `json:"platformBalanceUsd"`
	PendingKYC         int    `json:"pendingKyc"`
	PendingWithdrawals int    `json:"pendingWithdrawals"`
	ActiveFeeRules     int    `json:"activeFeeRules"`
	MaintenanceMode    bool   `json:"maintenanceMode"`
}
