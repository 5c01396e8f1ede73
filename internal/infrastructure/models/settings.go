package models

import (
	"encoding/json"

	"brixium.backend/internal/domain/entities"
)

// AppSettings is the stored settings document. It also recognizes the
// fields of the older single-fee layout so that documents written by
// earlier releases can be migrated.
type AppSettings struct {
	SupportedCurrencies []entities.Currency    `json:"supportedCurrencies"`
	NetworkFees         *[]entities.FeeSetting `json:"networkFees,omitempty"`
	MaintenanceMode     *bool                  `json:"maintenanceMode,omitempty"`
	DefaultUserCurrency entities.Currency      `json:"defaultUserCurrency"`

	DefaultNetworkFee json.RawMessage `json:"defaultNetworkFee,omitempty"`
	NetworkFeeWallets json.RawMessage `json:"networkFeeWallets,omitempty"`
}

// IsLegacy reports whether the document predates per-type fee rules.
func (m *AppSettings) IsLegacy() bool {
	return m.DefaultNetworkFee != nil || (m.NetworkFeeWallets != nil && m.NetworkFees == nil)
}

// DecodeSettings parses a stored document. A legacy document keeps its
// currencies and maintenance flag while the fee rules are reset to the
// given defaults; migrated is true in that case and the caller should save
// the result back.
func DecodeSettings(raw []byte, defaults entities.AppSettings) (settings entities.AppSettings, migrated bool, err error) {
	var m AppSettings
	if err := json.Unmarshal(raw, &m); err != nil {
		return entities.AppSettings{}, false, err
	}

	settings = defaults.Clone()
	if len(m.SupportedCurrencies) > 0 {
		settings.SupportedCurrencies = append([]entities.Currency(nil), m.SupportedCurrencies...)
	}
	if m.MaintenanceMode != nil {
		settings.MaintenanceMode = *m.MaintenanceMode
	}
	if m.DefaultUserCurrency != "" {
		settings.DefaultUserCurrency = m.DefaultUserCurrency
	}

	if m.IsLegacy() {
		return settings, true, nil
	}
	if m.NetworkFees != nil {
		settings.NetworkFees = *m.NetworkFees
	}
	return settings, false, nil
}

// EncodeSettings serializes settings in the current layout
func EncodeSettings(s entities.AppSettings) ([]byte, error) {
	fees := s.NetworkFees
	if fees == nil {
		fees = []entities.FeeSetting{}
	}
	maintenance := s.MaintenanceMode
	return json.Marshal(AppSettings{
		SupportedCurrencies: s.SupportedCurrencies,
		NetworkFees:         &fees,
		MaintenanceMode:     &maintenance,
		DefaultUserCurrency: s.DefaultUserCurrency,
	})
}
