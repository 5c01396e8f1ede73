package usecases

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var now = func() time.Time {
	return time.Now().UTC()
}

// normalizeAddress trims the address and rewrites hex addresses in EIP-55 checksum form.
func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
