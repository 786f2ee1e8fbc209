package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents payment verification status
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusConfirmed  PaymentStatus = "confirmed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusExpired    PaymentStatus = "expired"
)

// Payment represents one verification record per transaction hash.
// The hash is the natural key; exactly one record exists per hash.
type Payment struct {
	ID                    uuid.UUID     `json:"id"`
	TransactionHash       string        `json:"transactionHash"`
	FromAddress           string        `json:"fromAddress"`
	ToAddress             string        `json:"toAddress"`
	AmountWei             string        `json:"amountWei"`
	AmountETH             string        `json:"amountEth"`
	Network               string        `json:"network"`
	Status                PaymentStatus `json:"status"`
	Confirmations         uint64        `json:"confirmations"`
	RequiredConfirmations uint64        `json:"requiredConfirmations"`
	DownloadToken         null.String   `json:"-"`
	DownloadExpiresAt     *time.Time    `json:"-"`
	VerifiedAt            *time.Time    `json:"verifiedAt,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// IsDownloadValid reports whether the record currently grants access to
// the gated asset. Status stays confirmed after the token expires; only
// access validity reflects expiry.
func (p *Payment) IsDownloadValid() bool {
	if p.Status != PaymentStatusConfirmed {
		return false
	}
	if p.Confirmations < p.RequiredConfirmations {
		return false
	}
	if p.DownloadExpiresAt != nil && !p.DownloadExpiresAt.After(time.Now()) {
		return false
	}
	return true
}

// NormalizeTransactionHash brings a hash to its canonical 0x-prefixed
// lowercase form for storage and lookup.
func NormalizeTransactionHash(hash string) string {
	hash = strings.TrimSpace(hash)
	if !strings.HasPrefix(hash, "0x") && !strings.HasPrefix(hash, "0X") {
		hash = "0x" + hash
	}
	return strings.ToLower(hash)
}

// NormalizeAddress lowercases hex-prefixed ledger addresses. Synthetic
// identifiers (fiat records) pass through untouched.
func NormalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
		return strings.ToLower(addr)
	}
	return addr
}

// VerifyPaymentInput is the body of POST /api/payment/verify
type VerifyPaymentInput struct {
	TransactionHash string `json:"transactionHash" binding:"required"`
	FromAddress     string `json:"fromAddress" binding:"required"`
}

// FiatPaymentInput is the body of POST /api/payment/fiat
type FiatPaymentInput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PaymentStatusResponse reports the outcome of a verification attempt
type PaymentStatusResponse struct {
	Success               bool          `json:"success"`
	Status                PaymentStatus `json:"status"`
	Confirmations         uint64        `json:"confirmations"`
	RequiredConfirmations uint64        `json:"requiredConfirmations,omitempty"`
	DownloadToken         string        `json:"downloadToken,omitempty"`
	DownloadURL           string        `json:"downloadUrl,omitempty"`
	Error                 string        `json:"error,omitempty"`
	Message               string        `json:"message,omitempty"`
}

// PaymentInfo is the static policy echo of GET /api/payment/info
type PaymentInfo struct {
	Success       bool    `json:"success"`
	WalletAddress string  `json:"walletAddress"`
	AmountETH     float64 `json:"amountEth"`
	ChainID       int64   `json:"chainId"`
	Network       string  `json:"network"`
}
