package usecases

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
)

// Verdict is the outcome of verifying one ledger observation
type Verdict int

const (
	VerdictValid Verdict = iota
	VerdictPending
	VerdictInvalid
)

// VerifyPolicy holds the expected payment parameters
type VerifyPolicy struct {
	ExpectedTo            string
	ExpectedAmountETH     float64
	AmountTolerance       float64
	RequiredConfirmations uint64
}

// VerificationResult carries the verdict plus the observed transaction
// fields used to refresh the payment record.
type VerificationResult struct {
	Verdict       Verdict
	Confirmations uint64
	Reason        string
	ToAddress     string
	AmountWei     *big.Int
	AmountETH     float64
}

// VerifyTransaction checks a mined transaction against the payment policy.
// It is a pure function over the ledger observation; checks run in order
// and stop at the first failure.
func VerifyTransaction(tx *types.Transaction, receipt *types.Receipt, currentHeight uint64, policy VerifyPolicy) *VerificationResult {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &VerificationResult{
			Verdict: VerdictInvalid,
			Reason:  "Transaction failed",
		}
	}

	var toAddress string
	if tx.To() != nil {
		toAddress = tx.To().Hex()
	}
	if toAddress == "" || !strings.EqualFold(toAddress, policy.ExpectedTo) {
		return &VerificationResult{
			Verdict:   VerdictInvalid,
			Reason:    fmt.Sprintf("Recipient address mismatch. Expected %s, got %s", policy.ExpectedTo, toAddress),
			ToAddress: toAddress,
		}
	}

	amountWei := tx.Value()
	amountETH := weiToETH(amountWei)
	if math.Abs(amountETH-policy.ExpectedAmountETH) > policy.AmountTolerance {
		return &VerificationResult{
			Verdict:   VerdictInvalid,
			Reason:    fmt.Sprintf("Amount mismatch. Expected %v ETH, got %v ETH", policy.ExpectedAmountETH, amountETH),
			ToAddress: toAddress,
			AmountWei: amountWei,
			AmountETH: amountETH,
		}
	}

	// A height below the receipt's block means the queried node lags the
	// one that mined the transaction; report zero rather than underflow.
	var confirmations uint64
	if blockNumber := receipt.BlockNumber.Uint64(); currentHeight >= blockNumber {
		confirmations = currentHeight - blockNumber
	}

	if confirmations < policy.RequiredConfirmations {
		return &VerificationResult{
			Verdict:       VerdictPending,
			Confirmations: confirmations,
			Reason:        fmt.Sprintf("Waiting for confirmations (%d/%d)", confirmations, policy.RequiredConfirmations),
			ToAddress:     toAddress,
			AmountWei:     amountWei,
			AmountETH:     amountETH,
		}
	}

	return &VerificationResult{
		Verdict:       VerdictValid,
		Confirmations: confirmations,
		ToAddress:     toAddress,
		AmountWei:     amountWei,
		AmountETH:     amountETH,
	}
}

func weiToETH(wei *big.Int) float64 {
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	return eth
}
