package usecases

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x2222222222222222222222222222222222222222"

func testPolicy() VerifyPolicy {
	return VerifyPolicy{
		ExpectedTo:            testWallet,
		ExpectedAmountETH:     0.01,
		AmountTolerance:       0.0001,
		RequiredConfirmations: 3,
	}
}

func makeTx(to string, valueWei *big.Int) *types.Transaction {
	var toAddr *common.Address
	if to != "" {
		a := common.HexToAddress(to)
		toAddr = &a
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       toAddr,
		Value:    valueWei,
	})
}

func makeReceipt(status uint64, blockNumber int64) *types.Receipt {
	return &types.Receipt{
		Status:      status,
		BlockNumber: big.NewInt(blockNumber),
	}
}

// 0.01 ETH in wei
var paymentWei = big.NewInt(10_000_000_000_000_000)

func TestVerifyValidWithEnoughConfirmations(t *testing.T) {
	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 100)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictValid, res.Verdict)
	require.Equal(t, uint64(5), res.Confirmations)
	require.Empty(t, res.Reason)
	require.Equal(t, 0.01, res.AmountETH)
	require.Equal(t, paymentWei, res.AmountWei)
}

func TestVerifyPendingBelowThreshold(t *testing.T) {
	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 104)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictPending, res.Verdict)
	require.Equal(t, uint64(1), res.Confirmations)
	require.Equal(t, "Waiting for confirmations (1/3)", res.Reason)
}

func TestVerifyFailedExecution(t *testing.T) {
	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusFailed, 100)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictInvalid, res.Verdict)
	require.Equal(t, uint64(0), res.Confirmations)
	require.Equal(t, "Transaction failed", res.Reason)
}

func TestVerifyRecipientMismatch(t *testing.T) {
	other := "0x3333333333333333333333333333333333333333"
	tx := makeTx(other, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 100)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictInvalid, res.Verdict)
	require.Equal(t, uint64(0), res.Confirmations)
	require.Contains(t, res.Reason, testWallet)
	require.Contains(t, strings.ToLower(res.Reason), other)
}

func TestVerifyRecipientCaseInsensitive(t *testing.T) {
	policy := testPolicy()
	policy.ExpectedTo = strings.ToUpper(testWallet[2:])
	policy.ExpectedTo = "0x" + policy.ExpectedTo

	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 100)

	res := VerifyTransaction(tx, receipt, 105, policy)
	require.Equal(t, VerdictValid, res.Verdict)
}

func TestVerifyContractCreationTx(t *testing.T) {
	tx := makeTx("", paymentWei) // no recipient
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 100)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictInvalid, res.Verdict)
	require.Contains(t, res.Reason, "Recipient address mismatch")
}

func TestVerifyAmountToleranceBoundary(t *testing.T) {
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 100)

	// Exactly expected + tolerance: 0.0101 ETH passes.
	atBoundary := big.NewInt(10_100_000_000_000_000)
	res := VerifyTransaction(makeTx(testWallet, atBoundary), receipt, 105, testPolicy())
	require.Equal(t, VerdictValid, res.Verdict)

	// Clearly beyond tolerance fails.
	beyond := big.NewInt(10_200_000_000_000_000)
	res = VerifyTransaction(makeTx(testWallet, beyond), receipt, 105, testPolicy())
	require.Equal(t, VerdictInvalid, res.Verdict)
	require.Contains(t, res.Reason, "Amount mismatch")
}

func TestVerifyHeightSkewClampsToZero(t *testing.T) {
	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 200)

	// Queried node lags behind the block that mined the transaction.
	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictPending, res.Verdict)
	require.Equal(t, uint64(0), res.Confirmations)
}

func TestVerifyExactConfirmationThreshold(t *testing.T) {
	tx := makeTx(testWallet, paymentWei)
	receipt := makeReceipt(types.ReceiptStatusSuccessful, 102)

	res := VerifyTransaction(tx, receipt, 105, testPolicy())
	require.Equal(t, VerdictValid, res.Verdict)
	require.Equal(t, uint64(3), res.Confirmations)
}
