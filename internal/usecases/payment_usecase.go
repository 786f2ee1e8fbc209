package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lawithanx/jcorp/internal/config"
	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/domain/repositories"
	"github.com/lawithanx/jcorp/internal/infrastructure/blockchain"
	"github.com/lawithanx/jcorp/pkg/crypto"
	"github.com/lawithanx/jcorp/pkg/logger"
	"github.com/lawithanx/jcorp/pkg/metrics"
)

// LedgerClient is the data-fetch boundary the payment service verifies
// against. Connectivity faults surface as errors; an unknown hash is a
// TxNotFound result, not an error.
type LedgerClient interface {
	FetchTransaction(ctx context.Context, txHash string) (*blockchain.TxResult, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// DownloadURLPrefix is the access path prefix reported with issued tokens
const DownloadURLPrefix = "/api/download/"

// PaymentUsecase orchestrates payment verification and token issuance
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	ledger      LedgerClient
	chain       config.BlockchainConfig
	policy      config.PaymentConfig
}

// NewPaymentUsecase creates a new payment usecase. The policy is fixed at
// construction; nothing is read from ambient state afterwards.
func NewPaymentUsecase(paymentRepo repositories.PaymentRepository, ledger LedgerClient, chain config.BlockchainConfig, policy config.PaymentConfig) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		chain:       chain,
		policy:      policy,
	}
}

// PaymentInfo returns the static payment policy shown to payers
func (u *PaymentUsecase) PaymentInfo() *entities.PaymentInfo {
	return &entities.PaymentInfo{
		Success:       true,
		WalletAddress: u.policy.WalletAddress,
		AmountETH:     u.policy.AmountETH,
		ChainID:       u.chain.ChainID,
		Network:       u.chain.Network,
	}
}

// VerifyPayment checks the claimed transaction against the ledger and
// advances the record's state. Safe to call repeatedly for the same hash:
// it never creates a second record and never issues a second token.
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) (*entities.PaymentStatusResponse, error) {
	hash := entities.NormalizeTransactionHash(input.TransactionHash)
	from := entities.NormalizeAddress(input.FromAddress)
	wallet := entities.NormalizeAddress(u.policy.WalletAddress)

	record, created, err := u.paymentRepo.GetOrCreateByHash(ctx, hash, &entities.Payment{
		FromAddress:           from,
		ToAddress:             wallet,
		AmountETH:             formatETH(u.policy.AmountETH),
		Network:               u.chain.Network,
		Status:                entities.PaymentStatusPending,
		RequiredConfirmations: u.policy.RequiredConfirmations,
	})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if created {
		logger.Info(ctx, "payment record created", zap.String("hash", hash), zap.String("from", from))
	}

	lctx, cancel := context.WithTimeout(ctx, u.chain.RPCTimeout)
	defer cancel()

	height, err := u.ledger.BlockNumber(lctx)
	if err != nil {
		metrics.PaymentVerificationsTotal.WithLabelValues("ledger_error").Inc()
		logger.Error(ctx, "chain height query failed", zap.String("hash", hash), zap.Error(err))
		return nil, domainerrors.LedgerUnavailable(err)
	}

	lookup, err := u.ledger.FetchTransaction(lctx, hash)
	if err != nil {
		metrics.PaymentVerificationsTotal.WithLabelValues("ledger_error").Inc()
		logger.Error(ctx, "transaction lookup failed", zap.String("hash", hash), zap.Error(err))
		return nil, domainerrors.LedgerUnavailable(err)
	}

	if lookup.State == blockchain.TxNotFound {
		return u.handleNotFound(ctx, record, from)
	}

	result := VerifyTransaction(lookup.Tx, lookup.Receipt, height, VerifyPolicy{
		ExpectedTo:            wallet,
		ExpectedAmountETH:     u.policy.AmountETH,
		AmountTolerance:       u.policy.AmountTolerance,
		RequiredConfirmations: record.RequiredConfirmations,
	})

	record.FromAddress = from
	record.Confirmations = result.Confirmations
	// The record always reflects the latest observation, including a
	// zero amount when the observed transaction carries none.
	record.AmountWei = "0"
	if result.AmountWei != nil {
		record.AmountWei = result.AmountWei.String()
	}
	record.AmountETH = formatETH(result.AmountETH)

	if result.Verdict == VerdictValid {
		return u.confirmRecord(ctx, record)
	}

	// Non-terminal: revisited by the next call with fresh ledger data.
	if result.Confirmations > 0 {
		record.Status = entities.PaymentStatusProcessing
		metrics.PaymentVerificationsTotal.WithLabelValues("processing").Inc()
	} else {
		record.Status = entities.PaymentStatusPending
		if result.Verdict == VerdictInvalid {
			metrics.PaymentVerificationsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.PaymentVerificationsTotal.WithLabelValues("pending").Inc()
		}
	}

	if err := u.paymentRepo.UpdateObservation(ctx, record); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "payment not yet verified",
		zap.String("hash", record.TransactionHash),
		zap.String("reason", result.Reason),
		zap.Uint64("confirmations", result.Confirmations))

	return &entities.PaymentStatusResponse{
		Success:               false,
		Status:                record.Status,
		Confirmations:         record.Confirmations,
		RequiredConfirmations: record.RequiredConfirmations,
		Error:                 result.Reason,
		Message:               fmt.Sprintf("Transaction found but waiting for confirmations (%d/%d)", record.Confirmations, record.RequiredConfirmations),
	}, nil
}

// handleNotFound records a zero-confirmation observation for a hash the
// node does not know yet. Not an operation failure: the transaction may
// simply not be broadcast or mined.
func (u *PaymentUsecase) handleNotFound(ctx context.Context, record *entities.Payment, from string) (*entities.PaymentStatusResponse, error) {
	metrics.PaymentVerificationsTotal.WithLabelValues("not_found").Inc()

	if record.Status != entities.PaymentStatusConfirmed {
		record.Status = entities.PaymentStatusPending
		record.Confirmations = 0
		record.FromAddress = from
		if err := u.paymentRepo.UpdateObservation(ctx, record); err != nil {
			return nil, domainerrors.InternalError(err)
		}
	}

	return &entities.PaymentStatusResponse{
		Success:               false,
		Status:                record.Status,
		Confirmations:         record.Confirmations,
		RequiredConfirmations: record.RequiredConfirmations,
		Error:                 "Transaction not found",
		Message:               "Transaction not found on chain yet",
	}, nil
}

// confirmRecord transitions a record to confirmed and issues the download
// token at most once. Re-confirmation of an already confirmed record is a
// no-op that reports the existing token.
func (u *PaymentUsecase) confirmRecord(ctx context.Context, record *entities.Payment) (*entities.PaymentStatusResponse, error) {
	record.Status = entities.PaymentStatusConfirmed
	if record.VerifiedAt == nil {
		now := time.Now()
		record.VerifiedAt = &now
	}

	if err := u.paymentRepo.UpdateObservation(ctx, record); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if !record.DownloadToken.Valid {
		token, err := crypto.GenerateDownloadToken()
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		expiresAt := time.Now().Add(time.Duration(u.policy.ExpiryHours) * time.Hour)

		won, err := u.paymentRepo.AssignDownloadToken(ctx, record.ID, token, expiresAt)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		if won {
			metrics.DownloadTokensIssuedTotal.WithLabelValues("chain").Inc()
			logger.Info(ctx, "download token issued", zap.String("hash", record.TransactionHash))
			record.DownloadToken.SetValid(token)
			record.DownloadExpiresAt = &expiresAt
		} else {
			// A concurrent confirmer won issuance; read its token back.
			fresh, err := u.paymentRepo.GetByHash(ctx, record.TransactionHash)
			if err != nil {
				return nil, domainerrors.InternalError(err)
			}
			record.DownloadToken = fresh.DownloadToken
			record.DownloadExpiresAt = fresh.DownloadExpiresAt
		}
	}

	metrics.PaymentVerificationsTotal.WithLabelValues("confirmed").Inc()
	logger.Info(ctx, "payment verified",
		zap.String("hash", record.TransactionHash),
		zap.String("from", record.FromAddress),
		zap.Uint64("confirmations", record.Confirmations))

	return &entities.PaymentStatusResponse{
		Success:       true,
		Status:        entities.PaymentStatusConfirmed,
		Confirmations: record.Confirmations,
		DownloadToken: record.DownloadToken.String,
		DownloadURL:   DownloadURLPrefix + record.DownloadToken.String,
		Message:       "Payment verified successfully",
	}, nil
}

// ProcessFiatPayment fabricates a confirmed record for the fiat
// placeholder path. There is no gateway integration; the record flows
// through the same store and download gate as on-chain payments.
func (u *PaymentUsecase) ProcessFiatPayment(ctx context.Context, input *entities.FiatPaymentInput, clientIP string) (*entities.PaymentStatusResponse, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("Invalid amount")
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	token, err := crypto.GenerateDownloadToken()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	syntheticHash, err := crypto.GenerateHexToken(16)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(u.policy.ExpiryHours) * time.Hour)
	record := &entities.Payment{
		TransactionHash:       "fiat_" + syntheticHash,
		FromAddress:           "fiat_" + clientIP,
		ToAddress:             "fiat_payment",
		AmountWei:             "0",
		AmountETH:             formatETH(input.Amount / 100), // placeholder fiat-to-ETH rate
		Network:               input.Currency,
		Status:                entities.PaymentStatusConfirmed,
		Confirmations:         1,
		RequiredConfirmations: 1,
		VerifiedAt:            &now,
		DownloadExpiresAt:     &expiresAt,
	}
	record.DownloadToken.SetValid(token)

	if err := u.paymentRepo.Create(ctx, record); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	metrics.DownloadTokensIssuedTotal.WithLabelValues("fiat").Inc()
	logger.Info(ctx, "fiat payment processed",
		zap.Float64("amount", input.Amount),
		zap.String("currency", input.Currency))

	return &entities.PaymentStatusResponse{
		Success:       true,
		Status:        entities.PaymentStatusConfirmed,
		Confirmations: record.Confirmations,
		DownloadToken: token,
		DownloadURL:   DownloadURLPrefix + token,
		Message:       "Payment processed successfully",
	}, nil
}

// ResolveDownloadToken resolves a presented token to its record. Callers
// must still apply IsDownloadValid; token existence alone grants nothing.
func (u *PaymentUsecase) ResolveDownloadToken(ctx context.Context, token string) (*entities.Payment, error) {
	return u.paymentRepo.GetByDownloadToken(ctx, token)
}

func formatETH(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
