package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
)

func pendingDefaults() *entities.Payment {
	return &entities.Payment{
		FromAddress:           "0xaaaa",
		ToAddress:             "0xbbbb",
		Network:               "Ethereum Mainnet",
		Status:                entities.PaymentStatusPending,
		RequiredConfirmations: 3,
		AmountETH:             "0.01",
	}
}

func TestGetOrCreateByHash(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p, created, err := repo.GetOrCreateByHash(ctx, "0xabc", pendingDefaults())
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "0xabc", p.TransactionHash)
	require.Equal(t, entities.PaymentStatusPending, p.Status)
	require.Equal(t, "0", p.AmountWei)

	// Second call must return the same record, not a duplicate.
	again, created, err := repo.GetOrCreateByHash(ctx, "0xabc", pendingDefaults())
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, p.ID, again.ID)
}

func TestGetOrCreateByHashInsertRace(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	// Simulate losing the insert race: the row appears between the read
	// and the create by inserting it through a second repository handle.
	other := NewPaymentRepository(db)
	winner, created, err := other.GetOrCreateByHash(ctx, "0xrace", pendingDefaults())
	require.NoError(t, err)
	require.True(t, created)

	// The unique index forces the duplicate insert down the re-read path.
	d := pendingDefaults()
	loser, created, err := repo.GetOrCreateByHash(ctx, "0xrace", d)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, winner.ID, loser.ID)
}

func TestUpdateObservation(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p, _, err := repo.GetOrCreateByHash(ctx, "0xabc", pendingDefaults())
	require.NoError(t, err)

	now := time.Now()
	p.FromAddress = "0xsender"
	p.AmountWei = "10000000000000000"
	p.AmountETH = "0.01"
	p.Confirmations = 5
	p.Status = entities.PaymentStatusConfirmed
	p.VerifiedAt = &now
	require.NoError(t, repo.UpdateObservation(ctx, p))

	got, err := repo.GetByHash(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusConfirmed, got.Status)
	require.Equal(t, uint64(5), got.Confirmations)
	require.Equal(t, "0xsender", got.FromAddress)
	require.NotNil(t, got.VerifiedAt)
}

func TestUpdateObservationMissingRecord(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)

	p := pendingDefaults()
	p.TransactionHash = "0xmissing"
	err := repo.UpdateObservation(context.Background(), p)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAssignDownloadTokenOnce(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p, _, err := repo.GetOrCreateByHash(ctx, "0xabc", pendingDefaults())
	require.NoError(t, err)

	expires := time.Now().Add(24 * time.Hour)
	won, err := repo.AssignDownloadToken(ctx, p.ID, "token-1", expires)
	require.NoError(t, err)
	require.True(t, won)

	// A second issuance attempt must lose the compare-and-set.
	won, err = repo.AssignDownloadToken(ctx, p.ID, "token-2", expires)
	require.NoError(t, err)
	require.False(t, won)

	got, err := repo.GetByDownloadToken(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "token-1", got.DownloadToken.String)

	_, err = repo.GetByDownloadToken(ctx, "token-2")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTokenUniqueAcrossRecords(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	a, _, err := repo.GetOrCreateByHash(ctx, "0xaaa", pendingDefaults())
	require.NoError(t, err)
	b, _, err := repo.GetOrCreateByHash(ctx, "0xbbb", pendingDefaults())
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour)
	won, err := repo.AssignDownloadToken(ctx, a.ID, "shared-token", expires)
	require.NoError(t, err)
	require.True(t, won)

	// The unique index on download_token rejects reuse on another record.
	_, err = repo.AssignDownloadToken(ctx, b.ID, "shared-token", expires)
	require.Error(t, err)
}

func TestCreateFiatRecord(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	now := time.Now()
	expires := now.Add(24 * time.Hour)
	p := &entities.Payment{
		TransactionHash:       "fiat_deadbeef",
		FromAddress:           "fiat_127.0.0.1",
		ToAddress:             "fiat_payment",
		AmountWei:             "0",
		AmountETH:             "0.5",
		Status:                entities.PaymentStatusConfirmed,
		Confirmations:         1,
		RequiredConfirmations: 1,
		DownloadToken:         null.StringFrom("fiat-token"),
		DownloadExpiresAt:     &expires,
		VerifiedAt:            &now,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByDownloadToken(ctx, "fiat-token")
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusConfirmed, got.Status)
	require.Equal(t, "fiat_deadbeef", got.TransactionHash)
	require.True(t, got.IsDownloadValid())
}

func TestGetByHashNotFound(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)

	_, err := repo.GetByHash(context.Background(), "0xnothing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
