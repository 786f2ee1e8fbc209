package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/infrastructure/models"
)

// PaymentRepository implements payment record persistence on GORM
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetOrCreateByHash returns the record for a hash, creating it when absent.
// The unique index on transaction_hash resolves concurrent creators: the
// loser of the insert race re-reads the winner's row.
func (r *PaymentRepository) GetOrCreateByHash(ctx context.Context, hash string, defaults *entities.Payment) (*entities.Payment, bool, error) {
	var m models.Payment
	err := r.db.WithContext(ctx).Where("transaction_hash = ?", hash).First(&m).Error
	if err == nil {
		return r.toEntity(&m), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	now := time.Now()
	m = models.Payment{
		ID:                    uuid.New(),
		TransactionHash:       hash,
		FromAddress:           defaults.FromAddress,
		ToAddress:             defaults.ToAddress,
		AmountWei:             defaults.AmountWei,
		AmountETH:             defaults.AmountETH,
		Network:               defaults.Network,
		Status:                string(defaults.Status),
		Confirmations:         defaults.Confirmations,
		RequiredConfirmations: defaults.RequiredConfirmations,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if m.AmountWei == "" {
		m.AmountWei = "0"
	}
	if m.AmountETH == "" {
		m.AmountETH = "0"
	}

	if createErr := r.db.WithContext(ctx).Create(&m).Error; createErr != nil {
		var existing models.Payment
		if fetchErr := r.db.WithContext(ctx).Where("transaction_hash = ?", hash).First(&existing).Error; fetchErr == nil {
			return r.toEntity(&existing), false, nil
		}
		return nil, false, createErr
	}

	return r.toEntity(&m), true, nil
}

// GetByHash gets a record by its normalized transaction hash
func (r *PaymentRepository) GetByHash(ctx context.Context, hash string) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("transaction_hash = ?", hash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByDownloadToken resolves a record by exact token match
func (r *PaymentRepository) GetByDownloadToken(ctx context.Context, token string) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("download_token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Create inserts a fully formed record
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	m := r.toModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	return nil
}

// UpdateObservation persists the fields refreshed by a verification attempt
func (r *PaymentRepository) UpdateObservation(ctx context.Context, payment *entities.Payment) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"from_address":  payment.FromAddress,
			"to_address":    payment.ToAddress,
			"amount_wei":    payment.AmountWei,
			"amount_eth":    payment.AmountETH,
			"confirmations": payment.Confirmations,
			"status":        string(payment.Status),
			"verified_at":   payment.VerifiedAt,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AssignDownloadToken sets the token and expiry only while the row still
// has none. The guarded update is the at-most-once issuance point: of two
// racing confirmers exactly one observes RowsAffected == 1.
func (r *PaymentRepository) AssignDownloadToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND download_token IS NULL", id).
		Updates(map[string]interface{}{
			"download_token":      token,
			"download_expires_at": expiresAt,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PaymentRepository) toModel(p *entities.Payment) *models.Payment {
	m := &models.Payment{
		ID:                    p.ID,
		TransactionHash:       p.TransactionHash,
		FromAddress:           p.FromAddress,
		ToAddress:             p.ToAddress,
		AmountWei:             p.AmountWei,
		AmountETH:             p.AmountETH,
		Network:               p.Network,
		Status:                string(p.Status),
		Confirmations:         p.Confirmations,
		RequiredConfirmations: p.RequiredConfirmations,
		DownloadExpiresAt:     p.DownloadExpiresAt,
		VerifiedAt:            p.VerifiedAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.DownloadToken.Valid {
		val := p.DownloadToken.String
		m.DownloadToken = &val
	}
	return m
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:                    m.ID,
		TransactionHash:       m.TransactionHash,
		FromAddress:           m.FromAddress,
		ToAddress:             m.ToAddress,
		AmountWei:             m.AmountWei,
		AmountETH:             m.AmountETH,
		Network:               m.Network,
		Status:                entities.PaymentStatus(m.Status),
		Confirmations:         m.Confirmations,
		RequiredConfirmations: m.RequiredConfirmations,
		DownloadToken:         null.StringFromPtr(m.DownloadToken),
		DownloadExpiresAt:     m.DownloadExpiresAt,
		VerifiedAt:            m.VerifiedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
