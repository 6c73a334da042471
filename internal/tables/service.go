package tables

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"restaurant-pos/internal/domain"
)

const defaultCapacity = 4

type ServiceInterface interface {
	Create(ctx context.Context, tableNumber string, capacity int) (domain.Table, error)
	Get(ctx context.Context, id int64) (domain.Table, error)
	GetByID(ctx context.Context, id int64) (domain.Table, error)
	GetByQRToken(ctx context.Context, token string) (domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Update(ctx context.Context, id int64, req domain.UpdateTableRequest) (domain.Table, error)
	Delete(ctx context.Context, id int64) error
	RegenerateQR(ctx context.Context, id int64) (domain.Table, error)
	QRImage(ctx context.Context, id int64) (tableNumber, dataURI string, err error)
}

type Service struct {
	repo RepositoryInterface
	// publicBaseURL is the frontend URL QR codes point guests at.
	publicBaseURL string
}

func NewService(repo RepositoryInterface, publicBaseURL string) *Service {
	return &Service{repo: repo, publicBaseURL: publicBaseURL}
}

func (s *Service) Create(ctx context.Context, tableNumber string, capacity int) (domain.Table, error) {
	if tableNumber == "" {
		return domain.Table{}, domain.NewValidation("tableNumber is required")
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	token, err := newQRToken()
	if err != nil {
		return domain.Table{}, err
	}
	return s.repo.Create(ctx, domain.Table{
		TableNumber: tableNumber,
		Capacity:    capacity,
		QRToken:     token,
		IsActive:    true,
		Status:      domain.TableAvailable,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Table, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByID satisfies the order engine's TableGetter.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Table, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByQRToken resolves an active table from a scanned token.
func (s *Service) GetByQRToken(ctx context.Context, token string) (domain.Table, error) {
	return s.repo.GetByQRToken(ctx, token)
}

func (s *Service) List(ctx context.Context) ([]domain.Table, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateTableRequest) (domain.Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Table{}, err
	}
	if req.TableNumber != nil && *req.TableNumber != "" {
		t.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return domain.Table{}, domain.NewValidation("capacity must be at least 1")
		}
		t.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Table{}, domain.NewValidation(fmt.Sprintf("invalid table status %q", *req.Status))
		}
		t.Status = *req.Status
	}
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RegenerateQR rotates the table's token. The old token stops resolving the
// moment the update commits; there is no grace period.
func (s *Service) RegenerateQR(ctx context.Context, id int64) (domain.Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Table{}, err
	}
	token, err := newQRToken()
	if err != nil {
		return domain.Table{}, err
	}
	t.QRToken = token
	return s.repo.Update(ctx, t)
}

// QRImage renders the table's QR code as a base64 PNG data URI.
func (s *Service) QRImage(ctx context.Context, id int64) (string, string, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	url := fmt.Sprintf("%s/table/%s", s.publicBaseURL, t.QRToken)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", "", fmt.Errorf("encode qr: %w", err)
	}
	return t.TableNumber, "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func newQRToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate qr token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
