package tables

import (
	"context"
	"strings"
	"testing"

	"restaurant-pos/internal/domain"
)

type fakeRepo struct {
	tables map[int64]domain.Table
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tables: map[int64]domain.Table{}, nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, t domain.Table) (domain.Table, error) {
	for _, existing := range f.tables {
		if existing.TableNumber == t.TableNumber {
			return domain.Table{}, domain.ErrDuplicateTable
		}
	}
	t.ID = f.nextID
	f.nextID++
	f.tables[t.ID] = t
	return t, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (domain.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return domain.Table{}, domain.ErrTableNotFound
	}
	return t, nil
}

func (f *fakeRepo) GetByQRToken(_ context.Context, token string) (domain.Table, error) {
	for _, t := range f.tables {
		if t.QRToken == token && t.IsActive {
			return t, nil
		}
	}
	return domain.Table{}, domain.ErrTableNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]domain.Table, error) {
	out := []domain.Table{}
	for _, t := range f.tables {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, t domain.Table) (domain.Table, error) {
	if _, ok := f.tables[t.ID]; !ok {
		return domain.Table{}, domain.ErrTableNotFound
	}
	f.tables[t.ID] = t
	return t, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tables[id]; !ok {
		return domain.ErrTableNotFound
	}
	delete(f.tables, id)
	return nil
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), "http://localhost:3000")
	table, err := svc.Create(context.Background(), "T1", 0)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if table.Capacity != defaultCapacity {
		t.Errorf("capacity = %d, want default %d", table.Capacity, defaultCapacity)
	}
	if !table.IsActive || table.Status != domain.TableAvailable {
		t.Errorf("new table = %+v, want active and available", table)
	}
	if len(table.QRToken) != 32 {
		t.Errorf("qr token %q length = %d, want 32 hex chars", table.QRToken, len(table.QRToken))
	}
}

func TestCreateRequiresNumber(t *testing.T) {
	svc := NewService(newFakeRepo(), "http://localhost:3000")
	if _, err := svc.Create(context.Background(), "", 4); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRegenerateQRRotatesToken(t *testing.T) {
	svc := NewService(newFakeRepo(), "http://localhost:3000")
	ctx := context.Background()

	table, err := svc.Create(ctx, "T1", 4)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	old := table.QRToken

	rotated, err := svc.RegenerateQR(ctx, table.ID)
	if err != nil {
		t.Fatalf("regenerate qr: %v", err)
	}
	if rotated.QRToken == old {
		t.Error("token did not change")
	}
	if _, err := svc.GetByQRToken(ctx, old); !domain.IsNotFound(err) {
		t.Errorf("old token still resolves, err = %v", err)
	}
	if got, err := svc.GetByQRToken(ctx, rotated.QRToken); err != nil || got.ID != table.ID {
		t.Errorf("new token resolve = (%+v, %v), want the table", got, err)
	}
}

func TestQRImageDataURI(t *testing.T) {
	svc := NewService(newFakeRepo(), "https://pos.example.com")
	ctx := context.Background()

	table, err := svc.Create(ctx, "T7", 4)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	number, uri, err := svc.QRImage(ctx, table.ID)
	if err != nil {
		t.Fatalf("qr image: %v", err)
	}
	if number != "T7" {
		t.Errorf("table number = %q, want T7", number)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("uri %q is not a png data uri", uri[:min(len(uri), 40)])
	}
}

func TestUpdateValidatesStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), "http://localhost:3000")
	ctx := context.Background()

	table, err := svc.Create(ctx, "T1", 4)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	bad := domain.TableStatus("flooded")
	if _, err := svc.Update(ctx, table.ID, domain.UpdateTableRequest{Status: &bad}); !domain.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
	occupied := domain.TableOccupied
	updated, err := svc.Update(ctx, table.ID, domain.UpdateTableRequest{Status: &occupied})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.TableOccupied {
		t.Errorf("status = %s, want occupied", updated.Status)
	}
}
