package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

func setupCartMock(t *testing.T) (*PostgresCartRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCartRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCartItems_Empty(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items WHERE session_id = $1 ORDER BY added_at`)).
		WithArgs("session_1_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "product_name", "price", "quantity"}))

	items, err := repo.Items(context.Background(), "session_1_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCartInsertItem_TouchesCart(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO carts (session_id, updated_at) VALUES ($1, now())`)).
		WithArgs("session_1_abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_items (id, session_id, product_id, product_name, price, quantity)`)).
		WithArgs("i1", "session_1_abc", "p1", "Lamp", 19.99, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item := models.CartItem{ID: "i1", ProductID: "p1", ProductName: "Lamp", Price: 19.99, Quantity: 2}
	if err := repo.InsertItem(context.Background(), "session_1_abc", item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCartUpdateQuantity_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cart_items SET quantity = $3`)).
		WithArgs("session_1_abc", "missing", 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQuantity(context.Background(), "session_1_abc", "missing", 4)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCartDeleteItem_Success(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE session_id = $1 AND id = $2`)).
		WithArgs("session_1_abc", "i1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO carts (session_id, updated_at)`)).
		WithArgs("session_1_abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteItem(context.Background(), "session_1_abc", "i1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCartClear_Success(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE session_id = $1`)).
		WithArgs("session_1_abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Clear(context.Background(), "session_1_abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCartClear_Error(t *testing.T) {
	repo, mock, cleanup := setupCartMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE session_id = $1`)).
		WithArgs("session_1_abc").
		WillReturnError(errors.New("connection reset"))

	if err := repo.Clear(context.Background(), "session_1_abc"); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
