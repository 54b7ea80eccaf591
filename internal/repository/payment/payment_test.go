package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/repository/repotest"
)

func TestPostgres_SettleMarksOrderPaid(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	userID := repotest.InsertUser(t, pool, "payer@example.com")
	orderID := repotest.InsertOrder(t, pool, userID, 25000, 4500)
	repo := NewPostgres(pool, nil)

	tx := "tx-1"
	p, err := repo.Settle(ctx, NewPayment{OrderID: orderID, Method: "card", TransactionID: &tx})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	assert.Equal(t, domain.Cents(29500), p.Amount)
	require.NotNil(t, p.Order)
	assert.Equal(t, domain.OrderPaid, p.Order.Status)
	require.NotNil(t, p.Order.User)
	assert.Equal(t, "payer@example.com", p.Order.User.Email)
}

func TestPostgres_SettleTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	userID := repotest.InsertUser(t, pool, "twice@example.com")
	orderID := repotest.InsertOrder(t, pool, userID, 100, 8)
	repo := NewPostgres(pool, nil)

	_, err := repo.Settle(ctx, NewPayment{OrderID: orderID, Method: "card"})
	require.NoError(t, err)
	_, err = repo.Settle(ctx, NewPayment{OrderID: orderID, Method: "card"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	var status string
	require.NoError(t, pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status))
	assert.Equal(t, "PAID", status)
}

func TestPostgres_ConcurrentSettleRecordsOnePayment(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	userID := repotest.InsertUser(t, pool, "race@example.com")
	orderID := repotest.InsertOrder(t, pool, userID, 100, 8)
	repo := NewPostgres(pool, nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Settle(ctx, NewPayment{OrderID: orderID, Method: "card"})
			switch {
			case err == nil:
				mu.Lock()
				succeeded++
				mu.Unlock()
			case !errors.Is(err, domain.ErrAlreadyExists):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE order_id = $1`, orderID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPostgres_SettleRejectsCancelledAndMissing(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	userID := repotest.InsertUser(t, pool, "cancel@example.com")
	orderID := repotest.InsertOrder(t, pool, userID, 100, 8)
	_, err := pool.Exec(ctx, `UPDATE orders SET status = 'CANCELLED' WHERE id = $1`, orderID)
	require.NoError(t, err)
	repo := NewPostgres(pool, nil)

	_, err = repo.Settle(ctx, NewPayment{OrderID: orderID, Method: "card"})
	require.ErrorIs(t, err, ErrNotPayable)

	_, err = repo.Settle(ctx, NewPayment{OrderID: "00000000-0000-0000-0000-000000000000", Method: "card"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_ListByStatus(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	userID := repotest.InsertUser(t, pool, "list@example.com")
	repo := NewPostgres(pool, nil)
	for i := 0; i < 3; i++ {
		_, err := repo.Settle(ctx, NewPayment{OrderID: repotest.InsertOrder(t, pool, userID, 100, 8), Method: "card"})
		require.NoError(t, err)
	}

	completed, err := repo.List(ctx, ListFilter{Status: domain.PaymentCompleted, Page: domain.PageRequest{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, completed.Pagination.Total)
	assert.Len(t, completed.Items, 2)

	failed, err := repo.List(ctx, ListFilter{Status: domain.PaymentFailed})
	require.NoError(t, err)
	assert.Empty(t, failed.Items)

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
