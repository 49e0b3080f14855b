package wallet

import (
	"context"
	"errors"
	"testing"

	"coinshop/internal/domain"

	"github.com/stretchr/testify/assert"
)

type mockStore struct {
	users        map[uint]*domain.User
	items        map[uint]*domain.Item
	transactions []domain.Transaction
	purchases    []domain.Purchase
	lastTxID     uint
	lastPurchID  uint
}

func newMockStore() *mockStore {
	return &mockStore{
		users: make(map[uint]*domain.User),
		items: make(map[uint]*domain.Item),
	}
}

func (m *mockStore) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *mockStore) UpdateWallet(ctx context.Context, userID uint, balance float64) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Wallet = balance
	return nil
}

func (m *mockStore) GetItemByID(ctx context.Context, id uint) (*domain.Item, error) {
	if it, ok := m.items[id]; ok {
		copied := *it
		return &copied, nil
	}
	return nil, nil
}

func (m *mockStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	m.lastTxID++
	tx.ID = m.lastTxID
	tx.CreatedAt = int64(m.lastTxID) // monotonic, good enough for ordering
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *mockStore) CreatePurchase(ctx context.Context, p *domain.Purchase) error {
	m.lastPurchID++
	p.ID = m.lastPurchID
	m.purchases = append(m.purchases, *p)
	return nil
}

func (m *mockStore) ListPurchases(ctx context.Context, userID uint) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for i := len(m.purchases) - 1; i >= 0; i-- {
		if m.purchases[i].UserID == userID {
			out = append(out, m.purchases[i])
		}
	}
	return out, nil
}

func (m *mockStore) ListTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for i := len(m.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if m.transactions[i].UserID == userID {
			out = append(out, m.transactions[i])
		}
	}
	return out, nil
}

func newTestService(balance float64) (*Service, *mockStore) {
	store := newMockStore()
	store.users[1] = &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser, Wallet: balance}
	return NewService(store), store
}

func TestDepositInvalidAmount(t *testing.T) {
	svc, store := newTestService(1000)
	ctx := context.Background()

	for _, amount := range []float64{0, -5} {
		_, err := svc.Deposit(ctx, 1, amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, float64(1000), store.users[1].Wallet)
	assert.Empty(t, store.transactions)
}

func TestDepositCreditsBalanceAndLedger(t *testing.T) {
	svc, store := newTestService(1000)

	balance, err := svc.Deposit(context.Background(), 1, 250)
	assert.NoError(t, err)
	assert.Equal(t, float64(1250), balance)
	assert.Equal(t, float64(1250), store.users[1].Wallet)
	assert.Len(t, store.transactions, 1)
	assert.Equal(t, domain.TxDeposit, store.transactions[0].Type)
	assert.Equal(t, float64(250), store.transactions[0].Amount)
	assert.Equal(t, domain.TxCompleted, store.transactions[0].Status)
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	svc, store := newTestService(100)

	_, err := svc.Withdraw(context.Background(), 1, 150)
	var insufficient *InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, float64(150), insufficient.Required)
	assert.Equal(t, float64(100), insufficient.Balance)
	assert.Equal(t, float64(100), store.users[1].Wallet)
	assert.Empty(t, store.transactions)
}

func TestWithdrawDebitsExactAmount(t *testing.T) {
	svc, store := newTestService(1000)

	balance, err := svc.Withdraw(context.Background(), 1, 400)
	assert.NoError(t, err)
	assert.Equal(t, float64(600), balance)
	assert.Len(t, store.transactions, 1)
	assert.Equal(t, domain.TxWithdraw, store.transactions[0].Type)
	assert.Equal(t, float64(400), store.transactions[0].Amount)
}

func TestWithdrawUnknownUser(t *testing.T) {
	svc, _ := newTestService(1000)

	_, err := svc.Withdraw(context.Background(), 99, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPurchaseUnknownItem(t *testing.T) {
	svc, store := newTestService(1000)

	_, _, err := svc.Purchase(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, float64(1000), store.users[1].Wallet)
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.transactions)
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	svc, store := newTestService(200)
	store.items[7] = &domain.Item{ID: 7, Name: "Sword", Price: 300}

	_, _, err := svc.Purchase(context.Background(), 1, 7)
	var insufficient *InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, float64(300), insufficient.Required)
	assert.Equal(t, float64(200), insufficient.Balance)
	assert.Equal(t, float64(200), store.users[1].Wallet)
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.transactions)
}

func TestPurchaseSnapshotsItemPrice(t *testing.T) {
	svc, store := newTestService(1000)
	store.items[7] = &domain.Item{ID: 7, Name: "Sword", Price: 300}

	balance, purchase, err := svc.Purchase(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, float64(700), balance)
	assert.Equal(t, "Sword", purchase.ItemName)
	assert.Equal(t, float64(300), purchase.Price)
	assert.Len(t, store.purchases, 1)
	assert.Len(t, store.transactions, 1)
	assert.Equal(t, domain.TxPurchase, store.transactions[0].Type)
	if assert.NotNil(t, store.transactions[0].ItemID) {
		assert.Equal(t, uint(7), *store.transactions[0].ItemID)
	}

	// Repricing the item must not rewrite history
	store.items[7].Price = 999
	got, err := svc.Purchases(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, float64(300), got[0].Price)
}

func TestTransactionsCappedNewestFirst(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		_, err := svc.Deposit(ctx, 1, 1)
		assert.NoError(t, err)
	}

	txs, err := svc.Transactions(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, txs, 50)
	for i := 1; i < len(txs); i++ {
		assert.Greater(t, txs[i-1].CreatedAt, txs[i].CreatedAt)
	}
}

func TestWalletScenario(t *testing.T) {
	svc, store := newTestService(1000)
	store.items[1] = &domain.Item{ID: 1, Name: "Sword", Price: 300}
	ctx := context.Background()

	balance, _, err := svc.Purchase(ctx, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(700), balance)

	_, err = svc.Withdraw(ctx, 1, 800)
	var insufficient *InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficient)

	balance, err = svc.Withdraw(ctx, 1, 700)
	assert.NoError(t, err)
	assert.Equal(t, float64(0), balance)
}
