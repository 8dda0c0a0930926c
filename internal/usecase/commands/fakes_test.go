//go:build unit

package commands_test

import (
	"context"
	"time"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/usecase/commands"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// fakeStore is a single in-memory backing store shared by the fake unit of
// work, its transactions and its reads. No rollback simulation; failing tests
// assert on returned errors, not on store state.
type fakeStore struct {
	slotConfigs  map[promotion.Type]shared.SlotConfigSnapshot
	products     map[uuid.UUID]shared.ProductSnapshot
	shops        map[uuid.UUID]shared.ShopSnapshot
	promotions   map[uuid.UUID]shared.PromotionSnapshot
	invoices     map[uuid.UUID]shared.InvoiceSnapshot     // keyed by promotion ID
	transactions map[uuid.UUID]shared.TransactionSnapshot // keyed by transaction ID

	lockedKeys []string
	jobs       []fakeJob
}

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slotConfigs:  make(map[promotion.Type]shared.SlotConfigSnapshot),
		products:     make(map[uuid.UUID]shared.ProductSnapshot),
		shops:        make(map[uuid.UUID]shared.ShopSnapshot),
		promotions:   make(map[uuid.UUID]shared.PromotionSnapshot),
		invoices:     make(map[uuid.UUID]shared.InvoiceSnapshot),
		transactions: make(map[uuid.UUID]shared.TransactionSnapshot),
	}
}

func (s *fakeStore) seedProduct(merchantID, categoryID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.products[id] = shared.ProductSnapshot{ID: id, MerchantID: merchantID, CategoryID: categoryID, Name: "product"}
	return id
}

func (s *fakeStore) seedShop(merchantID, shopTypeID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.shops[id] = shared.ShopSnapshot{ID: id, MerchantID: merchantID, ShopTypeID: shopTypeID, Name: "shop"}
	return id
}

func (s *fakeStore) seedConfig(t promotion.Type, capacity int, charge int64) {
	s.slotConfigs[t] = shared.SlotConfigSnapshot{Type: t, DailyCapacity: capacity, DailyChargeCents: charge}
}

func (s *fakeStore) seedPromotion(t promotion.Type, status promotion.Status, start, end time.Time, productID, shopID *uuid.UUID, merchantID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.promotions[id] = shared.PromotionSnapshot{
		ID: id, Type: t, Status: status,
		StartDate: start, EndDate: end,
		ProductID: productID, ShopID: shopID,
		MerchantID: merchantID, UserID: uuid.New(),
	}
	return id
}

// --- shared.CommandReads ---

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) SlotConfigByType(_ context.Context, t promotion.Type) (*shared.SlotConfigSnapshot, error) {
	cfg, ok := r.store.slotConfigs[t]
	if !ok {
		return nil, notFound("slot config")
	}
	return &cfg, nil
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, notFound("product")
	}
	return &p, nil
}

func (r *fakeReads) ShopByID(_ context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	s, ok := r.store.shops[id]
	if !ok {
		return nil, notFound("shop")
	}
	return &s, nil
}

func (r *fakeReads) PromotionByID(_ context.Context, id uuid.UUID) (*shared.PromotionSnapshot, error) {
	p, ok := r.store.promotions[id]
	if !ok {
		return nil, notFound("promotion")
	}
	return &p, nil
}

func (r *fakeReads) InvoiceByPromotionID(_ context.Context, promotionID uuid.UUID) (*shared.InvoiceSnapshot, error) {
	inv, ok := r.store.invoices[promotionID]
	if !ok {
		return nil, notFound("invoice")
	}
	return &inv, nil
}

func (r *fakeReads) TransactionByInvoiceID(_ context.Context, invoiceID uuid.UUID) (*shared.TransactionSnapshot, error) {
	for _, txn := range r.store.transactions {
		if txn.InvoiceID == invoiceID {
			t := txn
			return &t, nil
		}
	}
	return nil, notFound("transaction")
}

func (r *fakeReads) TransactionByID(_ context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	txn, ok := r.store.transactions[id]
	if !ok {
		return nil, notFound("transaction")
	}
	return &txn, nil
}

func (r *fakeReads) OccupiedRanges(_ context.Context, t promotion.Type, scope shared.ScopeFilter, window promotion.DateRange) ([]promotion.DateRange, error) {
	var out []promotion.DateRange
	for _, p := range r.store.promotions {
		if p.Type != t || !p.Status.ConsumesCapacity() {
			continue
		}
		if !r.matchesScope(p, scope) {
			continue
		}
		dr, err := promotion.NewDateRange(p.StartDate, p.EndDate)
		if err != nil {
			return nil, err
		}
		if dr.Overlaps(window) {
			out = append(out, dr)
		}
	}
	return out, nil
}

func (r *fakeReads) matchesScope(p shared.PromotionSnapshot, scope shared.ScopeFilter) bool {
	switch {
	case scope.CategoryID != nil:
		if p.ProductID == nil {
			return false
		}
		prod, ok := r.store.products[*p.ProductID]
		return ok && prod.CategoryID == *scope.CategoryID
	case scope.ShopTypeID != nil:
		if p.ShopID == nil {
			return false
		}
		shop, ok := r.store.shops[*p.ShopID]
		return ok && shop.ShopTypeID == *scope.ShopTypeID
	default:
		return true
	}
}

// --- repositories ---

type fakePromotionRepo struct {
	store *fakeStore
}

func (r *fakePromotionRepo) Create(_ context.Context, p *promotion.Promotion) (uuid.UUID, error) {
	r.store.promotions[p.ID()] = shared.PromotionSnapshot{
		ID: p.ID(), Type: p.Type(), Status: p.Status(),
		StartDate: p.Dates().Start(), EndDate: p.Dates().End(),
		ProductID: p.ProductID(), ShopID: p.ShopID(),
		MerchantID: p.MerchantID(), UserID: p.UserID(),
	}
	return p.ID(), nil
}

func (r *fakePromotionRepo) UpdateDates(_ context.Context, id uuid.UUID, dates promotion.DateRange) error {
	p, ok := r.store.promotions[id]
	if !ok {
		return notFound("promotion")
	}
	p.StartDate = dates.Start()
	p.EndDate = dates.End()
	r.store.promotions[id] = p
	return nil
}

func (r *fakePromotionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status promotion.Status) error {
	p, ok := r.store.promotions[id]
	if !ok {
		return notFound("promotion")
	}
	p.Status = status
	r.store.promotions[id] = p
	return nil
}

type fakeBillingRepo struct {
	store *fakeStore
}

func (r *fakeBillingRepo) CreateInvoice(_ context.Context, inv *billing.Invoice) error {
	r.store.invoices[inv.PromotionID()] = shared.InvoiceSnapshot{
		ID: inv.ID(), PromotionID: inv.PromotionID(),
		AmountCents: inv.AmountCents(), Status: inv.Status(),
	}
	return nil
}

func (r *fakeBillingRepo) CreateTransaction(_ context.Context, txn *billing.Transaction) error {
	r.store.transactions[txn.ID()] = shared.TransactionSnapshot{
		ID: txn.ID(), InvoiceID: txn.InvoiceID(), PromotionID: txn.PromotionID(),
		AmountCents: txn.AmountCents(), Status: txn.Status(),
	}
	return nil
}

func (r *fakeBillingRepo) MarkInvoicePaid(_ context.Context, invoiceID uuid.UUID) error {
	for promoID, inv := range r.store.invoices {
		if inv.ID == invoiceID {
			inv.Status = billing.InvoicePaid
			r.store.invoices[promoID] = inv
			return nil
		}
	}
	return notFound("invoice")
}

func (r *fakeBillingRepo) MarkTransactionSucceeded(_ context.Context, transactionID uuid.UUID) error {
	txn, ok := r.store.transactions[transactionID]
	if !ok {
		return notFound("transaction")
	}
	txn.Status = billing.TransactionSucceeded
	r.store.transactions[transactionID] = txn
	return nil
}

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.store.jobs = append(r.store.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

// --- unit of work ---

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Promotions() shared.PromotionRepository {
	return &fakePromotionRepo{store: t.store}
}

func (t *fakeTx) Billing() shared.BillingRepository {
	return &fakeBillingRepo{store: t.store}
}

func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}

func (t *fakeTx) Reads() shared.CommandReads {
	return &fakeReads{store: t.store}
}

func (t *fakeTx) LockSlot(_ context.Context, key string) error {
	t.store.lockedKeys = append(t.store.lockedKeys, key)
	return nil
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

// --- payment gateway ---

type fakeGateway struct {
	url      string
	err      error
	requests []commands.PaymentRequest
}

func (g *fakeGateway) RequestPaymentURL(_ context.Context, req commands.PaymentRequest) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}
