package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_period_engine/internal/utils/pagination"
)

// memStore is a map-backed implementation of every repository port. WithinTx restores the
// previous state when fn fails, so tests can assert all-or-nothing behaviour.
type memStore struct {
	mu          sync.Mutex
	accounts    map[string]domain.Account
	heads       map[string]domain.LedgerHead
	snapshots   map[domain.SnapshotKey]domain.MonthlyLedgerBalance
	txs         map[string]domain.Transaction
	booklets    map[string]domain.Booklet
	cheques     map[string]domain.Cheque
	corrections []domain.BalanceCorrection
	audit       []domain.AuditEntry

	// lockErrors fails FindLedgerHeadsByIDsForUpdate for the given head ids.
	lockErrors map[string]error
}

var (
	_ portsrepo.TransactionManager          = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.LedgerHeadRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.SnapshotRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.BookletRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.ChequeRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.CorrectionRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.AuditRepository             = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		accounts:   map[string]domain.Account{},
		heads:      map[string]domain.LedgerHead{},
		snapshots:  map[domain.SnapshotKey]domain.MonthlyLedgerBalance{},
		txs:        map[string]domain.Transaction{},
		booklets:   map[string]domain.Booklet{},
		cheques:    map[string]domain.Cheque{},
		lockErrors: map[string]error{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       s,
		AccountRepo:     s,
		LedgerHeadRepo:  s,
		SnapshotRepo:    s,
		TransactionRepo: s,
		BookletRepo:     s,
		ChequeRepo:      s,
		CorrectionRepo:  s,
		AuditRepo:       s,
	}
}

type memState struct {
	accounts    map[string]domain.Account
	heads       map[string]domain.LedgerHead
	snapshots   map[domain.SnapshotKey]domain.MonthlyLedgerBalance
	txs         map[string]domain.Transaction
	booklets    map[string]domain.Booklet
	cheques     map[string]domain.Cheque
	corrections []domain.BalanceCorrection
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBooklet(b domain.Booklet) domain.Booklet {
	b.AvailablePages = domain.PageSetOf(b.AvailablePages.Sorted())
	return b
}

func copyTx(t domain.Transaction) domain.Transaction {
	t.Items = append([]domain.TransactionItem(nil), t.Items...)
	return t
}

func (s *memStore) save() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	booklets := make(map[string]domain.Booklet, len(s.booklets))
	for k, b := range s.booklets {
		booklets[k] = copyBooklet(b)
	}
	return memState{
		accounts:    copyMap(s.accounts),
		heads:       copyMap(s.heads),
		snapshots:   copyMap(s.snapshots),
		txs:         copyMap(s.txs),
		booklets:    booklets,
		cheques:     copyMap(s.cheques),
		corrections: append([]domain.BalanceCorrection(nil), s.corrections...),
	}
}

func (s *memStore) restore(st memState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts, s.heads, s.snapshots = st.accounts, st.heads, st.snapshots
	s.txs, s.booklets, s.cheques, s.corrections = st.txs, st.booklets, st.cheques, st.corrections
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := s.save()
	if err := fn(ctx); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

// --- accounts ---

func (s *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return &a, nil
}

func (s *memStore) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.FindAccountByID(ctx, accountID)
}

func (s *memStore) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) UpdateAccountBalances(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; !ok {
		return apperrors.NewNotFoundError("account", account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

// --- ledger heads ---

func (s *memStore) FindLedgerHeadByID(_ context.Context, ledgerHeadID string) (*domain.LedgerHead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.heads[ledgerHeadID]
	if !ok {
		return nil, apperrors.NewNotFoundError("ledger head", ledgerHeadID)
	}
	return &h, nil
}

func (s *memStore) headsWhere(keep func(domain.LedgerHead) bool) []domain.LedgerHead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LedgerHead, 0)
	for _, h := range s.heads {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LedgerHeadID < out[j].LedgerHeadID })
	return out
}

func (s *memStore) ListLedgerHeadsByAccount(_ context.Context, accountID string) ([]domain.LedgerHead, error) {
	return s.headsWhere(func(h domain.LedgerHead) bool { return h.AccountID == accountID }), nil
}

func (s *memStore) ListLedgerHeadsByAccountForUpdate(ctx context.Context, accountID string) ([]domain.LedgerHead, error) {
	return s.ListLedgerHeadsByAccount(ctx, accountID)
}

func (s *memStore) ListAllLedgerHeads(_ context.Context) ([]domain.LedgerHead, error) {
	return s.headsWhere(func(domain.LedgerHead) bool { return true }), nil
}

func (s *memStore) SaveLedgerHead(_ context.Context, head domain.LedgerHead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heads[head.LedgerHeadID] = head
	return nil
}

func (s *memStore) UpdateLedgerHeadBalances(_ context.Context, heads []domain.LedgerHead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range heads {
		if _, ok := s.heads[h.LedgerHeadID]; !ok {
			return apperrors.NewNotFoundError("ledger head", h.LedgerHeadID)
		}
		s.heads[h.LedgerHeadID] = h
	}
	return nil
}

func (s *memStore) FindLedgerHeadsByIDsForUpdate(_ context.Context, ledgerHeadIDs []string) (map[string]domain.LedgerHead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.LedgerHead, len(ledgerHeadIDs))
	for _, id := range ledgerHeadIDs {
		if err := s.lockErrors[id]; err != nil {
			return nil, err
		}
		if h, ok := s.heads[id]; ok {
			out[id] = h
		}
	}
	return out, nil
}

// --- snapshots ---

func (s *memStore) FindSnapshot(_ context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("snapshot", key.Period.String())
	}
	return &snap, nil
}

func (s *memStore) ListSnapshotsByLedgerHead(_ context.Context, ledgerHeadID string, from *domain.Period) ([]domain.MonthlyLedgerBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MonthlyLedgerBalance, 0)
	for _, snap := range s.snapshots {
		if snap.LedgerHeadID != ledgerHeadID {
			continue
		}
		if from != nil && snap.Period().Before(*from) {
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period().Before(out[j].Period()) })
	return out, nil
}

func (s *memStore) FindLatestSnapshot(ctx context.Context, ledgerHeadID string) (*domain.MonthlyLedgerBalance, error) {
	all, _ := s.ListSnapshotsByLedgerHead(ctx, ledgerHeadID, nil)
	if len(all) == 0 {
		return nil, apperrors.NewNotFoundError("snapshot", ledgerHeadID)
	}
	latest := all[len(all)-1]
	return &latest, nil
}

func (s *memStore) FindOpenPeriod(_ context.Context, accountID string) (*domain.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range s.snapshots {
		if snap.AccountID == accountID && snap.IsOpen {
			p := snap.Period()
			return &p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("open period", accountID)
}

func (s *memStore) UpsertSnapshot(_ context.Context, snapshot domain.MonthlyLedgerBalance) (*domain.MonthlyLedgerBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.Key()
	if existing, ok := s.snapshots[key]; ok {
		snapshot.ID = existing.ID
		snapshot.CreatedAt, snapshot.CreatedBy = existing.CreatedAt, existing.CreatedBy
	}
	s.snapshots[key] = snapshot
	return &snapshot, nil
}

func (s *memStore) SetOpenPeriod(_ context.Context, accountID string, period domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, snap := range s.snapshots {
		if key.AccountID != accountID {
			continue
		}
		snap.IsOpen = key.Period == period
		s.snapshots[key] = snap
	}
	return nil
}

// --- transactions ---

func (s *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction", transactionID)
	}
	tx = copyTx(tx)
	return &tx, nil
}

func (s *memStore) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.FindTransactionByID(ctx, transactionID)
}

func (s *memStore) ListTransactionsByAccount(_ context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.Transaction, 0)
	for _, tx := range s.txs {
		if tx.AccountID == accountID {
			all = append(all, copyTx(tx))
		}
	}
	// Newest first, transaction id breaking ties, as the Postgres query orders them.
	newer := func(a, b domain.Transaction) bool {
		if !a.TxDate.Equal(b.TxDate) {
			return a.TxDate.After(b.TxDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	}
	sort.Slice(all, func(i, j int) bool { return newer(all[i], all[j]) })
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: %v", err)
		}
		last := domain.Transaction{TxDate: cursor.TxDate, TransactionID: cursor.TransactionID}
		last.CreatedAt = cursor.CreatedAt
		rest := all[:0]
		for _, tx := range all {
			if newer(last, tx) {
				rest = append(rest, tx)
			}
		}
		all = rest
	}
	if limit <= 0 || len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	tail := page[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{TxDate: tail.TxDate, CreatedAt: tail.CreatedAt, TransactionID: tail.TransactionID})
	return page, &token, nil
}

func (s *memStore) SumLedgerHeadActivity(_ context.Context, accountID, ledgerHeadID string, rng portsrepo.ActivityRange) (domain.BalanceDelta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total domain.BalanceDelta
	for _, tx := range s.txs {
		if tx.AccountID != accountID || !tx.AffectsBalances() {
			continue
		}
		if !tx.TxDate.Before(rng.To) || (rng.From != nil && tx.TxDate.Before(*rng.From)) {
			continue
		}
		for _, item := range tx.Items {
			if item.LedgerHeadID != nil && *item.LedgerHeadID == ledgerHeadID {
				total = total.Add(item.Delta(false))
			}
		}
	}
	return total, nil
}

func (s *memStore) ReceiptNumbersInUse(_ context.Context, bookletID string, excludeTransactionID string) (map[int]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := map[int]bool{}
	for id, tx := range s.txs {
		if id == excludeTransactionID || tx.BookletID == nil || tx.ReceiptNumber == nil {
			continue
		}
		if *tx.BookletID == bookletID {
			used[*tx.ReceiptNumber] = true
		}
	}
	return used, nil
}

func (s *memStore) SaveTransaction(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[tx.TransactionID]; ok {
		return apperrors.ErrDuplicate
	}
	s.txs[tx.TransactionID] = copyTx(tx)
	return nil
}

func (s *memStore) ReplaceTransaction(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[tx.TransactionID]; !ok {
		return apperrors.NewNotFoundError("transaction", tx.TransactionID)
	}
	s.txs[tx.TransactionID] = copyTx(tx)
	return nil
}

func (s *memStore) UpdateTransactionStatus(_ context.Context, transactionID string, status domain.TxStatus, actorID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[transactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	tx.Status = status
	tx.Touch(actorID, now)
	s.txs[transactionID] = tx
	return nil
}

func (s *memStore) DeleteTransaction(_ context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[transactionID]; !ok {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	delete(s.txs, transactionID)
	return nil
}

// --- booklets ---

func (s *memStore) SaveBooklet(_ context.Context, booklet domain.Booklet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booklets[booklet.BookletID] = copyBooklet(booklet)
	return nil
}

func (s *memStore) FindBookletByID(_ context.Context, bookletID string) (*domain.Booklet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.booklets[bookletID]
	if !ok {
		return nil, apperrors.NewNotFoundError("booklet", bookletID)
	}
	b = copyBooklet(b)
	return &b, nil
}

func (s *memStore) FindBookletByIDForUpdate(ctx context.Context, bookletID string) (*domain.Booklet, error) {
	return s.FindBookletByID(ctx, bookletID)
}

func (s *memStore) ListBookletsByAccount(_ context.Context, accountID string) ([]domain.Booklet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booklet, 0)
	for _, b := range s.booklets {
		if b.AccountID == accountID {
			out = append(out, copyBooklet(b))
		}
	}
	return out, nil
}

func (s *memStore) UpdateBookletPages(_ context.Context, booklet domain.Booklet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.booklets[booklet.BookletID]; !ok {
		return apperrors.NewNotFoundError("booklet", booklet.BookletID)
	}
	s.booklets[booklet.BookletID] = copyBooklet(booklet)
	return nil
}

// --- cheques ---

func (s *memStore) SaveCheque(_ context.Context, cheque domain.Cheque) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cheques[cheque.ChequeID] = cheque
	return nil
}

func (s *memStore) FindChequeByIDForUpdate(_ context.Context, chequeID string) (*domain.Cheque, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cheques[chequeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cheque", chequeID)
	}
	return &c, nil
}

func (s *memStore) FindChequeByTransactionID(_ context.Context, transactionID string) (*domain.Cheque, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cheques {
		if c.TransactionID == transactionID {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("cheque for transaction", transactionID)
}

func (s *memStore) UpdateChequeStatus(_ context.Context, cheque domain.Cheque) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cheques[cheque.ChequeID]; !ok {
		return apperrors.NewNotFoundError("cheque", cheque.ChequeID)
	}
	s.cheques[cheque.ChequeID] = cheque
	return nil
}

func (s *memStore) DeleteChequeByTransactionID(_ context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.cheques {
		if c.TransactionID == transactionID {
			delete(s.cheques, id)
			return nil
		}
	}
	return apperrors.NewNotFoundError("cheque for transaction", transactionID)
}

// --- corrections and audit ---

func (s *memStore) SaveCorrection(_ context.Context, correction domain.BalanceCorrection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corrections = append(s.corrections, correction)
	return nil
}

func (s *memStore) ListCorrectionsByLedgerHead(_ context.Context, ledgerHeadID string, limit int) ([]domain.BalanceCorrection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BalanceCorrection, 0)
	for i := len(s.corrections) - 1; i >= 0 && len(out) < limit; i-- {
		if s.corrections[i].LedgerHeadID == ledgerHeadID {
			out = append(out, s.corrections[i])
		}
	}
	return out, nil
}

func (s *memStore) SaveAuditEntry(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *memStore) auditActions() []domain.AuditAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditAction, len(s.audit))
	for i, e := range s.audit {
		out[i] = e.Action
	}
	return out
}
