package ledger

import (
	"fmt"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Effects returns the signed balance effect a transaction has on each wallet
// it touches, keyed by wallet ID. This is used in both services and
// repositories so create, update and delete all share one set of arithmetic:
//
//	INCOME   -> wallet += amount
//	EXPENSE  -> wallet -= amount
//	TRANSFER -> source -= amount, destination += amount
func Effects(txn domain.Transaction) (map[string]decimal.Decimal, error) {
	effects := make(map[string]decimal.Decimal, 2)
	switch txn.Type {
	case domain.Income:
		effects[txn.WalletID] = txn.Amount
	case domain.Expense:
		effects[txn.WalletID] = txn.Amount.Neg()
	case domain.Transfer:
		if txn.TransferToWalletID == nil {
			return nil, fmt.Errorf("transfer transaction %s has no destination wallet", txn.TransactionID)
		}
		effects[txn.WalletID] = txn.Amount.Neg()
		effects[*txn.TransferToWalletID] = effects[*txn.TransferToWalletID].Add(txn.Amount)
	default:
		return nil, fmt.Errorf("unknown transaction type '%s' for transaction %s", txn.Type, txn.TransactionID)
	}
	return effects, nil
}

// ReverseEffects returns the inverse of Effects: the deltas that undo the
// transaction's balance effect. Used by delete and by the reversal half of
// the update's reverse-then-apply sequence.
func ReverseEffects(txn domain.Transaction) (map[string]decimal.Decimal, error) {
	effects, err := Effects(txn)
	if err != nil {
		return nil, err
	}
	reversed := make(map[string]decimal.Decimal, len(effects))
	for walletID, delta := range effects {
		reversed[walletID] = delta.Neg()
	}
	return reversed, nil
}

// MergeEffects sums two effect maps into one, dropping zero entries. The
// update path merges the reversal of the old effect with the new effect so
// the repository can apply a single set of balance changes atomically.
func MergeEffects(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(a)+len(b))
	for walletID, delta := range a {
		merged[walletID] = delta
	}
	for walletID, delta := range b {
		merged[walletID] = merged[walletID].Add(delta)
	}
	for walletID, delta := range merged {
		if delta.IsZero() {
			delete(merged, walletID)
		}
	}
	return merged
}
