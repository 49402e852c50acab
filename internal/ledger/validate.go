package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidationErrors collects every problem found in one input.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// orNil keeps a nil error interface when nothing was collected.
func (errs ValidationErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Checker resolves references during validation. *Engine implements it.
type Checker interface {
	HasAccount(id string) bool
	HasPlatform(id string) bool
}

type validator struct {
	refs Checker
	errs ValidationErrors
}

func (v *validator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Description: fmt.Sprintf(format, args...)})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "is required")
	}
}

func (v *validator) date(field, value string) {
	if _, err := model.ParseDate(value); err != nil {
		v.fail(field, "must be a YYYY-MM-DD date, got %q", value)
	}
}

func (v *validator) account(field, accountID string) {
	if accountID == "" {
		v.fail(field, "is required")
		return
	}
	if !v.refs.HasAccount(accountID) {
		v.fail(field, "unknown account %q", accountID)
	}
}

func (v *validator) notNegative(field string, value decimal.Decimal) {
	if value.IsNegative() {
		v.fail(field, "must not be negative")
	}
}

// ValidateTransaction checks a manual transaction before it is posted.
// Amount sign is not checked; corrections may be negative.
func ValidateTransaction(tx model.Transaction, refs Checker) error {
	v := &validator{refs: refs}
	v.date("date", tx.Date)
	if !tx.Type.Valid() {
		v.fail("type", "unknown transaction type %q", tx.Type)
	}
	v.account("accountId", tx.SourceAccountID)

	switch {
	case tx.Type == model.TransactionTransfer:
		v.account("toAccountId", tx.DestinationAccountID)
		if tx.DestinationAccountID != "" && tx.DestinationAccountID == tx.SourceAccountID {
			v.fail("toAccountId", "must differ from the source account")
		}
	case tx.DestinationAccountID != "":
		v.fail("toAccountId", "only transfers have a destination account")
	}
	if tx.Type != model.TransactionTransfer {
		v.required("category", tx.Category)
	}
	if tx.OpeningBalance || tx.Category == model.CategoryOpeningBalance {
		v.fail("category", "opening balances are managed through the account")
	}
	return v.errs.orNil()
}

// ValidateAccount checks account fields.
func ValidateAccount(in AccountInput) error {
	v := &validator{}
	v.required("name", in.Name)
	if !in.Type.Valid() {
		v.fail("type", "unknown account type %q", in.Type)
	}
	return v.errs.orNil()
}

// ValidateInvestment checks a new investment.
func ValidateInvestment(in InvestmentInput, refs Checker) error {
	v := &validator{refs: refs}
	v.required("name", in.Name)
	v.date("date", in.Date)
	if !refs.HasPlatform(in.PlatformID) {
		v.fail("platformId", "unknown platform %q", in.PlatformID)
	}
	v.account("accountId", in.AccountID)
	v.notNegative("initialValue", in.InitialValue)
	v.notNegative("currentValue", in.CurrentValue)
	return v.errs.orNil()
}

// ValidateAsset checks a new asset. Funded purchases need a funding account.
func ValidateAsset(in AssetInput, funded bool, refs Checker) error {
	v := &validator{refs: refs}
	v.required("name", in.Name)
	if !in.Type.Valid() {
		v.fail("type", "unknown asset type %q", in.Type)
	}
	v.date("purchaseDate", in.PurchaseDate)
	if funded {
		v.account("accountId", in.AccountID)
	}
	v.notNegative("purchaseValue", in.PurchaseValue)
	v.notNegative("currentValue", in.CurrentValue)
	return v.errs.orNil()
}

// ValidateReceivable checks a new receivable.
func ValidateReceivable(in ReceivableInput, refs Checker) error {
	v := &validator{refs: refs}
	v.required("debtorName", in.DebtorName)
	v.date("dueDate", in.DueDate)
	v.account("accountId", in.AccountID)
	if !in.Amount.IsPositive() {
		v.fail("amount", "must be positive")
	}
	return v.errs.orNil()
}
