package core

import (
	"errors"
	"strings"
	"time"
)

// Kind values keep the wire strings used by both store generations so that
// normalized records can round-trip through either backend.
const (
	IncomeBusiness  Kind = "entrada"
	ExpenseBusiness Kind = "salida"
	IncomePersonal  Kind = "personal-entrada"
	ExpensePersonal Kind = "personal-salida"
	KindUnknown     Kind = ""
)

const (
	ScopeNegocio  Scope = "negocio"
	ScopePersonal Scope = "personal"
)

const (
	Cash        Method = "efectivo"
	SinpeMobile Method = "sinpe"
)

// ResultScope selects which ledger a results view covers. ScopeAll keeps
// every transaction, business and personal alike.
const (
	ScopeBusiness ResultScope = "negocio"
	ScopeAll      ResultScope = "todas"
)

type (
	Kind        string
	Scope       string
	Method      string
	ResultScope string

	// CatalogRef points a transaction at a catalog entry: a service for
	// income, an expense category for expenses.
	CatalogRef struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}

	// Transaction is the canonical in-memory record every aggregation
	// function operates on. Amount is always non-negative; the direction
	// of the movement is carried by Kind.
	Transaction struct {
		ID          string      `json:"id"`
		Kind        Kind        `json:"kind"`
		Amount      float64     `json:"amount"`
		Method      Method      `json:"method"`
		ServiceRef  *CatalogRef `json:"serviceRef,omitempty"`
		CategoryRef *CatalogRef `json:"categoryRef,omitempty"`
		Note        string      `json:"note,omitempty"`
		OccurredAt  time.Time   `json:"occurredAt"`
	}

	// Totals is the full reduction over a transaction collection. Cash and
	// Sinpe are net balances per payment method, not gross income.
	Totals struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		Balance      float64 `json:"balance"`
		Cash         float64 `json:"cash"`
		Sinpe        float64 `json:"sinpe"`
		Count        int     `json:"transactionCount"`
	}

	// Period is one calendar-month bucket, recomputed on every grouping
	// call and never persisted.
	Period struct {
		Year         int           `json:"year"`
		Month        int           `json:"month"`
		Label        string        `json:"label"`
		Transactions []Transaction `json:"transactions"`
	}

	PeriodTotals struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		Balance      float64 `json:"balance"`
	}

	// Service is a catalog entry offered by the business (a haircut, a
	// beard trim) that income transactions reference.
	Service struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Price  float64 `json:"price"`
		Scope  Scope   `json:"scope"`
		Active bool    `json:"active"`
	}

	// ExpenseCategory is a catalog entry expense transactions reference.
	ExpenseCategory struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Scope  Scope  `json:"scope"`
		Active bool   `json:"active"`
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrEmptyName     = errors.New("empty name")
)

// IsIncome reports whether the kind increases funds.
func (k Kind) IsIncome() bool {
	return k == IncomeBusiness || k == IncomePersonal
}

// IsExpense reports whether the kind decreases funds.
func (k Kind) IsExpense() bool {
	return k == ExpenseBusiness || k == ExpensePersonal
}

// Scope returns the ledger the kind belongs to. Unknown kinds default to
// the business ledger, matching how legacy records without a scope were
// always treated.
func (k Kind) Scope() Scope {
	if strings.HasPrefix(string(k), "personal") {
		return ScopePersonal
	}
	return ScopeNegocio
}

// Valid reports whether the kind is one of the four known variants.
func (k Kind) Valid() bool {
	return k.IsIncome() || k.IsExpense()
}

// KindFor combines the legacy two-axis representation (direction string plus
// scope) into a single kind.
func KindFor(tipo string, scope Scope) Kind {
	base := strings.TrimPrefix(tipo, "personal-")
	if scope == "" {
		if strings.HasPrefix(tipo, "personal") {
			scope = ScopePersonal
		} else {
			scope = ScopeNegocio
		}
	}
	switch base {
	case "entrada":
		if scope == ScopePersonal {
			return IncomePersonal
		}
		return IncomeBusiness
	case "salida":
		if scope == ScopePersonal {
			return ExpensePersonal
		}
		return ExpenseBusiness
	default:
		return KindUnknown
	}
}

// ParseMethod maps a raw payment-method string onto a known method. Anything
// unrecognized falls back to cash, the data-quality default.
func ParseMethod(s string) Method {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SinpeMobile):
		return SinpeMobile
	default:
		return Cash
	}
}

// ParseResultScope maps a query value onto a result scope. The original app
// labelled the all-scopes view "personal", so that spelling is accepted too.
func ParseResultScope(s string) ResultScope {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "personal", "todas", "all":
		return ScopeAll
	default:
		return ScopeBusiness
	}
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.Method != Cash && t.Method != SinpeMobile {
		return ErrInvalidMethod
	}
	return nil
}

func (s Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Price < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c ExpenseCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
