package core

import "testing"

func TestKindFor(t *testing.T) {
	tests := []struct {
		tipo  string
		scope Scope
		want  Kind
	}{
		{"entrada", ScopeNegocio, IncomeBusiness},
		{"entrada", ScopePersonal, IncomePersonal},
		{"salida", "", ExpenseBusiness},
		{"personal-salida", "", ExpensePersonal},
		{"personal-entrada", ScopePersonal, IncomePersonal},
		{"", ScopeNegocio, KindUnknown},
		{"otro", ScopePersonal, KindUnknown},
	}
	for _, tt := range tests {
		if got := KindFor(tt.tipo, tt.scope); got != tt.want {
			t.Errorf("KindFor(%q, %q) = %q, want %q", tt.tipo, tt.scope, got, tt.want)
		}
	}
}

func TestKindScope(t *testing.T) {
	if IncomeBusiness.Scope() != ScopeNegocio || ExpenseBusiness.Scope() != ScopeNegocio {
		t.Fatal("business kinds must carry scope negocio")
	}
	if IncomePersonal.Scope() != ScopePersonal || ExpensePersonal.Scope() != ScopePersonal {
		t.Fatal("personal kinds must carry scope personal")
	}
	if KindUnknown.Scope() != ScopeNegocio {
		t.Fatal("unknown kinds default to the business ledger")
	}
}

func TestParseResultScope(t *testing.T) {
	tests := []struct {
		in   string
		want ResultScope
	}{
		{"negocio", ScopeBusiness},
		{"", ScopeBusiness},
		{"personal", ScopeAll},
		{"todas", ScopeAll},
		{"ALL", ScopeAll},
	}
	for _, tt := range tests {
		if got := ParseResultScope(tt.in); got != tt.want {
			t.Errorf("ParseResultScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Kind: IncomeBusiness, Amount: 1000, Method: Cash}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"unknown kind", Transaction{Kind: "ajuste", Amount: 1, Method: Cash}, ErrInvalidKind},
		{"negative amount", Transaction{Kind: IncomeBusiness, Amount: -1, Method: Cash}, ErrInvalidAmount},
		{"bad method", Transaction{Kind: IncomeBusiness, Amount: 1, Method: "cheque"}, ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tx.Validate(); err != tt.want {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
