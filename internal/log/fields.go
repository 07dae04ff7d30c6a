package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldCounterparty  = "counterparty"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldBalance       = "balance"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentBackend = "backend"
	ComponentConsole = "console"
)

// Operations defines standard operation names
const (
	OpRecordExpense = "record_expense"
	OpRecordIncome  = "record_income"
	OpJournal       = "journal"
	OpPublish       = "publish"
	OpSummary       = "weekly_summary"
	OpHistory       = "history"
	OpShutdown      = "shutdown"
	OpStartup       = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNetwork       = "network_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error fields
func (f LogFields) WithError(err error, errorType string) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = errorType
	}
	return f
}

// WithTransaction adds transaction-related fields. Amounts are logged as
// decimal strings.
func (f LogFields) WithTransaction(id, kind, counterparty, category, amount string) LogFields {
	f[FieldTransactionID] = id
	f[FieldKind] = kind
	f[FieldCounterparty] = counterparty
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

// WithBalance adds the running balance
func (f LogFields) WithBalance(balance string) LogFields {
	f[FieldBalance] = balance
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
