package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldBusinessID    = "business_id"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldAmount        = "amount"
	FieldPayment       = "payment_method"
	FieldScope         = "scope"
	FieldPeriod        = "period"
	FieldBackend       = "backend"
	FieldQueue         = "queue"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentTransaction = "transaction"
	ComponentResults     = "results"
	ComponentStorage     = "storage"
	ComponentFirestore   = "firestore"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentCatalog     = "catalog"
	ComponentCache       = "cache"
	ComponentExport      = "export"
)
