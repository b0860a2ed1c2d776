package firestore

import (
	"time"

	"barberia/internal/core"
)

// rawFromDoc lifts one Firestore document into the raw union shape. Both
// store generations wrote these documents, so every alias field is carried
// over when present and nothing is defaulted here.
func rawFromDoc(id string, data map[string]interface{}) core.RawRecord {
	raw := core.RawRecord{
		ID:          id,
		Type:        getString(data, "type"),
		Tipo:        getString(data, "tipo"),
		Scope:       getString(data, "scope"),
		Method:      getString(data, "method"),
		MetodoPago:  getString(data, "metodoPago"),
		ServiceID:   getString(data, "serviceId"),
		Servicio:    getString(data, "servicio"),
		CategoryID:  getString(data, "categoryId"),
		Categoria:   getString(data, "categoria"),
		Description: getString(data, "description"),
		Concepto:    getString(data, "concepto"),
		Fecha:       getString(data, "fecha"),
	}

	if v, ok := getFloatOK(data, "amount"); ok {
		raw.Amount = &v
	}
	if v, ok := getFloatOK(data, "precio"); ok {
		raw.Precio = &v
	}
	if v, ok := getFloatOK(data, "monto"); ok {
		raw.Monto = &v
	}
	if t, ok := getTime(data, "date"); ok {
		raw.Date = &t
	}
	if t, ok := getTime(data, "createdAt"); ok {
		raw.CreatedAt = &t
	}
	return raw
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func getStringDefault(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(data map[string]interface{}, key string) float64 {
	v, _ := getFloatOK(data, key)
	return v
}

// getFloatOK handles the numeric types the Firestore SDK can decode into.
func getFloatOK(data map[string]interface{}, key string) (float64, bool) {
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func getBoolDefault(data map[string]interface{}, key string, fallback bool) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return fallback
}

func getTime(data map[string]interface{}, key string) (time.Time, bool) {
	if v, ok := data[key].(time.Time); ok && !v.IsZero() {
		return v, true
	}
	return time.Time{}, false
}
