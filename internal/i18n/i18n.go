// Package i18n provides the user-facing message catalogs.
// Spanish is the product language; English is kept for development.
package i18n

import (
	"context"
	"strings"
)

type ctxKey string

const langCtxKey = ctxKey("lang")

// DefaultLang is used when no preference is detectable.
const DefaultLang = "es"

// WithLang stores the language preference in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langCtxKey, lang)
}

// LangFromContext extracts the language preference, defaulting to es.
func LangFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(langCtxKey).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, lang := range []string{"es", "en"} {
		if strings.HasPrefix(h, lang) || strings.Contains(h, ","+lang) || strings.Contains(h, " "+lang) {
			return lang
		}
	}
	return DefaultLang
}

var catalogs = map[string]map[string]string{
	"es": {
		"required":                 "Requerido",
		"destination_created":      "Destino creado exitosamente",
		"destination_updated":      "Destino actualizado",
		"destination_deleted":      "Destino eliminado",
		"destination_has_sales":    "No se puede eliminar: el destino tiene ventas asociadas",
		"excursion_created":        "Actividad agregada al itinerario",
		"excursion_updated":        "Actividad actualizada",
		"excursion_deleted":        "Actividad eliminada",
		"client_created":           "Cliente registrado",
		"client_updated":           "Cliente actualizado",
		"client_deleted":           "Cliente eliminado",
		"client_has_sales":         "No se puede eliminar: el cliente tiene ventas asociadas",
		"sale_created":             "Venta registrada",
		"sale_updated":             "Venta actualizada",
		"sale_deleted":             "Venta eliminada",
		"user_created":             "Usuario creado",
		"user_updated":             "Usuario actualizado",
		"user_deleted":             "Usuario eliminado",
		"user_has_sales":           "No se puede eliminar: el usuario tiene ventas asignadas",
		"images_uploaded":          "Imágenes subidas a la galería",
		"image_deleted":            "Imagen eliminada",
		"save_failed":              "Error al guardar los cambios",
		"delete_failed":            "Error al eliminar el registro",
		"load_failed":              "Error al cargar los datos",
		"permission_denied":        "Operación rechazada: verifique sus permisos",
		"deleted_marker":           "(Eliminado)",
		"validation_title":         "El título es obligatorio",
		"validation_name":          "El nombre es obligatorio",
		"validation_price":         "El precio debe ser mayor que cero",
		"confirm_delete":           "¿Eliminar este registro?",
		"confirm_delete_cascade":   "Se eliminarán también sus actividades e imágenes. ¿Continuar?",
		"login_failed":             "Credenciales inválidas",
		"voucher_title":            "Voucher de viaje",
		"voucher_client":           "Cliente",
		"voucher_passport":         "Pasaporte",
		"voucher_destination":      "Destino",
		"voucher_travel_date":      "Fecha de viaje",
		"voucher_return_date":      "Fecha de regreso",
		"voucher_status":           "Estado",
		"voucher_travelers":        "Viajeros",
		"voucher_adults":           "Adultos",
		"voucher_children":         "Niños",
		"voucher_hotel":            "Hotel",
		"voucher_confirmation":     "Confirmación",
		"voucher_itinerary":        "Itinerario",
		"voucher_day":              "Día",
		"voucher_includes":         "Incluye",
		"voucher_total":            "Total",
		"voucher_prepared_by":      "Preparado por",
		"voucher_emitted":          "Emitido el",
	},
	"en": {
		"required":               "Required",
		"destination_created":    "Destination created",
		"destination_updated":    "Destination updated",
		"destination_deleted":    "Destination deleted",
		"destination_has_sales":  "Cannot delete: destination has associated sales",
		"excursion_created":      "Activity added to itinerary",
		"excursion_updated":      "Activity updated",
		"excursion_deleted":      "Activity deleted",
		"client_created":         "Client registered",
		"client_updated":         "Client updated",
		"client_deleted":         "Client deleted",
		"client_has_sales":       "Cannot delete: client has associated sales",
		"sale_created":           "Sale recorded",
		"sale_updated":           "Sale updated",
		"sale_deleted":           "Sale deleted",
		"user_created":           "User created",
		"user_updated":           "User updated",
		"user_deleted":           "User deleted",
		"user_has_sales":         "Cannot delete: user has assigned sales",
		"images_uploaded":        "Gallery images uploaded",
		"image_deleted":          "Image deleted",
		"save_failed":            "Failed to save changes",
		"delete_failed":          "Failed to delete record",
		"load_failed":            "Failed to load data",
		"permission_denied":      "Operation rejected: check your permissions",
		"deleted_marker":         "(Deleted)",
		"validation_title":       "Title is required",
		"validation_name":        "Name is required",
		"validation_price":       "Price must be greater than zero",
		"confirm_delete":         "Delete this record?",
		"confirm_delete_cascade": "Its activities and images will also be deleted. Continue?",
		"login_failed":           "Invalid credentials",
		"voucher_title":          "Travel voucher",
		"voucher_client":         "Client",
		"voucher_passport":       "Passport",
		"voucher_destination":    "Destination",
		"voucher_travel_date":    "Travel date",
		"voucher_return_date":    "Return date",
		"voucher_status":         "Status",
		"voucher_travelers":      "Travelers",
		"voucher_adults":         "Adults",
		"voucher_children":       "Children",
		"voucher_hotel":          "Hotel",
		"voucher_confirmation":   "Confirmation",
		"voucher_itinerary":      "Itinerary",
		"voucher_day":            "Day",
		"voucher_includes":       "Included",
		"voucher_total":          "Total",
		"voucher_prepared_by":    "Prepared by",
		"voucher_emitted":        "Issued on",
	},
}

// T translates a message code. Unknown languages fall back to Spanish;
// unknown codes fall back to the code itself.
func T(lang, code string) string {
	cat, ok := catalogs[lang]
	if !ok {
		cat = catalogs[DefaultLang]
	}
	if msg, ok := cat[code]; ok {
		return msg
	}
	if lang != DefaultLang {
		if msg, ok := catalogs[DefaultLang][code]; ok {
			return msg
		}
	}
	return code
}
