// Package schema describes the order map emitted by the task sheet engine and
// validates records against it before they are stored or returned.
package schema

import "github.com/joseph-ayodele/freight-orders/constants"

// BuildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
func BuildOrderJSONSchema() map[string]any {
	address := object(map[string]any{
		"company":        nullableString(),
		"title":          nullableString(),
		"street_address": nullableString(),
		"city":           nullableString(),
		"postal_code":    nullableString(),
		"country":        nullableString(),
	}, "company", "title", "street_address", "city", "postal_code", "country")

	window := object(map[string]any{
		"datetime_from": nullableInstant(),
		"datetime_to":   nullableInstant(), // absent when the window is a single instant
	}, "datetime_from")

	location := object(map[string]any{
		"company_address": address,
		"time":            window,
	}, "company_address", "time")

	cargo := object(map[string]any{
		"title":         nullableString(),
		"number":        map[string]any{"type": "string"},
		"package_count": map[string]any{"type": "number", "minimum": 0},
		"package_type":  nullableString(),
		"ldm":           nullableNumber(),
		"weight":        nullableNumber(),
	}, "title", "number", "package_count", "package_type", "ldm", "weight")

	details := object(map[string]any{
		"company":        map[string]any{"type": "string"},
		"company_code":   map[string]any{"type": "string"},
		"vat_code":       map[string]any{"type": "string"},
		"email":          map[string]any{"type": "string"},
		"contact_person": map[string]any{"type": "string"},
		"street_address": map[string]any{"type": "string"},
		"title":          map[string]any{"type": "string"},
		"city":           map[string]any{"type": "string"},
		"country":        map[string]any{"type": "string"},
		"postal_code":    map[string]any{"type": "string"},
		"comment":        map[string]any{"type": "string"},
	})

	customer := object(map[string]any{
		"side":    map[string]any{"type": "string", "minLength": 1},
		"details": details,
	}, "side", "details")

	container := object(map[string]any{
		"container_number":  nullableString(),
		"container_type":    map[string]any{"type": []string{"string", "null"}, "enum": append(stringsAny(constants.ContainerTypes), nil)},
		"booking_reference": nullableString(),
		"shipping_line":     nullableString(),
	})

	props := map[string]any{
		"customer":              customer,
		"attachment_filenames":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"loading_locations":     map[string]any{"type": "array", "items": location},
		"destination_locations": map[string]any{"type": "array", "items": location},
		"cargos":                map[string]any{"type": "array", "items": cargo, "minItems": 1, "maxItems": 1},
		"order_reference":       nullableString(),
		"transport_numbers":     map[string]any{"type": "string"},
		"freight_price":         nullableNumber(),
		"freight_currency":      nullableString(),
		"incoterms":             map[string]any{"type": "string", "pattern": incotermsPattern()},
		"container":             container,
	}

	return object(props,
		"customer", "attachment_filenames", "loading_locations", "destination_locations",
		"cargos", "order_reference", "transport_numbers", "freight_price", "freight_currency",
	)
}

func object(props map[string]any, required ...string) map[string]any {
	m := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func nullableString() map[string]any { return map[string]any{"type": []string{"string", "null"}} }
func nullableNumber() map[string]any { return map[string]any{"type": []string{"number", "null"}} }

func nullableInstant() map[string]any {
	return map[string]any{
		"type":    []string{"string", "null"},
		"pattern": `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`,
	}
}

// incotermsPattern accepts a comma-joined list of known terms.
func incotermsPattern() string {
	alt := ""
	for i, t := range constants.Incoterms {
		if i > 0 {
			alt += "|"
		}
		alt += t
	}
	return `^(` + alt + `)(,(` + alt + `))*$`
}

func stringsAny(in []string) []any {
	out := make([]any, 0, len(in)+1)
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
