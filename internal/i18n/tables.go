package i18n

// tables maps language code → message key → template. Keys referenced by the
// validator and the handlers must exist at least in the "en" table; the
// lookup in T falls back to English for any gap in another language.
var tables = map[string]map[string]string{
	"en": {
		"error.vehicle_name_length":     "name must be between {min} and {max} characters",
		"error.efficiency_range":        "efficiency must be between {min} and {max} km/l",
		"error.category_unknown":        "unknown vehicle category",
		"error.initial_range":           "initial reading must be between 0 and {max} km",
		"error.final_range":             "final reading must be at most {max} km",
		"error.final_not_after_initial": "final reading must be greater than the initial reading",
		"error.trip_too_long":           "a single trip cannot exceed {max} km",
		"error.price_range":             "fuel price must be between {min} and {max}",
		"error.earnings_range":          "earnings must be between 0 and {max}",
		"error.vehicle_duplicate":       "a {category} named \"{name}\" already exists",
		"error.vehicle_not_found":       "vehicle not found",
		"error.confirm_required":        "confirmation is required to clear history",
		"error.storage_unavailable":     "storage is unavailable; nothing was saved",
		"error.storage_full":            "storage is full; nothing was saved",
		"error.storage_write":           "could not save; please try again",
		"error.language_unknown":        "unknown language",
		"error.invalid_request":         "invalid request",
		"import.not_object":             "backup file is not a valid backup document",
		"import.vehicles_invalid":       "vehicles section is malformed and was skipped",
		"import.history_invalid":        "history section is malformed and was skipped",
		"import.language_unknown":       "backup language is unsupported; keeping {language}",
		"category.car":                  "car",
		"category.car.plural":           "cars",
		"category.motorcycle":           "motorcycle",
		"category.motorcycle.plural":    "motorcycles",
	},
	"pt-BR": {
		"error.vehicle_name_length":     "o nome deve ter entre {min} e {max} caracteres",
		"error.efficiency_range":        "o consumo deve estar entre {min} e {max} km/l",
		"error.category_unknown":        "categoria de veículo desconhecida",
		"error.initial_range":           "o km inicial deve estar entre 0 e {max}",
		"error.final_range":             "o km final deve ser no máximo {max}",
		"error.final_not_after_initial": "o km final deve ser maior que o km inicial",
		"error.trip_too_long":           "uma viagem não pode exceder {max} km",
		"error.price_range":             "o preço do combustível deve estar entre {min} e {max}",
		"error.earnings_range":          "os ganhos devem estar entre 0 e {max}",
		"error.vehicle_duplicate":       "já existe um(a) {category} com o nome \"{name}\"",
		"error.vehicle_not_found":       "veículo não encontrado",
		"error.confirm_required":        "é necessário confirmar para limpar o histórico",
		"error.storage_unavailable":     "armazenamento indisponível; nada foi salvo",
		"error.storage_full":            "armazenamento cheio; nada foi salvo",
		"error.storage_write":           "não foi possível salvar; tente novamente",
		"error.language_unknown":        "idioma desconhecido",
		"error.invalid_request":         "requisição inválida",
		"import.not_object":             "o arquivo de backup não é um documento válido",
		"import.vehicles_invalid":       "a seção de veículos está corrompida e foi ignorada",
		"import.history_invalid":        "a seção de histórico está corrompida e foi ignorada",
		"import.language_unknown":       "idioma do backup não suportado; mantendo {language}",
		"category.car":                  "carro",
		"category.car.plural":           "carros",
		"category.motorcycle":           "moto",
		"category.motorcycle.plural":    "motos",
	},
}
