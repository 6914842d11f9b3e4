package extractor

import (
	"context"
	"seva/engine"
	"strconv"
	"strings"
)

// StubExtractor is a deterministic extractor reading labeled "Key: Value"
// lines, for local development and tests.
type StubExtractor struct{}

var stubFieldAliases = map[string]string{
	"name":              "full_name",
	"full name":         "full_name",
	"holder name":       "full_name",
	"dob":               "dob",
	"date of birth":     "dob",
	"id":                "id_number",
	"id number":         "id_number",
	"aadhaar":           "id_number",
	"aadhaar number":    "id_number",
	"enrollment":        "id_number",
	"enrollment number": "id_number",
	"income":            "income",
	"annual income":     "income",
}

func (s *StubExtractor) Extract(ctx context.Context, fileText, docName string) (engine.FieldRecord, error) {
	if err := ctx.Err(); err != nil {
		return engine.FieldRecord{}, err
	}
	if strings.TrimSpace(fileText) == "" {
		return engine.FieldRecord{}, ErrUnreadable
	}

	var record engine.FieldRecord
	for _, line := range strings.Split(fileText, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		field, ok := stubFieldAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		switch field {
		case "full_name":
			v := value
			record.FullName = &v
		case "dob":
			v := value
			record.DOB = &v
		case "id_number":
			v := value
			record.IDNumber = &v
		case "income":
			cleaned := strings.ReplaceAll(strings.ReplaceAll(value, ",", ""), "₹", "")
			if income, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64); err == nil {
				record.Income = &income
			}
		}
	}
	return record, nil
}
