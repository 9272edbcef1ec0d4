package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const statementSchema = `{
	"type": "object",
	"required": ["metadata", "sections"],
	"properties": {
		"metadata": {
			"type": "object",
			"required": ["filename", "month", "year"],
			"properties": {
				"filename":   {"type": "string"},
				"title":      {"type": "string"},
				"author":     {"type": "string"},
				"month":      {"type": "string"},
				"year":       {"type": "string"},
				"page_count": {"type": "integer", "minimum": 0}
			}
		},
		"sections": {
			"type": "object",
			"required": ["receipts", "outlays"],
			"properties": {
				"receipts": {"$ref": "#/$defs/records"},
				"outlays":  {"$ref": "#/$defs/records"}
			}
		},
		"unparsable":  {"type": "boolean"},
		"placeholder": {"type": "boolean"}
	},
	"$defs": {
		"records": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["category", "this_period", "fiscal_year_to_date"],
				"properties": {
					"category":            {"type": "string", "minLength": 1},
					"this_period":         {"type": "number"},
					"fiscal_year_to_date": {"type": "number"},
					"prior_period":        {"type": "number"},
					"budget_estimate":     {"type": "number"}
				}
			}
		}
	}
}`

const departmentsSchema = `{
	"type": "object",
	"required": ["period", "departments"],
	"properties": {
		"period": {"type": "string"},
		"month":  {"type": "string"},
		"year":   {"type": "string"},
		"departments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["department", "this_month", "fiscal_year_to_date", "budget_estimate", "ratio_percentage"],
				"properties": {
					"department":          {"type": "string", "minLength": 1},
					"this_month":          {"type": "number"},
					"fiscal_year_to_date": {"type": "number"},
					"prior_period":        {"type": "number"},
					"budget_estimate":     {"type": "number"},
					"ratio_percentage":    {"type": "number"}
				}
			}
		}
	}
}`

// Validator checks artifacts against their JSON schemas before they are
// persisted, so a malformed artifact never reaches the store.
type Validator struct {
	statement   *jsonschema.Schema
	departments *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	statement, err := compileSchema("statement.json", statementSchema)
	if err != nil {
		return nil, err
	}
	departments, err := compileSchema("departments.json", departmentsSchema)
	if err != nil {
		return nil, err
	}
	return &Validator{statement: statement, departments: departments}, nil
}

func (v *Validator) ValidateStatement(data []byte) error {
	return validate(v.statement, data)
}

func (v *Validator) ValidateDepartments(data []byte) error {
	return validate(v.departments, data)
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

func validate(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal artifact: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("artifact does not match schema: %w", err)
	}
	return nil
}
