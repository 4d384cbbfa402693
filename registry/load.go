package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/caribdigital/graphhansard/errors"
)

// registrySchema is the draft-07 JSON Schema the registry source must
// satisfy before unmarshalling. Structural problems surface with field
// paths instead of opaque decode errors.
const registrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["metadata", "entities"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["version"],
      "properties": {
        "version": {"type": "string", "minLength": 1}
      }
    },
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "legal_name", "common_name", "category", "affiliation", "status"],
        "properties": {
          "id": {"type": "string", "pattern": "^mp_[a-z0-9_]+$"},
          "legal_name": {"type": "string", "minLength": 1},
          "common_name": {"type": "string", "minLength": 1},
          "category": {"type": "string", "enum": ["participant", "control"]},
          "affiliation": {"type": "string", "minLength": 1},
          "status": {"type": "string", "enum": ["active", "former", "resigned", "deceased", "suspended"]},
          "role_tenures": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["title", "start_date"],
              "properties": {
                "title": {"type": "string", "minLength": 1},
                "start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
                "end_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}
              }
            }
          },
          "manual_aliases": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          }
        }
      }
    },
    "alias_collisions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["alias", "claimants", "resolution_strategy"],
        "properties": {
          "alias": {"type": "string", "minLength": 1},
          "claimants": {"type": "array", "items": {"type": "string"}, "minItems": 2},
          "resolution_strategy": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// Load reads and validates a registry source file. Any failure is fatal:
// no correct resolution is possible without a registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapFatal(errors.ErrRegistryNotFound, "Registry", "Load", path)
		}
		return nil, errors.WrapFatal(err, "Registry", "Load", "read source file")
	}
	return Parse(data)
}

// Parse validates and unmarshals a registry source document.
func Parse(data []byte) (*Registry, error) {
	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.WrapFatal(err, "Registry", "Parse", "schema validation")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "Parse",
			strings.Join(msgs, "; "))
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, errors.WrapFatal(err, "Registry", "Parse", "unmarshal source")
	}

	if err := reg.validate(); err != nil {
		return nil, err
	}

	reg.index()
	return &reg, nil
}

// validate enforces the invariants the schema cannot express: unique ids,
// parseable dates, and non-overlapping tenures per (entity, title).
func (r *Registry) validate() error {
	seen := make(map[string]bool, len(r.Entities))

	for i := range r.Entities {
		e := &r.Entities[i]

		if seen[e.ID] {
			return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
				fmt.Sprintf("duplicate entity id %q", e.ID))
		}
		seen[e.ID] = true

		if !e.Category.IsValid() {
			return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
				fmt.Sprintf("entity %s: unknown category %q", e.ID, e.Category))
		}
		if !e.Status.IsValid() {
			return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
				fmt.Sprintf("entity %s: unknown status %q", e.ID, e.Status))
		}

		byTitle := make(map[string][]RoleTenure)
		for _, rt := range e.RoleTenures {
			if _, err := rt.StartDate.Time(); err != nil {
				return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
					fmt.Sprintf("entity %s: bad start_date %q", e.ID, rt.StartDate))
			}
			if !rt.EndDate.IsZero() {
				if _, err := rt.EndDate.Time(); err != nil {
					return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
						fmt.Sprintf("entity %s: bad end_date %q", e.ID, rt.EndDate))
				}
				if !rt.StartDate.Before(rt.EndDate) {
					return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
						fmt.Sprintf("entity %s: tenure %q ends before it starts", e.ID, rt.Title))
				}
			}

			// Tenures for the same title on one entity must not overlap.
			// The same title held by different entities may overlap; that
			// is a collision, flagged by the alias index rather than
			// rejected here.
			for _, prev := range byTitle[rt.Title] {
				if rt.overlaps(prev) {
					return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
						fmt.Sprintf("entity %s: overlapping tenures for title %q", e.ID, rt.Title))
				}
			}
			byTitle[rt.Title] = append(byTitle[rt.Title], rt)
		}
	}

	for _, c := range r.Collisions {
		for _, claimant := range c.Claimants {
			if !seen[claimant] {
				return errors.WrapFatal(errors.ErrInvalidRegistry, "Registry", "validate",
					fmt.Sprintf("collision %q claims unknown entity %q", c.Alias, claimant))
			}
		}
	}

	return nil
}
