// Package discovery builds the read-only registry that drives route
// generation: it scans source units for table-mapped models and validation
// schemas, matches them by key, and synthesizes schema sets for models that
// lack hand-written ones. The registry is populated once at startup and only
// read afterwards.
package discovery

import (
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/autocrud/autocrud/internal/spec"
	log "github.com/sirupsen/logrus"
)

// Decl is a single exported declaration from a source unit.
type Decl struct {
	Name  string // Declared identifier.
	Value any    // Declared value.
}

// SourceUnit lists the exported declarations of one source file. The unit
// name plays the role of the file stem: lowercased, it becomes the registry
// key and the route prefix.
type SourceUnit struct {
	Name  string
	Decls []Decl
}

// ModelEntry is a discovered table-mapped model.
type ModelEntry struct {
	Key       string         // Lowercased unit name.
	Model     any            // Pointer to the model struct.
	TableName string         // Mapped table name.
	ClassName string         // Declared identifier of the model.
	Parsed    *schema.Schema // Parsed column metadata.
}

// Role identifies the purpose of a schema within a set.
type Role string

// Schema roles recognized by the loader.
const (
	RoleCreate   Role = "create"
	RoleUpdate   Role = "update"
	RoleResponse Role = "response"
	RoleBase     Role = "base"
)

// requiredRoles must all be present for a discovered set to be used as-is.
var requiredRoles = []Role{RoleCreate, RoleUpdate, RoleResponse}

// roleMarkers is the ordered substring table for role bucketing. First match
// wins, so a name like "CreateOrUpdate" lands on create.
var roleMarkers = []struct {
	marker string
	role   Role
}{
	{"create", RoleCreate},
	{"update", RoleUpdate},
	{"response", RoleResponse},
	{"base", RoleBase},
}

// SchemaSet maps roles to validation schemas for one key.
type SchemaSet map[Role]*spec.Schema

// HasRequired reports whether the set holds all required roles.
func (s SchemaSet) HasRequired() bool {
	for _, role := range requiredRoles {
		if s[role] == nil {
			return false
		}
	}
	return true
}

// MatchedModel pairs a model with its full schema set. After Match, every
// matched model holds exactly one schema for each required role.
type MatchedModel struct {
	ModelEntry
	Schemas     SchemaSet
	Synthesized bool // Whether the set was synthesized from column metadata.
}

// tabler is the table-name capability of the ORM layer.
type tabler interface {
	TableName() string
}

// Loader discovers models and schemas and matches them by key.
type Loader struct {
	models  map[string]ModelEntry
	schemas map[string]SchemaSet
	cache   *sync.Map
	namer   schema.Namer
}

// NewLoader constructs an empty Loader.
func NewLoader() *Loader {
	return &Loader{
		models:  map[string]ModelEntry{},
		schemas: map[string]SchemaSet{},
		cache:   &sync.Map{},
		namer:   schema.NamingStrategy{},
	}
}

// DiscoverModels walks the units and registers every declaration that is
// table-mapped: it names a table and parses as an ORM model. The last
// qualifying declaration in a unit wins. A missing or empty unit list is a
// warning, not an error.
func (l *Loader) DiscoverModels(units []SourceUnit) {
	if len(units) == 0 {
		log.Warn("no model source units registered")
		return
	}
	for _, unit := range units {
		key := strings.ToLower(unit.Name)
		for _, decl := range unit.Decls {
			mapped, ok := decl.Value.(tabler)
			if !ok {
				continue
			}
			parsed, errParse := schema.Parse(decl.Value, l.cache, l.namer)
			if errParse != nil {
				log.WithError(errParse).Warnf("skipping model candidate %s in unit %s", decl.Name, unit.Name)
				continue
			}
			l.models[key] = ModelEntry{
				Key:       key,
				Model:     decl.Value,
				TableName: mapped.TableName(),
				ClassName: decl.Name,
				Parsed:    parsed,
			}
			log.Infof("found model %s -> /%ss", decl.Name, key)
		}
	}
}

// DiscoverSchemas walks the units and buckets every declared validation
// schema by role, keyed by the lowercased unit name. Declarations whose
// names match no role marker are ignored; units yielding no schemas register
// nothing.
func (l *Loader) DiscoverSchemas(units []SourceUnit) {
	if len(units) == 0 {
		log.Warn("no schema source units registered")
		return
	}
	for _, unit := range units {
		key := strings.ToLower(unit.Name)
		set := SchemaSet{}
		for _, decl := range unit.Decls {
			candidate, ok := decl.Value.(*spec.Schema)
			if !ok || candidate == nil {
				continue
			}
			if role, ok := roleOf(decl.Name); ok {
				set[role] = candidate
			}
		}
		if len(set) > 0 {
			l.schemas[key] = set
			log.Infof("found schemas for %s: %v", key, roleNames(set))
		}
	}
}

// roleOf resolves a declared name to a role by first substring match.
func roleOf(name string) (Role, bool) {
	lower := strings.ToLower(name)
	for _, entry := range roleMarkers {
		if strings.Contains(lower, entry.marker) {
			return entry.role, true
		}
	}
	return "", false
}

// roleNames returns the set's roles in a stable order for logging.
func roleNames(set SchemaSet) []Role {
	roles := make([]Role, 0, len(set))
	for _, entry := range roleMarkers {
		if set[entry.role] != nil {
			roles = append(roles, entry.role)
		}
	}
	return roles
}

// Match pairs every discovered model with a complete schema set. A
// discovered set with all required roles wins outright; anything less is
// replaced wholesale by a synthesized set. Results are ordered by key.
func (l *Loader) Match() []MatchedModel {
	matched := make([]MatchedModel, 0, len(l.models))
	for _, key := range l.modelKeys() {
		entry := l.models[key]
		if set, ok := l.schemas[key]; ok && set.HasRequired() {
			log.Infof("matched %s with existing schemas", key)
			matched = append(matched, MatchedModel{ModelEntry: entry, Schemas: set})
			continue
		}
		log.Infof("schemas for %s missing or incomplete, synthesizing", key)
		matched = append(matched, MatchedModel{
			ModelEntry:  entry,
			Schemas:     Synthesize(entry),
			Synthesized: true,
		})
	}
	return matched
}

// ModelValues returns the discovered model pointers ordered by key, for
// table migration.
func (l *Loader) ModelValues() []any {
	values := make([]any, 0, len(l.models))
	for _, key := range l.modelKeys() {
		values = append(values, l.models[key].Model)
	}
	return values
}

// ModelCount returns the number of discovered models.
func (l *Loader) ModelCount() int { return len(l.models) }

// SchemaSetCount returns the number of discovered schema sets.
func (l *Loader) SchemaSetCount() int { return len(l.schemas) }

// modelKeys returns the discovered model keys in sorted order.
func (l *Loader) modelKeys() []string {
	keys := make([]string, 0, len(l.models))
	for key := range l.models {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
