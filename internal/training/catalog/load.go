package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

//go:embed catalog.yaml
var defaultCatalogFS embed.FS

const defaultCatalogFile = "catalog.yaml"

// Tables is the declarative source of a Catalog, one list per rule table.
type Tables struct {
	Version     int              `yaml:"version"`
	PrivacyUnit string           `yaml:"privacy_unit"`
	Tiers       []TierTable      `yaml:"tiers"`
	Programs    []ProgramTable   `yaml:"programs"`
	Roles       []RoleTable      `yaml:"roles"`
	Aliases     []AliasEntry     `yaml:"aliases"`
	EventTypes  []EventTypeEntry `yaml:"event_types"`
}

type TierTable struct {
	Tier  int         `yaml:"tier"`
	Units []UnitEntry `yaml:"units"`
}

type ProgramTable struct {
	ID            string      `yaml:"id"`
	Title         string      `yaml:"title"`
	ClearedByCore bool        `yaml:"cleared_by_core"`
	Units         []UnitEntry `yaml:"units"`
}

type RoleTable struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Programs []string       `yaml:"programs"`
	Addenda  []AddendumList `yaml:"addenda"`
}

// AddendumList holds role-specific units added to one program's requirements.
type AddendumList struct {
	Program string      `yaml:"program"`
	Units   []UnitEntry `yaml:"units"`
}

type UnitEntry struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Format string `yaml:"format"`
	// Blocking defaults to true outside tier 4 and false inside it.
	Blocking     *bool  `yaml:"blocking"`
	DeadlineDays int    `yaml:"deadline_days"`
	Program      string `yaml:"program"`
}

type AliasEntry struct {
	Retired string `yaml:"retired"`
	Current string `yaml:"current"`
}

type EventTypeEntry struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Program string `yaml:"program"`
}

// LoadDefault builds the catalog shipped with the binary.
func LoadDefault() (*Catalog, error) {
	data, err := defaultCatalogFS.ReadFile(defaultCatalogFile)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "read embedded catalog")
	}
	return Parse(data)
}

// LoadFile builds a catalog from a YAML file. An empty path falls back to the
// embedded default.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, fmt.Sprintf("read catalog %s", path))
	}
	return Parse(data)
}

// Parse decodes YAML tables and builds a validated catalog. Unknown fields are
// rejected so a misspelled key cannot silently drop a requirement.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tables Tables
	if err := dec.Decode(&tables); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dErrors.New(dErrors.CodeInvalidConfig, "catalog is empty")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "decode catalog")
	}
	return New(tables)
}
