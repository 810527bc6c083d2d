// Package specdb holds the static, immutable reference tables a TDL
// document is validated against: Network Participation Groups, J-message
// definitions, Link-16/Link-22 roles, platform types, and the small closed
// enums (classification levels, Link-22 operating modes and data rates).
// Every table is built once at init time and never mutated afterward, so
// a *DB may be shared freely across concurrent analyze calls.
//
// Each record family is a fixed map of records plus an id-set lookup,
// covering the five record families a TDL document cross-references.
package specdb

import "strconv"

// NPG is a Network Participation Group: a logical Link-16 channel.
type NPG struct {
	ID            string
	Name          string
	Number        int
	Description   string
	ValidMessages []string // J-message IDs carried on this NPG
	SpecRef       string
}

// JMessage is a Link-16 message format definition, identified like "J3/2".
type JMessage struct {
	ID             string
	Name           string
	FunctionalArea string
	Description    string
	Fields         []string
	ValidNPGs      []string
	SpecRef        string
}

// Role is a terminal (Link-16) or member (Link-22) role.
type Role struct {
	ID          string
	Name        string
	Description string
	SpecRef     string
}

// PlatformType is a declared platform-type identifier.
type PlatformType struct {
	ID          string
	Name        string
	Description string
}

// DB is the immutable, process-wide spec database. The zero value is
// never used; callers obtain the shared instance via Default().
type DB struct {
	npgs          map[string]NPG
	jMessages     map[string]JMessage
	link16Roles   map[string]Role
	link22Roles   map[string]Role
	platformTypes map[string]PlatformType

	classifications map[string]bool
	operatingModes  map[string]bool
	dataRates       map[string]bool
}

var def = buildDefault()

// Default returns the shared, build-time spec database instance.
func Default() *DB { return def }

// NPG looks up an NPG by ID.
func (db *DB) NPG(id string) (NPG, bool) {
	n, ok := db.npgs[id]
	return n, ok
}

// IsNPG reports whether id names a declared NPG.
func (db *DB) IsNPG(id string) bool {
	_, ok := db.npgs[id]
	return ok
}

// JMessage looks up a J-message definition by ID.
func (db *DB) JMessage(id string) (JMessage, bool) {
	m, ok := db.jMessages[id]
	return m, ok
}

// IsJMessage reports whether id names a declared J-message.
func (db *DB) IsJMessage(id string) bool {
	_, ok := db.jMessages[id]
	return ok
}

// IsLink16Role reports whether id names a declared Link-16 role.
func (db *DB) IsLink16Role(id string) bool {
	_, ok := db.link16Roles[id]
	return ok
}

// IsLink22Role reports whether id names a declared Link-22 role.
func (db *DB) IsLink22Role(id string) bool {
	_, ok := db.link22Roles[id]
	return ok
}

// IsPlatformType reports whether id names a declared platform type.
func (db *DB) IsPlatformType(id string) bool {
	_, ok := db.platformTypes[id]
	return ok
}

// IsClassification reports whether id names a declared classification
// level.
func (db *DB) IsClassification(id string) bool {
	return db.classifications[id]
}

// IsOperatingMode reports whether id names a declared Link-22 operating
// mode.
func (db *DB) IsOperatingMode(id string) bool {
	return db.operatingModes[id]
}

// IsDataRate reports whether id names a declared Link-22 data rate.
func (db *DB) IsDataRate(id string) bool {
	return db.dataRates[id]
}

func buildDefault() *DB {
	db := &DB{
		npgs:          map[string]NPG{},
		jMessages:     map[string]JMessage{},
		link16Roles:   map[string]Role{},
		link22Roles:   map[string]Role{},
		platformTypes: map[string]PlatformType{},
		classifications: map[string]bool{
			"UNCLASSIFIED": true, "CONFIDENTIAL": true, "SECRET": true, "TOP_SECRET": true,
		},
		operatingModes: map[string]bool{
			"NetSlotted": true, "Contention": true, "Hybrid": true,
		},
		dataRates: map[string]bool{
			"Low": true, "Medium": true, "High": true,
		},
	}

	for _, n := range npgTable {
		db.npgs[n.ID] = n
	}
	for _, m := range jMessageTable {
		db.jMessages[m.ID] = m
	}
	for _, r := range link16RoleTable {
		db.link16Roles[r.ID] = r
	}
	for _, r := range link22RoleTable {
		db.link22Roles[r.ID] = r
	}
	for _, p := range platformTypeTable {
		db.platformTypes[p.ID] = p
	}
	return db
}

var link16RoleTable = []Role{
	{ID: "NetControlStation", Name: "Net Control Station", Description: "Controls net timing and initialization.", SpecRef: "MIL-STD-6016 §5.2"},
	{ID: "Participant", Name: "Participant", Description: "General participating terminal.", SpecRef: "MIL-STD-6016 §5.2"},
	{ID: "ForwardTell", Name: "Forward Tell", Description: "Relays track data to a non-participating network.", SpecRef: "MIL-STD-6016 §5.3"},
	{ID: "Relay", Name: "Relay", Description: "Extends net range by relaying time slots.", SpecRef: "MIL-STD-6016 §5.3"},
}

var link22RoleTable = []Role{
	{ID: "Controller", Name: "Controller", Description: "Manages super-network slot allocation.", SpecRef: "STANAG 5522 §4.1"},
	{ID: "Participant", Name: "Participant", Description: "General participating member.", SpecRef: "STANAG 5522 §4.1"},
}

var platformTypeTable = []PlatformType{
	{ID: "Aircraft", Name: "Aircraft", Description: "Airborne platform."},
	{ID: "Ship", Name: "Ship", Description: "Surface vessel."},
	{ID: "Submarine", Name: "Submarine", Description: "Subsurface vessel."},
	{ID: "GroundStation", Name: "Ground Station", Description: "Fixed or mobile ground installation."},
	{ID: "Satellite", Name: "Satellite", Description: "Space-based relay platform."},
}

var npgTable = buildNPGTable()

func buildNPGTable() []NPG {
	named := []NPG{
		{ID: "NPG_A", Name: "Initial Entry", Number: 1, Description: "Net entry and initialization.", SpecRef: "MIL-STD-6016 §5.4"},
		{ID: "NPG_B", Name: "PPLI - Air/Space", Number: 2, Description: "Precise participant location and identification for air and space tracks.", SpecRef: "MIL-STD-6016 §5.4"},
	}
	// NPG_2 .. NPG_27 are the remaining numbered channels. Only NPG_6,
	// NPG_7, NPG_9 and NPG_10 list any J-messages (see assoc below); the
	// rest carry none.
	for n := 2; n <= 27; n++ {
		named = append(named, NPG{
			ID:          numberedID("NPG", n),
			Name:        numberedID("Network Participation Group", n),
			Number:      n,
			Description: "General-purpose numbered network participation group.",
			SpecRef:     "MIL-STD-6016 §5.4",
		})
	}
	// Wire specific message associations, the mirror image of each
	// JMessage's ValidNPGs. The message-npg-match rule reads ValidNPGs, not
	// these lists.
	assoc := map[string][]string{
		"NPG_6":  {"J3/5"},
		"NPG_7":  {"J3/2"},
		"NPG_9":  {"J3/2", "J7/1"},
		"NPG_10": {"J3/5"},
	}
	for i, n := range named {
		if msgs, ok := assoc[n.ID]; ok {
			named[i].ValidMessages = msgs
		}
	}
	return named
}

func numberedID(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}

var jMessageTable = []JMessage{
	{
		ID: "J3/2", Name: "Air Track", FunctionalArea: "Surveillance",
		Description: "Reports position and status of an airborne track.",
		Fields:      []string{"track_number", "position", "altitude", "identity"},
		ValidNPGs:   []string{"NPG_7", "NPG_9"},
		SpecRef:     "MIL-STD-6016 §J3.2",
	},
	{
		ID: "J3/5", Name: "Surface Track", FunctionalArea: "Surveillance",
		Description: "Reports position and status of a surface track.",
		Fields:      []string{"track_number", "position", "identity"},
		ValidNPGs:   []string{"NPG_6", "NPG_10"},
		SpecRef:     "MIL-STD-6016 §J3.5",
	},
	{
		ID: "J7/1", Name: "Track Management", FunctionalArea: "Track Management",
		Description: "Correlates or drops a track.",
		Fields:      []string{"track_number", "management_action"},
		ValidNPGs:   []string{"NPG_9"},
		SpecRef:     "MIL-STD-6016 §J7.1",
	},
}
