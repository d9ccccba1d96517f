package ast

// TypeKind identifies a generic scalar or container type tag.
type TypeKind int

// Generic type tags. Dialects map a subset of these to their own spelling;
// unmapped tags render with the default name from TypeKind.String.
const (
	TypeInvalid TypeKind = iota
	TypeTinyInt
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeBoolean
	TypeChar
	TypeVarchar
	TypeText
	TypeBinary
	TypeVarBinary
	TypeDate
	TypeTime
	TypeDateTime
	TypeTimestamp
	TypeTimestampTZ
	TypeJSON
	TypeJSONB
	TypeHStore
	TypeUUID
	TypeSerial
	TypeSmallSerial
	TypeBigSerial
	TypeArray
	TypePseudo // pseudo-types such as cstring
)

// typeNames holds the default spelling for each type tag.
var typeNames = map[TypeKind]string{
	TypeTinyInt:     "TINYINT",
	TypeSmallInt:    "SMALLINT",
	TypeInt:         "INT",
	TypeBigInt:      "BIGINT",
	TypeFloat:       "FLOAT",
	TypeDouble:      "DOUBLE",
	TypeDecimal:     "DECIMAL",
	TypeBoolean:     "BOOLEAN",
	TypeChar:        "CHAR",
	TypeVarchar:     "VARCHAR",
	TypeText:        "TEXT",
	TypeBinary:      "BINARY",
	TypeVarBinary:   "VARBINARY",
	TypeDate:        "DATE",
	TypeTime:        "TIME",
	TypeDateTime:    "DATETIME",
	TypeTimestamp:   "TIMESTAMP",
	TypeTimestampTZ: "TIMESTAMPTZ",
	TypeJSON:        "JSON",
	TypeJSONB:       "JSONB",
	TypeHStore:      "HSTORE",
	TypeUUID:        "UUID",
	TypeSerial:      "SERIAL",
	TypeSmallSerial: "SMALLSERIAL",
	TypeBigSerial:   "BIGSERIAL",
	TypeArray:       "ARRAY",
	TypePseudo:      "CSTRING",
}

// String returns the default spelling of the type tag.
func (t TypeKind) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupType returns the type tag for an upper-cased type name.
func LookupType(name string) (TypeKind, bool) {
	t, ok := typeKeywords[name]
	return t, ok
}

// typeKeywords maps upper-case generic type names to tags. Dialect-specific
// spellings (CHARACTER VARYING, SERIAL, ...) are resolved through the
// dialect's lexical rules before this fallback.
var typeKeywords = map[string]TypeKind{
	"TINYINT":     TypeTinyInt,
	"SMALLINT":    TypeSmallInt,
	"INT":         TypeInt,
	"INTEGER":     TypeInt,
	"BIGINT":      TypeBigInt,
	"FLOAT":       TypeFloat,
	"REAL":        TypeFloat,
	"DOUBLE":      TypeDouble,
	"DECIMAL":     TypeDecimal,
	"NUMERIC":     TypeDecimal,
	"BOOLEAN":     TypeBoolean,
	"BOOL":        TypeBoolean,
	"CHAR":        TypeChar,
	"VARCHAR":     TypeVarchar,
	"TEXT":        TypeText,
	"BINARY":      TypeBinary,
	"VARBINARY":   TypeVarBinary,
	"BYTEA":       TypeVarBinary,
	"DATE":        TypeDate,
	"TIME":        TypeTime,
	"DATETIME":    TypeDateTime,
	"TIMESTAMP":   TypeTimestamp,
	"TIMESTAMPTZ": TypeTimestampTZ,
	"JSON":        TypeJSON,
	"JSONB":       TypeJSONB,
	"HSTORE":      TypeHStore,
	"UUID":        TypeUUID,
	"SERIAL":      TypeSerial,
	"SMALLSERIAL": TypeSmallSerial,
	"BIGSERIAL":   TypeBigSerial,
	"ARRAY":       TypeArray,
}

// DataType represents a declared type, optionally parameterized
// (VARCHAR(20)) or nested (ARRAY of Elem).
type DataType struct {
	Type   TypeKind
	Params []Expr    // length/precision arguments
	Elem   *DataType // element type when Type == TypeArray
}

func (*DataType) exprNode() {}

// Kind implements Expr.
func (*DataType) Kind() Kind { return KindDataType }

// ConstraintKind identifies a column constraint.
type ConstraintKind int

// Column constraint kinds.
const (
	ConstraintAutoIncrement ConstraintKind = iota
	ConstraintGeneratedAsIdentity
	ConstraintNotNull
	ConstraintPrimaryKey
	ConstraintUnique
	ConstraintDefault
)

// String returns the constraint kind name for diagnostics.
func (c ConstraintKind) String() string {
	switch c {
	case ConstraintAutoIncrement:
		return "AUTO_INCREMENT"
	case ConstraintGeneratedAsIdentity:
		return "GENERATED AS IDENTITY"
	case ConstraintNotNull:
		return "NOT NULL"
	case ConstraintPrimaryKey:
		return "PRIMARY KEY"
	case ConstraintUnique:
		return "UNIQUE"
	case ConstraintDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// ColumnConstraint represents one constraint on a column definition.
type ColumnConstraint struct {
	Constraint ConstraintKind
	Always     bool // GENERATED ALWAYS vs BY DEFAULT
	Value      Expr // DEFAULT expression
}

func (*ColumnConstraint) exprNode() {}

// Kind implements Expr.
func (*ColumnConstraint) Kind() Kind { return KindColumnConstraint }

// ColumnDef represents a column definition inside CREATE TABLE.
// Constraint order is semantically significant.
type ColumnDef struct {
	Name        string
	Type        *DataType
	Constraints []*ColumnConstraint
}

func (*ColumnDef) exprNode() {}

// Kind implements Expr.
func (*ColumnDef) Kind() Kind { return KindColumnDef }

// HasConstraint reports whether the column carries a constraint of the
// given kind.
func (c *ColumnDef) HasConstraint(kind ConstraintKind) bool {
	return c.FindConstraint(kind) != nil
}

// FindConstraint returns the first constraint of the given kind, or nil.
func (c *ColumnDef) FindConstraint(kind ConstraintKind) *ColumnConstraint {
	for _, con := range c.Constraints {
		if con.Constraint == kind {
			return con
		}
	}
	return nil
}

// RemoveConstraint returns the constraint list without constraints of the
// given kind. The receiver is not modified.
func (c *ColumnDef) RemoveConstraint(kind ConstraintKind) []*ColumnConstraint {
	out := make([]*ColumnConstraint, 0, len(c.Constraints))
	for _, con := range c.Constraints {
		if con.Constraint != kind {
			out = append(out, con)
		}
	}
	return out
}
