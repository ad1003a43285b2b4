package octotable

type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDInt
	TypeIDFloat
	TypeIDBoolean
	TypeIDString
	TypeIDTime
	TypeIDDuration
	TypeIDList
)

func (t TypeID) String() string {
	switch t {
	case TypeIDNull:
		return "NULL"
	case TypeIDInt:
		return "Int"
	case TypeIDFloat:
		return "Float"
	case TypeIDBoolean:
		return "Boolean"
	case TypeIDString:
		return "String"
	case TypeIDTime:
		return "Time"
	case TypeIDDuration:
		return "Duration"
	case TypeIDList:
		return "List"
	}
	return "unknown"
}

// IsNumeric reports whether values of this type compare numerically with each other.
func (t TypeID) IsNumeric() bool {
	return t == TypeIDInt || t == TypeIDFloat
}
