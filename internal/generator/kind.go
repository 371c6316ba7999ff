package generator

// Kind is the closed set of semantic value kinds a column can generate.
// The dispatch from SQL type to Kind lives in the mapper; adding a new
// kind means adding a constant here and a case in ForKind.
type Kind string

const (
	KindInteger    Kind = "integer"
	KindFloat      Kind = "float"
	KindBoolean    Kind = "boolean"
	KindString     Kind = "string"
	KindText       Kind = "text"
	KindName       Kind = "name"
	KindFirstName  Kind = "first_name"
	KindLastName   Kind = "last_name"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindURL        Kind = "url"
	KindAddress    Kind = "address"
	KindCity       Kind = "city"
	KindCountry    Kind = "country"
	KindPostalCode Kind = "postal_code"
	KindDateTime   Kind = "datetime"
	KindDate       Kind = "date"
	KindUUID       Kind = "uuid"
	KindChoice     Kind = "choice"
	KindJSON       Kind = "json"
)

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInteger, KindFloat, KindBoolean, KindString, KindText,
		KindName, KindFirstName, KindLastName, KindEmail, KindPhone,
		KindURL, KindAddress, KindCity, KindCountry, KindPostalCode,
		KindDateTime, KindDate, KindUUID, KindChoice, KindJSON:
		return true
	}
	return false
}
