// Package field provides persisted model field descriptors.
//
// CharField is the base descriptor of a bounded string column. ShortUUIDField
// builds on it and fills new records with a prefixed random short UUID:
//
//	f, err := field.ShortUUID("id", field.WithLength(10), field.WithPrefix("usr_"))
//	// f.MaxLength() == 14
//	// f.Default()   == "usr_" + 10 random symbols
//
// Every descriptor can describe its own configuration with Deconstruct so that
// schema migration tooling can store it and later rebuild an equivalent field
// with FromDeconstruction.
package field
