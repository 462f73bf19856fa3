// Package hook connects short uuid field descriptors to GORM.
//
// A model declares a short uuid column with the shortuuid struct tag:
//
//	type User struct {
//		ID string `gorm:"primaryKey;size:14" shortuuid:"length:10;prefix:usr_"`
//	}
//
// Registering Plugin with db.Use fills such columns with a fresh value when a
// record is created without one. Supported tag keys are length, prefix,
// alphabet and dont_sort_alphabet. The gorm size is used as max_length.
package hook
