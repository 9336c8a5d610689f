package repositories

import "gorm.io/gorm"

// ErrNotFound is returned when a looked-up row does not exist
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when a unique constraint rejects a write
var ErrDuplicate = gorm.ErrDuplicatedKey
