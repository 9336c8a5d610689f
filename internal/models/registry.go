package models

// All lists every persisted model in dependency order for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Story{},
		&Like{},
		&SavedPost{},
		&Comment{},
		&Message{},
		&Follow{},
		&Notification{},
	}
}
