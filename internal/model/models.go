package model

// All lists every persisted entity, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Event{},
		&EventCategory{},
		&Post{},
		&Comment{},
		&Favourite{},
		&Friend{},
		&Purchase{},
		&Follow{},
		&Story{},
		&Review{},
		&Reaction{},
	}
}
