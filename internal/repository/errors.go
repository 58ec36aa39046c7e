package repository

import (
	"errors"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// uniqueKeys maps unique index names to the field reported to clients.
var uniqueKeys = map[string]string{
	"uk_user_username":           "username",
	"uk_user_email":              "email",
	"uk_event_category_event_id": "event_id",
	"uk_follow_pair":             "host",
	"uk_favourite_user_event":    "event_id",
	"uk_friend_pair":             "friend_id",
	"PRIMARY":                    "id",
}

// translate converts driver and gorm errors into the repository error set:
// record-not-found becomes util.ErrNotFound, duplicate keys become a
// duplicate ValidationError. Anything else is returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return model.NewDuplicateError(duplicateField(myErr.Message))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.NewDuplicateError("")
	}
	return err
}

func duplicateField(message string) string {
	// Duplicate entry 'x' for key 'user.uk_user_email'
	idx := strings.LastIndex(message, "for key '")
	if idx < 0 {
		return ""
	}
	key := strings.TrimSuffix(message[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return uniqueKeys[key]
}
