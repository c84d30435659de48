package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Zeshanxviii/attendance-system/models"
)

// UserAccount is the persisted identity row behind the resolver.
type UserAccount struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"index" json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

func CreateUser(user models.User) error {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	row := UserAccount{ID: user.ID, Email: user.Email, Role: string(user.Role), Name: user.Name}
	return GORMDB.Create(&row).Error
}

func GetUser(id string) (models.User, error) {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	var row UserAccount
	err := GORMDB.Where("id = ?", id).First(&row).Error
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: row.ID, Email: row.Email, Role: models.Role(row.Role), Name: row.Name}, nil
}

func CountUsers() (int64, error) {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	var n int64
	err := GORMDB.Model(&UserAccount{}).Count(&n).Error
	return n, err
}

// Resolver is the production models.IdentityResolver, backed by the
// sqlite user store.
type Resolver struct{}

func (Resolver) Resolve(userID string) (models.User, bool) {
	if userID == "" {
		return models.User{}, false
	}
	user, err := GetUser(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Failed to resolve user:", err)
		}
		return models.User{}, false
	}
	return user, true
}
