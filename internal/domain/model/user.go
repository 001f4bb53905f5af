package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleBuyer     = "buyer"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"

	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

var validRoles = map[string]bool{RoleBuyer: true, RoleVolunteer: true, RoleAdmin: true}

var validUserStatuses = map[string]bool{UserStatusActive: true, UserStatusBlocked: true}

func IsValidRole(role string) bool { return validRoles[role] }

func IsValidUserStatus(status string) bool { return validUserStatuses[status] }

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL   string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	BloodGroup string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	District   string             `bson:"district,omitempty" json:"district,omitempty"`
	Upazila    string             `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Role       string             `bson:"role" json:"role"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserInput is a registration payload.
type UserInput struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photoURL"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// UserProfilePatch carries profile fields to overwrite; nil means unchanged.
type UserProfilePatch struct {
	Name       *string `json:"name,omitempty"`
	PhotoURL   *string `json:"photoURL,omitempty"`
	BloodGroup *string `json:"bloodGroup,omitempty"`
	District   *string `json:"district,omitempty"`
	Upazila    *string `json:"upazila,omitempty"`
}

func (p *UserProfilePatch) ToUpdate() map[string]interface{} {
	set := make(map[string]interface{})
	for key, v := range map[string]*string{
		"name":       p.Name,
		"photoURL":   p.PhotoURL,
		"bloodGroup": p.BloodGroup,
		"district":   p.District,
		"upazila":    p.Upazila,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	return set
}
