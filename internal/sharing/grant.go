package sharing

import (
	"errors"
	"time"
)

// Type names what a grant allows the grantee to do with the owner's data.
type Type string

const (
	// TypeWatchSession lets the grantee view the owner's training sessions
	TypeWatchSession Type = "watch_session"
	// TypeJointSession lets the grantee log sets into the owner's sessions
	TypeJointSession Type = "joint_session"
)

func (t Type) IsValid() bool {
	return t == TypeWatchSession || t == TypeJointSession
}

func (t Type) String() string {
	return string(t)
}

var (
	ErrInvalidType    = errors.New("invalid sharing type")
	ErrAlreadyGranted = errors.New("permission already granted")
	ErrGrantNotFound  = errors.New("grant not found")
	ErrSelfGrant      = errors.New("cannot grant permission to yourself")
)

// Grant is one sharing permission: the owner allows the grantee to perform
// Type-scoped actions on the owner's data.
type Grant struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"ownerId"`
	GranteeID int       `json:"granteeId"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
