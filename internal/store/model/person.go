package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role is the rank of a committee member. A higher rank includes every lower one,
// so a chair is also a senior PC member and a PC member.
type Role int

const (
	RolePCMember Role = iota + 1
	RoleSeniorPCMember
	RoleChair
)

var roleNames = map[Role]string{
	RolePCMember:       "PC_MEMBER",
	RoleSeniorPCMember: "SENIOR_PC_MEMBER",
	RoleChair:          "CHAIR",
}

// ParseRole maps the role column of the "Program committee" sheet.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pc member":
		return RolePCMember, nil
	case "senior pc member":
		return RoleSeniorPCMember, nil
	case "chair":
		return RoleChair, nil
	}
	return 0, fmt.Errorf("unknown committee role %q", s)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r Role) Includes(other Role) bool {
	return r >= other
}

// Roles returns every role tag implied by r, lowest first.
func (r Role) Roles() []Role {
	roles := make([]Role, 0, int(r))
	for candidate := RolePCMember; candidate <= r && candidate <= RoleChair; candidate++ {
		roles = append(roles, candidate)
	}
	return roles
}

type Person struct {
	DomainID  uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	ID        int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
	FirstName string
	LastName  string
}

func (Person) TableName() string {
	return "persons"
}

func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CommitteeMember is keyed by the "member #" of the committee sheet.
type CommitteeMember struct {
	DomainID uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	ID       int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
	PersonID int       `gorm:"not null" validate:"gte=0"`
	Role     Role      `gorm:"not null" validate:"committee_role"`
}

type Author struct {
	DomainID uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	PersonID int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
}
