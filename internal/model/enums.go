package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidEnum is returned when a value is not in the configured set for its field.
var ErrInvalidEnum = errors.New("invalid enumeration value")

// Field names an enumerated column.
type Field string

const (
	FieldRole          Field = "role"
	FieldWalletType    Field = "walletType"
	FieldDifficulty    Field = "difficulty"
	FieldTaskType      Field = "taskType"
	FieldCheckinStatus Field = "checkinStatus"
	FieldVoucherStatus Field = "voucherStatus"
)

// Fields lists every enumerated field in a stable order.
var Fields = []Field{
	FieldRole,
	FieldWalletType,
	FieldDifficulty,
	FieldTaskType,
	FieldCheckinStatus,
	FieldVoucherStatus,
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type WalletType string

const (
	WalletEVM      WalletType = "evm"
	WalletMetaMask WalletType = "metamask"
	WalletPolkaVM  WalletType = "polkavm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type TaskType string

const (
	TaskPhoto    TaskType = "photo"
	TaskLocation TaskType = "location"
	TaskQuiz     TaskType = "quiz"
	TaskScan     TaskType = "scan"
)

type CheckinStatus string

const (
	CheckinPending  CheckinStatus = "pending"
	CheckinApproved CheckinStatus = "approved"
	CheckinRejected CheckinStatus = "rejected"
	CheckinFlagged  CheckinStatus = "flagged"
)

type VoucherStatus string

const (
	VoucherPending   VoucherStatus = "pending"
	VoucherMinting   VoucherStatus = "minting"
	VoucherMinted    VoucherStatus = "minted"
	VoucherCompleted VoucherStatus = "completed"
	VoucherFailed    VoucherStatus = "failed"
)

var defaultValues = map[Field][]string{
	FieldRole:          {string(RoleUser), string(RoleAdmin)},
	FieldWalletType:    {string(WalletEVM), string(WalletMetaMask), string(WalletPolkaVM)},
	FieldDifficulty:    {string(DifficultyEasy), string(DifficultyMedium), string(DifficultyHard)},
	FieldTaskType:      {string(TaskPhoto), string(TaskLocation), string(TaskQuiz), string(TaskScan)},
	FieldCheckinStatus: {string(CheckinPending), string(CheckinApproved), string(CheckinRejected), string(CheckinFlagged)},
	FieldVoucherStatus: {
		string(VoucherPending),
		string(VoucherMinting),
		string(VoucherMinted),
		string(VoucherCompleted),
		string(VoucherFailed),
	},
}

// Enums holds the allowed values for each enumerated field.
// An Enums is immutable once built and safe for concurrent use.
type Enums struct {
	sets map[Field]map[string]struct{}
}

// DefaultEnums returns the built-in value sets.
func DefaultEnums() *Enums {
	e, _ := NewEnums(nil)
	return e
}

// NewEnums builds the value sets, replacing the defaults for every field
// present in overrides. Unknown fields and empty sets are rejected.
func NewEnums(overrides map[Field][]string) (*Enums, error) {
	e := &Enums{sets: make(map[Field]map[string]struct{}, len(Fields))}
	for _, f := range Fields {
		e.sets[f] = toSet(defaultValues[f])
	}
	for f, values := range overrides {
		if _, ok := defaultValues[f]; !ok {
			return nil, fmt.Errorf("unknown enumeration field %q", f)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("enumeration %q: empty value set", f)
		}
		for _, v := range values {
			if v == "" {
				return nil, fmt.Errorf("enumeration %q: empty value", f)
			}
		}
		e.sets[f] = toSet(values)
	}
	return e, nil
}

// Check returns ErrInvalidEnum if value is not allowed for field.
func (e *Enums) Check(field Field, value string) error {
	set, ok := e.sets[field]
	if !ok {
		return fmt.Errorf("unknown enumeration field %q", field)
	}
	if _, ok := set[value]; !ok {
		return fmt.Errorf("%s %q: %w (allowed: %s)", field, value, ErrInvalidEnum, strings.Join(e.Values(field), ", "))
	}
	return nil
}

// Values returns the sorted allowed values for field.
func (e *Enums) Values(field Field) []string {
	values := make([]string, 0, len(e.sets[field]))
	for v := range e.sets[field] {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
