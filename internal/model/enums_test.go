package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultEnums(t *testing.T) {
	e := DefaultEnums()

	tests := []struct {
		field Field
		value string
		ok    bool
	}{
		{FieldRole, "user", true},
		{FieldRole, "admin", true},
		{FieldRole, "root", false},
		{FieldWalletType, "evm", true},
		{FieldWalletType, "polkavm", true},
		{FieldDifficulty, "medium", true},
		{FieldDifficulty, "Medium", false},
		{FieldTaskType, "photo", true},
		{FieldTaskType, "quiz", true},
		{FieldTaskType, "scan", true},
		{FieldCheckinStatus, "approved", true},
		{FieldCheckinStatus, "flagged", true},
		{FieldCheckinStatus, "", false},
		{FieldVoucherStatus, "minted", true},
		{FieldVoucherStatus, "minting", true},
		{FieldVoucherStatus, "completed", true},
		{FieldVoucherStatus, "burned", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.value, func(t *testing.T) {
			err := e.Check(tt.field, tt.value)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidEnum) {
				t.Errorf("got %v, want ErrInvalidEnum", err)
			}
		})
	}
}

func TestNewEnumsOverride(t *testing.T) {
	e, err := NewEnums(map[Field][]string{
		FieldCheckinStatus: {"verified", "pending"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := e.Values(FieldCheckinStatus), []string{"pending", "verified"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if err := e.Check(FieldCheckinStatus, "approved"); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("replaced value still accepted: %v", err)
	}
	if err := e.Check(FieldRole, "admin"); err != nil {
		t.Errorf("untouched field changed: %v", err)
	}
}

func TestNewEnumsErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[Field][]string
	}{
		{"unknown field", map[Field][]string{"colour": {"red"}}},
		{"empty set", map[Field][]string{FieldRole: {}}},
		{"empty value", map[Field][]string{FieldRole: {"user", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEnums(tt.overrides); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestCheckUnknownField(t *testing.T) {
	err := DefaultEnums().Check("colour", "red")
	if err == nil || errors.Is(err, ErrInvalidEnum) {
		t.Errorf("got %v, want unknown field error", err)
	}
}

func TestInvalidEnumListsAllowedValues(t *testing.T) {
	err := DefaultEnums().Check(FieldRole, "root")
	if !errors.Is(err, ErrInvalidEnum) {
		t.Fatalf("got %v, want ErrInvalidEnum", err)
	}
	if want := "(allowed: admin, user)"; !strings.Contains(err.Error(), want) {
		t.Errorf("got %q, want it to contain %q", err.Error(), want)
	}
}
