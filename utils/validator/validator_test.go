package validatorx

import (
	"sort"
	"testing"

	"github.com/xam1dullo/identity-api/model"
)

func validRegisterRequest() model.RegisterRequest {
	return model.RegisterRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Password:  "secret1",
		Phone:     "+998900000000",
		Address:   "X",
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	req := validRegisterRequest()
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.RegisterRequest)
		wantMsg string
	}{
		{
			name:    "missing firstName",
			mutate:  func(r *model.RegisterRequest) { r.FirstName = "" },
			wantMsg: "firstName is required",
		},
		{
			name:    "blank lastName",
			mutate:  func(r *model.RegisterRequest) { r.LastName = "   " },
			wantMsg: "lastName must be a non-empty string",
		},
		{
			name:    "blank address",
			mutate:  func(r *model.RegisterRequest) { r.Address = " " },
			wantMsg: "address must be a non-empty string",
		},
		{
			name:    "email without domain dot",
			mutate:  func(r *model.RegisterRequest) { r.Email = "a@bcom" },
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "email with spaces",
			mutate:  func(r *model.RegisterRequest) { r.Email = "a b@c.com" },
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "short password",
			mutate:  func(r *model.RegisterRequest) { r.Password = "abc12" },
			wantMsg: "password must be at least 6 characters",
		},
		{
			name:    "short phone",
			mutate:  func(r *model.RegisterRequest) { r.Phone = "+12345" },
			wantMsg: "phone must be at least 7 characters",
		},
		{
			name:    "phone with letters",
			mutate:  func(r *model.RegisterRequest) { r.Phone = "+99890ab0000" },
			wantMsg: "phone must contain only digits and +",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := ValidateStruct(&req)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			msgs := Messages(err)
			if !contains(msgs, tt.wantMsg) {
				t.Errorf("Messages() = %v, want to contain %q", msgs, tt.wantMsg)
			}
		})
	}
}

// Every violation is reported, not just the first one.
func TestValidateStruct_CollectsAllViolations(t *testing.T) {
	req := model.RegisterRequest{}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	msgs := Messages(err)
	want := []string{
		"address is required",
		"email is required",
		"firstName is required",
		"lastName is required",
		"password is required",
		"phone is required",
	}
	sort.Strings(msgs)
	if len(msgs) != len(want) {
		t.Fatalf("Messages() = %v, want %d violations", msgs, len(want))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("Messages()[%d] = %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestMessages_NonValidationError(t *testing.T) {
	if msgs := Messages(nil); msgs != nil {
		t.Errorf("Messages(nil) = %v, want nil", msgs)
	}
}

func contains(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
