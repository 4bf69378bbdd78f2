package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"
	appuser "github.com/xam1dullo/identity-api/application/user"
	"github.com/xam1dullo/identity-api/constant"
	appmocks "github.com/xam1dullo/identity-api/mocks/application/user"
	usermocks "github.com/xam1dullo/identity-api/mocks/repository/user"
	"github.com/xam1dullo/identity-api/model"
	userrepo "github.com/xam1dullo/identity-api/repository/user"
	cerr "github.com/xam1dullo/identity-api/utils/errors"
	"github.com/xam1dullo/identity-api/utils/password"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *password.Hasher {
	return password.NewHasher(bcrypt.MinCost)
}

func strPtr(s string) *string { return &s }

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	customErr, ok := err.(cerr.CustomError)
	if !ok {
		t.Fatalf("expected CustomError, got %T: %v", err, err)
	}
	if customErr.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Errorf("error code = %s, want %s", customErr.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
		events   *appmocks.EventPublisher
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		want     *model.RegisterResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: register new user",
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					FirstName: "Test",
					LastName:  "User",
					Email:     "test@example.com",
					Password:  "password123",
					Phone:     "+998900000000",
					Address:   "Tashkent",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Exists", mock.Anything, "test@example.com").
					Return(false, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Email == "test@example.com" &&
							ent.FirstName == "Test" &&
							ent.LastName == "User" &&
							ent.Phone == "+998900000000" &&
							ent.Address == "Tashkent" &&
							ent.PasswordHash != "" &&
							ent.PasswordHash != "password123"
					})).
					Return(nil).
					Once()

				f.events.
					On("PublishUserEvent", mock.MatchedBy(func(ev model.UserEvent) bool {
						return ev.Action == constant.UserEventRegistered && ev.Email == "test@example.com"
					})).
					Return(nil).
					Once()
			},
			want: &model.RegisterResponse{
				Email:   "test@example.com",
				Message: "user registered successfully",
			},
			wantErr: false,
		},
		{
			name: "error: email already exists",
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					FirstName: "Test",
					LastName:  "User",
					Email:     "existing@example.com",
					Password:  "password123",
					Phone:     "+998900000000",
					Address:   "Tashkent",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Exists", mock.Anything, "existing@example.com").
					Return(true, nil).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrEmailExists,
		},
		{
			name: "error: lost duplicate race at create",
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					FirstName: "Test",
					LastName:  "User",
					Email:     "raced@example.com",
					Password:  "password123",
					Phone:     "+998900000000",
					Address:   "Tashkent",
				},
			},
			mockCall: func(f fields) {
				// existence check passed before the concurrent
				// registration committed; the atomic create reports it
				f.userRepo.
					On("Exists", mock.Anything, "raced@example.com").
					Return(false, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.Anything).
					Return(userrepo.ErrDuplicateKey).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrEmailExists,
		},
		{
			name: "error: storage failure",
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					FirstName: "Test",
					LastName:  "User",
					Email:     "test@example.com",
					Password:  "password123",
					Phone:     "+998900000000",
					Address:   "Tashkent",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Exists", mock.Anything, "test@example.com").
					Return(false, errors.New("connection refused")).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				userRepo: usermocks.NewUserRepository(t),
				events:   appmocks.NewEventPublisher(t),
			}
			tt.mockCall(f)

			app := appuser.NewUserApp(f.userRepo, newTestHasher(), f.events)
			got, err := app.Register(tt.args.ctx, tt.args.req)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Register() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hasher := newTestHasher()
	storedHash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash fixture: %v", err)
	}

	storedUser := &model.UserEntity{
		Email:        "a@b.com",
		FirstName:    "A",
		LastName:     "B",
		Phone:        "+998900000000",
		Address:      "X",
		PasswordHash: storedHash,
	}

	tests := []struct {
		name     string
		req      *model.LoginRequest
		mockCall func(repo *usermocks.UserRepository)
		want     *model.LoginResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: correct password",
			req:  &model.LoginRequest{Email: "a@b.com", Password: "secret1"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.On("Get", mock.Anything, "a@b.com").Return(storedUser, nil).Once()
			},
			want: &model.LoginResponse{Email: "a@b.com", Message: "login successful"},
		},
		{
			name: "error: wrong password",
			req:  &model.LoginRequest{Email: "a@b.com", Password: "wrong"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.On("Get", mock.Anything, "a@b.com").Return(storedUser, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
		{
			name: "error: unknown email",
			req:  &model.LoginRequest{Email: "nobody@b.com", Password: "secret1"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.On("Get", mock.Anything, "nobody@b.com").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: storage failure",
			req:  &model.LoginRequest{Email: "a@b.com", Password: "secret1"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.On("Get", mock.Anything, "a@b.com").Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := usermocks.NewUserRepository(t)
			tt.mockCall(repo)

			app := appuser.NewUserApp(repo, hasher, nil)
			got, err := app.Login(context.Background(), tt.req)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Login() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Update(t *testing.T) {
	hasher := newTestHasher()

	tests := []struct {
		name     string
		email    string
		req      *model.UpdateRequest
		mockCall func(repo *usermocks.UserRepository, events *appmocks.EventPublisher)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "success: phone only",
			email: "a@b.com",
			req:   &model.UpdateRequest{Phone: strPtr("+111")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "a@b.com", mock.MatchedBy(func(p *model.UserPatch) bool {
						return p.Phone != nil && *p.Phone == "+111" &&
							p.FirstName == nil && p.LastName == nil &&
							p.Address == nil && p.PasswordHash == nil
					})).
					Return(&model.UserEntity{Email: "a@b.com", Phone: "+111"}, nil).
					Once()

				events.
					On("PublishUserEvent", mock.MatchedBy(func(ev model.UserEvent) bool {
						return ev.Action == constant.UserEventUpdated && ev.Email == "a@b.com"
					})).
					Return(nil).
					Once()
			},
		},
		{
			name:  "success: password is re-hashed",
			email: "a@b.com",
			req:   &model.UpdateRequest{Password: strPtr("newpass1")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "a@b.com", mock.MatchedBy(func(p *model.UserPatch) bool {
						return p.PasswordHash != nil &&
							*p.PasswordHash != "newpass1" &&
							hasher.Verify("newpass1", *p.PasswordHash)
					})).
					Return(&model.UserEntity{Email: "a@b.com"}, nil).
					Once()

				events.On("PublishUserEvent", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "success: short password ignored, other fields applied",
			email: "a@b.com",
			req:   &model.UpdateRequest{Password: strPtr("abc"), FirstName: strPtr("New")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "a@b.com", mock.MatchedBy(func(p *model.UserPatch) bool {
						return p.PasswordHash == nil &&
							p.FirstName != nil && *p.FirstName == "New"
					})).
					Return(&model.UserEntity{Email: "a@b.com", FirstName: "New"}, nil).
					Once()

				events.On("PublishUserEvent", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "success: blank fields left untouched",
			email: "a@b.com",
			req:   &model.UpdateRequest{FirstName: strPtr("   "), Address: strPtr("")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "a@b.com", mock.MatchedBy(func(p *model.UserPatch) bool {
						return p.IsEmpty()
					})).
					Return(&model.UserEntity{Email: "a@b.com"}, nil).
					Once()

				events.On("PublishUserEvent", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "error: unknown email",
			email: "nobody@b.com",
			req:   &model.UpdateRequest{Phone: strPtr("+111")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "nobody@b.com", mock.Anything).
					Return(nil, userrepo.ErrNotFound).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:  "error: storage failure",
			email: "a@b.com",
			req:   &model.UpdateRequest{Phone: strPtr("+111")},
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.
					On("Update", mock.Anything, "a@b.com", mock.Anything).
					Return(nil, errors.New("connection refused")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := usermocks.NewUserRepository(t)
			events := appmocks.NewEventPublisher(t)
			tt.mockCall(repo, events)

			app := appuser.NewUserApp(repo, hasher, events)
			err := app.Update(context.Background(), tt.email, tt.req)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestUserApp_Delete(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		mockCall func(repo *usermocks.UserRepository, events *appmocks.EventPublisher)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "success: delete existing user",
			email: "a@b.com",
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.On("Delete", mock.Anything, "a@b.com").Return(nil).Once()
				events.
					On("PublishUserEvent", mock.MatchedBy(func(ev model.UserEvent) bool {
						return ev.Action == constant.UserEventDeleted && ev.Email == "a@b.com"
					})).
					Return(nil).
					Once()
			},
		},
		{
			name:  "error: unknown email",
			email: "nobody@b.com",
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.On("Delete", mock.Anything, "nobody@b.com").Return(userrepo.ErrNotFound).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:  "error: storage failure",
			email: "a@b.com",
			mockCall: func(repo *usermocks.UserRepository, events *appmocks.EventPublisher) {
				repo.On("Delete", mock.Anything, "a@b.com").Return(errors.New("connection refused")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := usermocks.NewUserRepository(t)
			events := appmocks.NewEventPublisher(t)
			tt.mockCall(repo, events)

			app := appuser.NewUserApp(repo, newTestHasher(), events)
			err := app.Delete(context.Background(), tt.email)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestUserApp_List(t *testing.T) {
	entities := []*model.UserEntity{
		{Email: "a@b.com", FirstName: "A", PasswordHash: "hash-a"},
		{Email: "c@d.com", FirstName: "C", PasswordHash: "hash-c"},
	}

	t.Run("success", func(t *testing.T) {
		repo := usermocks.NewUserRepository(t)
		repo.On("List", mock.Anything).Return(entities, nil).Once()

		app := appuser.NewUserApp(repo, newTestHasher(), nil)
		got, err := app.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if !reflect.DeepEqual(got, entities) {
			t.Errorf("List() = %v, want %v", got, entities)
		}
	})

	t.Run("error: storage failure", func(t *testing.T) {
		repo := usermocks.NewUserRepository(t)
		repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		app := appuser.NewUserApp(repo, newTestHasher(), nil)
		_, err := app.List(context.Background())
		if err == nil {
			t.Fatal("List() expected error")
		}
		assertErrCode(t, err, constant.ErrInternal)
	})
}

// Registering the same plaintext twice must never produce equal
// digests, and only the original plaintext verifies.
func TestUserApp_RegisterHashProperties(t *testing.T) {
	hasher := newTestHasher()

	var hashes []string
	repo := usermocks.NewUserRepository(t)
	repo.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Twice()
	repo.
		On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ent := args.Get(1).(*model.UserEntity)
			hashes = append(hashes, ent.PasswordHash)
		}).
		Return(nil).
		Twice()

	app := appuser.NewUserApp(repo, hasher, nil)
	req := &model.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@b.com",
		Password: "secret1", Phone: "+998900000000", Address: "X",
	}
	for i := 0; i < 2; i++ {
		if _, err := app.Register(context.Background(), req); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	if hashes[0] == hashes[1] {
		t.Error("two registrations produced identical digests")
	}
	for _, h := range hashes {
		if !hasher.Verify("secret1", h) {
			t.Error("stored digest does not verify against original password")
		}
		if hasher.Verify("wrong", h) {
			t.Error("stored digest verifies against a different password")
		}
	}
}
