package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-fitness-tracker/internal/cache"
	"github.com/pribylovaa/go-fitness-tracker/internal/config"
	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
	"github.com/pribylovaa/go-fitness-tracker/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:    "unit-access-secret",
		RefreshSecret:   "unit-refresh-secret",
		AccessTokenTTL:  30 * time.Second,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "fitness-tracker",
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:            "Test User",
		Username:        "testuser",
		Email:           "User@Example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Gender:          "male",
		Age:             30,
		Height:          180,
		CurrentWeight:   80,
		TargetWeight:    75,
		WeeklyTarget:    0.5,
		ActivityLevel:   1.55,
	}
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	in := validRegisterInput()
	norm := "user@example.com"

	st.EXPECT().UserByEmailOrUsername(gomock.Any(), norm, in.Username).
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)

	user, err := svc.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, norm, user.Email)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, in.Password, user.PasswordHash)
	// Профиль полон — цель по калориям посчитана автоматически.
	require.Greater(t, user.TargetCal, 0)
}

func TestRegisterUser_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	in := validRegisterInput()
	in.Email = "not-an-email"
	_, err := svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	in = validRegisterInput()
	in.ConfirmPassword = "Different1!"
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrPasswordMismatch)

	in = validRegisterInput()
	in.Password = "short"
	in.ConfirmPassword = "short"
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	in = validRegisterInput()
	in.Age = 12
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	in = validRegisterInput()
	in.Gender = "other"
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterUser_EmailOrUsernameTaken_OnLookup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	in := validRegisterInput()
	norm := "user@example.com"

	// Найденный пользователь с тем же email -> ErrEmailTaken.
	st.EXPECT().UserByEmailOrUsername(gomock.Any(), norm, in.Username).
		Return(&models.User{ID: uuid.New(), Email: norm, Username: "someoneelse"}, nil)
	_, err := svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrEmailTaken)

	// Email другой -> коллизия по username.
	st.EXPECT().UserByEmailOrUsername(gomock.Any(), norm, in.Username).
		Return(&models.User{ID: uuid.New(), Email: "other@example.com", Username: in.Username}, nil)
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterUser_SaveRace_MapsConstraintErrors(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	in := validRegisterInput()
	norm := "user@example.com"

	st.EXPECT().UserByEmailOrUsername(gomock.Any(), norm, in.Username).
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrEmailTaken)
	_, err := svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrEmailTaken)

	st.EXPECT().UserByEmailOrUsername(gomock.Any(), norm, in.Username).
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrUsernameTaken)
	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	pw := "Abcdef1!"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "user@example.com",
		PasswordHash: mustHashPW(t, pw),
	}

	var storedHash string
	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	st.EXPECT().SetRefreshHash(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
			storedHash = hash
			return nil
		})

	tp, got, err := svc.LoginUser(context.Background(), "User@Example.com ", pw)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), tp.AccessExpiresAt, 2*time.Second)

	// В слот записан хэш выданного refresh, а не сам токен.
	require.Equal(t, hashToken(tp.RefreshToken), storedHash)
	require.NotEqual(t, tp.RefreshToken, storedHash)
}

func TestLoginUser_UnknownEmail_MapsToNotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, storage.ErrNotFound)

	_, _, err := svc.LoginUser(context.Background(), "ghost@example.com", "Abcdef1!")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPW(t, "Abcdef1!"),
	}
	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, _, err := svc.LoginUser(context.Background(), user.Email, "WRONG1!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_SecondLogin_SupersedesSlot(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pw := "Abcdef1!"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPW(t, pw),
	}

	var slot string
	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil).Times(2)
	st.EXPECT().SetRefreshHash(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
			slot = hash
			return nil
		}).Times(2)

	tp1, _, err := svc.LoginUser(ctx, user.Email, pw)
	require.NoError(t, err)
	require.Equal(t, hashToken(tp1.RefreshToken), slot)

	// Повторный логин перезаписывает единственный слот: хэш первого
	// refresh больше нигде не хранится.
	tp2, _, err := svc.LoginUser(ctx, user.Email, pw)
	require.NoError(t, err)
	require.Equal(t, hashToken(tp2.RefreshToken), slot)
	require.NotEqual(t, hashToken(tp1.RefreshToken), slot)

	// Вытесненный refresh отбивается на refresh-операции.
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(tp1.RefreshToken)).
		Return(nil, storage.ErrNotFound)
	_, _, err = svc.RefreshAccessToken(ctx, tp1.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshMismatch)
}

func TestAuthenticate_OK(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Name: "Test User", Email: "user@example.com"}

	at, err := svc.issueToken(ctx, user, svc.cfg.AccessSecret, svc.cfg.AccessTokenTTL, time.Now().UTC())
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, at)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, user.Email, claims.Email)
}

func TestAuthenticate_MissingExpiredInvalid(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	_, err := svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrMissingToken)

	// Просроченный access различим от подделанного.
	expired, err := svc.issueToken(ctx, user, svc.cfg.AccessSecret, -time.Minute, time.Now().UTC())
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	// Токен с чужой подписью (refresh-секретом) -> invalid.
	forged, err := svc.issueToken(ctx, user, svc.cfg.RefreshSecret, time.Minute, time.Now().UTC())
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken_OK_NoRotation(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Name: "Test User", Email: "user@example.com"}

	rt, err := svc.issueToken(ctx, user, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, time.Now().UTC())
	require.NoError(t, err)

	// Два последовательных refresh: слот не меняется (нет ротации),
	// SetRefreshHash не вызывается вовсе.
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(rt)).Return(user, nil).Times(2)

	at1, exp1, err := svc.RefreshAccessToken(ctx, rt)
	require.NoError(t, err)
	require.NotEmpty(t, at1)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), exp1, 2*time.Second)

	_, _, err = svc.RefreshAccessToken(ctx, rt)
	require.NoError(t, err)

	// Выданный access валиден.
	claims, err := svc.Authenticate(ctx, at1)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
}

func TestRefreshAccessToken_MissingMismatchExpired(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	// Пустой refresh -> ErrMissingToken.
	_, _, err := svc.RefreshAccessToken(ctx, "")
	require.ErrorIs(t, err, ErrMissingToken)

	// Хэш не совпал ни с одним слотом -> ErrRefreshMismatch.
	st.EXPECT().UserByRefreshHash(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)
	_, _, err = svc.RefreshAccessToken(ctx, "unknown-refresh")
	require.ErrorIs(t, err, ErrRefreshMismatch)

	// Слот совпал, но токен просрочен -> ErrTokenExpired.
	expired, err := svc.issueToken(ctx, user, svc.cfg.RefreshSecret, -time.Minute, time.Now().UTC())
	require.NoError(t, err)
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(expired)).Return(user, nil)
	_, _, err = svc.RefreshAccessToken(ctx, expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	// Слот совпал, но подпись чужая -> ErrInvalidToken.
	forged, err := svc.issueToken(ctx, user, "wrong-secret", time.Minute, time.Now().UTC())
	require.NoError(t, err)
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(forged)).Return(user, nil)
	_, _, err = svc.RefreshAccessToken(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_OK_ThenRefreshDenied(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	rt, err := svc.issueToken(ctx, user, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, time.Now().UTC())
	require.NoError(t, err)
	hash := hashToken(rt)

	st.EXPECT().UserByRefreshHash(gomock.Any(), hash).Return(user, nil)
	st.EXPECT().ClearRefreshHash(gomock.Any(), user.ID).Return(nil)

	ended, err := svc.Logout(ctx, rt)
	require.NoError(t, err)
	require.True(t, ended)

	// Слот обнулён: тот же refresh больше не обновляет access.
	st.EXPECT().UserByRefreshHash(gomock.Any(), hash).Return(nil, storage.ErrNotFound)
	_, _, err = svc.RefreshAccessToken(ctx, rt)
	require.ErrorIs(t, err, ErrRefreshMismatch)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	// Нет cookie — тривиальный успех без похода в хранилище.
	ended, err := svc.Logout(ctx, "")
	require.NoError(t, err)
	require.False(t, ended)

	// Токен не совпадает ни с одним слотом (повторный logout) — тоже успех.
	st.EXPECT().UserByRefreshHash(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)
	ended, err = svc.Logout(ctx, "already-logged-out")
	require.NoError(t, err)
	require.False(t, ended)
}

func TestLogout_SessionIsolation(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	alice := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	bob := &models.User{ID: uuid.New(), Email: "bob@example.com"}

	rtAlice, err := svc.issueToken(ctx, alice, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, time.Now().UTC())
	require.NoError(t, err)
	rtBob, err := svc.issueToken(ctx, bob, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, time.Now().UTC())
	require.NoError(t, err)

	// Logout Алисы трогает только её слот.
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(rtAlice)).Return(alice, nil)
	st.EXPECT().ClearRefreshHash(gomock.Any(), alice.ID).Return(nil)

	ended, err := svc.Logout(ctx, rtAlice)
	require.NoError(t, err)
	require.True(t, ended)

	// Сессия Боба живёт дальше.
	st.EXPECT().UserByRefreshHash(gomock.Any(), hashToken(rtBob)).Return(bob, nil)
	at, _, err := svc.RefreshAccessToken(ctx, rtBob)
	require.NoError(t, err)
	require.NotEmpty(t, at)
}

func TestLogout_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByRefreshHash(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := svc.Logout(context.Background(), "some-refresh")
	require.Error(t, err)
}

func TestRefreshAccessToken_UsesCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	rc := mocks.NewMockRefreshCache(ctrl)
	svc := New(st, testCfg())
	svc.SetRefreshCache(rc)

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Name: "Test User", Email: "user@example.com"}

	rt, err := svc.issueToken(ctx, user, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, time.Now().UTC())
	require.NoError(t, err)
	hash := hashToken(rt)

	// Попадание в кэш: похода в БД нет.
	entry := &cache.RefreshEntry{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(svc.cfg.RefreshTokenTTL),
	}
	rc.EXPECT().Get(gomock.Any(), hash).Return(entry, true, nil)

	at, _, err := svc.RefreshAccessToken(ctx, rt)
	require.NoError(t, err)
	require.NotEmpty(t, at)

	// Промах кэша деградирует в БД и прогревает кэш.
	rc.EXPECT().Get(gomock.Any(), hash).Return(nil, false, nil)
	st.EXPECT().UserByRefreshHash(gomock.Any(), hash).Return(user, nil)
	rc.EXPECT().Set(gomock.Any(), hash, gomock.Any(), svc.cfg.RefreshTokenTTL).Return(nil)

	_, _, err = svc.RefreshAccessToken(ctx, rt)
	require.NoError(t, err)
}
