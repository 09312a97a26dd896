package models

import "time"

// TokenPair — пара токенов, выдаваемая при логине.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API, не персистится;
//   - RefreshToken — долгоживущий JWT отдельного домена подписи; на сервере
//     хранится только его SHA-256-хэш в слоте пользователя;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// Claims — identity-полезная нагрузка токена фиксированной формы.
// Валидируется при декодировании; ошибка декодирования — теговая ошибка,
// а не исключение.
type Claims struct {
	UserID string
	Name   string
	Email  string
}
