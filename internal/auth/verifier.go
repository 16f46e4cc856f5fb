package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры argon2id для хеширования мастер-пароля
const (
	argonMemory  = 8192 // KiB
	argonTime    = 3
	argonThreads = 4
	argonSaltLen = 16
	argonKeyLen  = 32
)

// ErrInvalidHash возвращается, если закодированный хеш имеет неверный формат
var ErrInvalidHash = errors.New("invalid password hash format")

// Verifier проверяет мастер-пароль по сохраненному argon2id хешу.
// Вердикт - только bool: причина отказа никогда не раскрывается.
type Verifier struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// NewVerifier разбирает закодированный хеш вида
// $argon2id$v=19$m=8192,t=3,p=4$<salt>$<hash>.
// Ошибка формата обнаруживается на старте, а не при первом логине.
func NewVerifier(encodedHash string) (*Verifier, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, ErrInvalidHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, ErrInvalidHash
	}
	if len(key) == 0 {
		return nil, ErrInvalidHash
	}

	return &Verifier{
		memory:  memory,
		time:    iterations,
		threads: threads,
		salt:    salt,
		key:     key,
	}, nil
}

// Verify проверяет пароль. Пустая строка - легальный, всегда
// неуспешный ввод. Сравнение выполняется за константное время.
func (v *Verifier) Verify(secret string) bool {
	if v == nil {
		// Нет сконфигурированного хеша - отказываем
		return false
	}

	derived := argon2.IDKey([]byte(secret), v.salt, v.time, v.memory, v.threads, uint32(len(v.key)))

	return subtle.ConstantTimeCompare(derived, v.key) == 1
}

// HashPassword хеширует пароль argon2id со случайной 128-битной солью
// и возвращает закодированную строку для конфигурационного файла.
func HashPassword(secret string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return encoded, nil
}
