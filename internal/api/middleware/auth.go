package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sbmarket/SBM-SchedulingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	msgMissingToken = "требуется токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

// NewAuth возвращает middleware аутентификации владельцев бизнесов.
// Ожидает заголовок Authorization: Bearer <JWT> (HS256), кладёт ID
// владельца из claim "sub" в контекст запроса.
func NewAuth(secret string) func(http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			token, err := jwt.Parse(tokenStr, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := parseSubject(claims)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseSubject извлекает ID владельца из claim "sub".
// Числовой sub при декодировании JSON приходит как float64.
func parseSubject(claims jwt.MapClaims) (int64, error) {
	sub, err := claims.GetSubject()
	if err == nil && sub != "" {
		return strconv.ParseInt(sub, 10, 64)
	}

	if raw, ok := claims["sub"].(float64); ok {
		return int64(raw), nil
	}

	return 0, jwt.ErrTokenInvalidSubject
}

// GetUserID возвращает ID владельца из контекста запроса.
// Работает только после Auth middleware.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
