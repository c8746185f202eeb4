package auth

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

// MaxSessionDuration bounds how long a browser session may live. The upstream
// token usually expires earlier; that case is handled by the 401 reset.
const MaxSessionDuration = 30 * 24 * time.Hour

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890")

type sessionKey struct{}

var sessionContextKey = &sessionKey{}

func SetSession(ctx context.Context, session database.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession returns the viewer's session. Anonymous requests carry a zero
// session: UserID 0 and an empty access token.
func GetSession(r *http.Request) database.Session {
	session, ok := r.Context().Value(sessionContextKey).(database.Session)
	if !ok {
		return database.Session{}
	}
	return session
}

func RandomStr(length int) string {
	b := make([]rune, length)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
