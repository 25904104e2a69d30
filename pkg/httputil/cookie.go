package httputil

import (
	"errors"
	"net/http"

	"github.com/connectk/backend/internal/config"
)

const IdentityCookieName = "ck_identity"

func SetIdentityCookie(w http.ResponseWriter, token string) {
	maxAge := config.AppConfig.IdentityTTLHours * 60 * 60

	isProduction := config.GetEnv("ENVIRONMENT", "development") == "production"

	cookie := &http.Cookie{
		Name:     IdentityCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearIdentityCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     IdentityCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

// GetTokenFromCookie extracts the identity token from the cookie.
func GetTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(IdentityCookieName)
	if err != nil {
		return "", errors.New("identity cookie not found")
	}
	if cookie.Value == "" {
		return "", errors.New("identity cookie is empty")
	}
	return cookie.Value, nil
}
