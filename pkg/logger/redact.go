package logger

import "strings"

// RedactEmail оставляет в логах два первых символа логина и домен.
// Адрес приводится к нижнему регистру так же, как при регистрации.
func RedactEmail(email string) string {
	name, domain, ok := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(name) > 2 {
		return name[:2] + "***@" + domain
	}
	return "***@" + domain
}
