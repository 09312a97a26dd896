// redact — маскирование чувствительных данных перед записью в лог.
// Пароли и токены в логи не попадают никогда; email маскируется частично,
// чтобы запись оставалась полезной при разборе инцидентов.
package redact

import "strings"

// Email маскирует локальную часть адреса: "alice@example.com" -> "al***@example.com".
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token возвращает плейсхолдер вместо значения токена.
func Token() string { return "[REDACTED_TOKEN]" }

// Password возвращает плейсхолдер вместо пароля.
func Password() string { return "[REDACTED_PASSWORD]" }
