package domain

import "strings"

// DefaultProfile задаёт профиль, ключи которого хранятся без суффикса.
const DefaultProfile = "default"

// ProfileKey возвращает ключ хранилища для профиля: "<base>" или "<base>:<profile>".
func ProfileKey(base, profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" || profile == DefaultProfile {
		return base
	}
	return base + ":" + profile
}
