// Package langname превращает короткие BCP 47 коды ("fr", "pt-BR") в английские
// названия языков для промпта.
package langname

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Кодом считается только ввод со строчным первичным субтегом.
// Названия с заглавной буквы ("Ga", "Yi", "French") не трогаем.
var reTagLike = regexp.MustCompile(`^[a-z]{2,3}([-_][A-Za-z0-9]{2,8})*$`)

var namer = display.English.Tags()

// Resolve возвращает английское название для известного кода,
// иначе вход без пробелов по краям.
func Resolve(s string) string {
	s = strings.TrimSpace(s)
	if !reTagLike.MatchString(s) {
		return s
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return s
	}
	if name := namer.Name(tag); name != "" {
		return name
	}
	return s
}
