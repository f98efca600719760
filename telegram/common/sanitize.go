package common

import "github.com/microcosm-cc/bluemonday"

// chatElements are the HTML tags Telegram renders in table messages
var chatElements = []string{"b", "i", "code"}

func PolicySanitizer(elements ...string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(elements...)
	// allow link with href attribute
	p.AllowAttrs("href").OnElements("a")
	return p
}

// ChatPolicy keeps the formatting the bot writes itself and escapes
// everything else, such as markup in player names
func ChatPolicy() *bluemonday.Policy {
	return PolicySanitizer(chatElements...)
}
