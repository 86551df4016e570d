package config

import "strings"

// GenericPlaceholder builds the single fallback item used for a topic
// that has no hand-authored placeholders of its own.
func GenericPlaceholder(topic string) Placeholder {
	return Placeholder{
		Title:       "Notícia de " + topic,
		Description: "Aqui estará uma notícia sobre " + strings.ToLower(topic) + ".",
	}
}
