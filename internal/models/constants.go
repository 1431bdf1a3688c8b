// Package models contains data types and constants for the Wikipedia chat.
package models

import "fmt"

// Endpoint template for the MediaWiki Action API. The %s is the language code.
const EndpointAPITemplate = "https://%s.wikipedia.org/w/api.php"

// DefaultLanguage matches the Russian-language Wikipedia the chat was built for
const DefaultLanguage = "ru"

// DefaultSentences is how many sentences of the intro are returned
const DefaultSentences = 3

// MaxDisambiguationOptions is how many candidate titles an ambiguous answer lists
const MaxDisambiguationOptions = 3

// SearchLimit is the srlimit sent with every search request
const SearchLimit = 10

// Display strings shown in the transcript
const (
	WelcomeText     = "Добро пожаловать! Я могу найти информацию в Wikipedia. Напишите слово, чтобы узнать его значение!"
	PlaceholderText = "Поиск информации в Wikipedia..."
	NotFoundText    = "Информация по данному запросу не найдена в Wikipedia."
	PageMissingText = "К сожалению мы ничего не нашли. Попробуйте изменить запрос."
	NoInternetText  = "Ой, кажется нет интернета."
	AmbiguousPrefix = "Найдено несколько вариантов: "
)

// UI labels
const (
	AppTitle         = "Wiki-gpt"
	UserLabel        = "Вы:"
	BotLabel         = "Ответ:"
	InputPlaceholder = "введите слово..."
	NewChatLabel     = "Новый чат"
	SearchLabel      = "Поиск"
	LightThemeLabel  = "светлая"
	DarkThemeLabel   = "тёмная"
)

// APIEndpoint returns the api.php URL for the given language code
func APIEndpoint(lang string) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	return fmt.Sprintf(EndpointAPITemplate, lang)
}

// DefaultHeaders returns the default headers for MediaWiki requests.
// Wikimedia asks API clients to send a descriptive User-Agent.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "wikichat/0.1 (https://github.com/diogo/wikichat) tls-client",
		"Accept":          "application/json",
		"Accept-Language": "ru,en;q=0.8",
	}
}
